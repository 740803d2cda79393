package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Tipos auxiliares persistidos como jsonb.

// IDList: lista de referencias débiles (solo IDs, sin foreign key).
// Borrar la entidad referenciada deja el ID colgando; las capas de
// consulta deben tolerarlo, no fallar.
type IDList []uint

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	return json.Marshal(l)
}

func (l *IDList) Scan(value any) error {
	return scanJSON(value, l)
}

// Metadata: pares clave-valor libres (Metric).
type Metadata map[string]string

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		m = Metadata{}
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(value any) error {
	return scanJSON(value, m)
}

// NameRef: proyección parcial {id, name} de un cliente o ubicación
// referenciada, usada en las respuestas expandidas.
type NameRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func scanJSON(value any, dst any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("tipo jsonb no soportado: %T", value)
	}
}
