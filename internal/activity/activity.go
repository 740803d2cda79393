package activity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Entry: una entrada de la bitácora de actividades de una entidad
// (tarea, mejora o reporte semanal). El array es append-only: nunca se
// reordena ni se sobreescribe lo ya registrado.
type Entry struct {
	Accion  string    `json:"accion"`
	Fecha   time.Time `json:"fecha"`
	Usuario string    `json:"usuario"`
}

type Log []Entry

// Observation: una observación registrada sobre un reporte semanal.
type Observation struct {
	Descripcion string    `json:"descripcion"`
	Fecha       time.Time `json:"fecha"`
	Usuario     string    `json:"usuario"`
}

type Observations []Observation

// Append agrega una nueva actividad al final de la bitácora. Si el texto
// viene vacío devuelve la bitácora sin cambios: así los handlers de update
// nunca pisan el array existente con un valor vacío.
func Append(log Log, accion, usuario string) Log {
	if strings.TrimSpace(accion) == "" {
		return log
	}
	out := make(Log, len(log), len(log)+1)
	copy(out, log)
	return append(out, Entry{
		Accion:  accion,
		Fecha:   time.Now(),
		Usuario: usuario,
	})
}

// AppendObservation agrega una observación; mismas reglas que Append.
func AppendObservation(obs Observations, descripcion, usuario string) Observations {
	if strings.TrimSpace(descripcion) == "" {
		return obs
	}
	out := make(Observations, len(obs), len(obs)+1)
	copy(out, obs)
	return append(out, Observation{
		Descripcion: descripcion,
		Fecha:       time.Now(),
		Usuario:     usuario,
	})
}

// Value / Scan: los arrays se persisten como jsonb.

func (l Log) Value() (driver.Value, error) {
	if l == nil {
		l = Log{}
	}
	return json.Marshal(l)
}

func (l *Log) Scan(value any) error {
	return scanJSON(value, l)
}

func (o Observations) Value() (driver.Value, error) {
	if o == nil {
		o = Observations{}
	}
	return json.Marshal(o)
}

func (o *Observations) Scan(value any) error {
	return scanJSON(value, o)
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
