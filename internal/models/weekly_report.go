package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"seguimiento-backend/internal/activity"
)

// TaskSnapshot: par (referencia a tarea, estado al momento del snapshot).
// La referencia es débil: si la tarea se borra, el par queda con el
// estado fotografiado y la expansión simplemente no la resuelve.
type TaskSnapshot struct {
	TaskID uint       `json:"task"`
	Status TaskStatus `json:"status"`
}

type TaskSnapshots []TaskSnapshot

func (s TaskSnapshots) Value() (driver.Value, error) {
	if s == nil {
		s = TaskSnapshots{}
	}
	return json.Marshal(s)
}

func (s *TaskSnapshots) Scan(value any) error {
	return scanJSON(value, s)
}

// WeeklyCalculatedMetrics: bloque derivado, solo es autoritativo después
// de consolidar el reporte.
type WeeklyCalculatedMetrics struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	Improvements   int `json:"improvements"`
}

func (m WeeklyCalculatedMetrics) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *WeeklyCalculatedMetrics) Scan(value any) error {
	return scanJSON(value, m)
}

type WeeklyReport struct {
	ID                uint                    `gorm:"primaryKey" json:"id"`
	Slug              string                  `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Title             string                  `gorm:"size:200;not null" json:"title"`
	WeekNumber        int                     `gorm:"index;not null" json:"weekNumber"`
	Year              int                     `gorm:"index;not null" json:"year"`
	StartDate         time.Time               `json:"startDate"`
	EndDate           time.Time               `json:"endDate"`
	ClientID          uint                    `gorm:"index;not null" json:"client"`
	ClientSlug        string                  `gorm:"size:150;index" json:"clientSlug"`
	LocationID        uint                    `gorm:"index;not null" json:"location"`
	LocationSlug      string                  `gorm:"size:150;index" json:"locationSlug"`
	IsConsolidated    bool                    `gorm:"default:false" json:"isConsolidated"`
	Tasks             TaskSnapshots           `gorm:"type:jsonb" json:"tasks"`
	Improvements      IDList                  `gorm:"type:jsonb" json:"improvements"`
	Metrics           IDList                  `gorm:"type:jsonb" json:"metrics"`
	CalculatedMetrics WeeklyCalculatedMetrics `gorm:"type:jsonb" json:"calculatedMetrics"`
	Observaciones     activity.Observations   `gorm:"type:jsonb" json:"observaciones"`
	Actividad         activity.Log            `gorm:"type:jsonb" json:"actividad"`
	CreatedBy         string                  `gorm:"size:100;not null" json:"createdBy"`
	UpdatedBy         string                  `gorm:"size:100;not null" json:"updatedBy"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`

	// Version respalda las escrituras condicionales (check-and-set):
	// consolidar y agregar a las bitácoras escriben con
	// WHERE version = ? para no perder escrituras concurrentes.
	Version uint `gorm:"default:0" json:"-"`
}
