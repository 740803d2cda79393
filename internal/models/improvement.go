package models

import (
	"time"

	"seguimiento-backend/internal/activity"
)

// Improvement: mejora implementada en una ubicación. Misma forma que
// Task salvo la fecha límite.
type Improvement struct {
	ID                 uint         `gorm:"primaryKey" json:"id"`
	Title              string       `gorm:"size:200;not null" json:"title"`
	Description        string       `gorm:"type:text" json:"description"`
	Status             TaskStatus   `gorm:"size:20;not null;default:Planned" json:"status"`
	Type               string       `gorm:"size:50" json:"type"`
	ClientID           uint         `gorm:"index;not null" json:"client"`
	LocationID         uint         `gorm:"index;not null" json:"location"`
	ImplementedBy      string       `gorm:"size:100" json:"implementedBy"`
	ImplementationDate time.Time    `json:"implementationDate"`
	Actividad          activity.Log `gorm:"type:jsonb" json:"actividad"`
	CreatedBy          string       `gorm:"size:100;not null" json:"createdBy"`
	UpdatedBy          string       `gorm:"size:100;not null" json:"updatedBy"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}
