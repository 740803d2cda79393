package models

import (
	"time"

	"seguimiento-backend/internal/activity"
)

type TaskStatus string

const (
	TaskPlanned    TaskStatus = "Planned"
	TaskInProgress TaskStatus = "In progress"
	TaskCompleted  TaskStatus = "Completed"
)

// Task: tarea operativa asignada a un cliente y una ubicación.
// completedDate se fija automáticamente la primera vez que el estado
// pasa a Completed y esa regla nunca lo sobreescribe después.
type Task struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Title         string       `gorm:"size:200;not null" json:"title"`
	Description   string       `gorm:"type:text" json:"description"`
	Status        TaskStatus   `gorm:"size:20;not null;default:Planned" json:"status"`
	Type          string       `gorm:"size:50" json:"type"`
	ClientID      uint         `gorm:"index;not null" json:"client"`
	LocationID    uint         `gorm:"index;not null" json:"location"`
	AssignedTo    string       `gorm:"size:100" json:"assignedTo"`
	DueDate       time.Time    `json:"dueDate"`
	CompletedDate *time.Time   `json:"completedDate"`
	Actividad     activity.Log `gorm:"type:jsonb" json:"actividad"`
	CreatedBy     string       `gorm:"size:100;not null" json:"createdBy"`
	UpdatedBy     string       `gorm:"size:100;not null" json:"updatedBy"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
