package models

import "time"

type MetricType string

const (
	MetricPerformance MetricType = "Performance"
	MetricEngagement  MetricType = "Engagement"
	MetricConversion  MetricType = "Conversion"
)

// Metric: medición puntual de rendimiento, engagement o conversión por
// cliente y ubicación.
type Metric struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:150;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Type        MetricType `gorm:"size:20;not null" json:"type"`
	Value       float64    `gorm:"not null" json:"value"`
	ClientID    uint       `gorm:"index;not null" json:"client"`
	LocationID  uint       `gorm:"index;not null" json:"location"`
	Date        time.Time  `gorm:"index;not null" json:"date"`
	Source      string     `gorm:"size:100" json:"source"`
	Channel     string     `gorm:"size:100" json:"channel"`
	Metadata    Metadata   `gorm:"type:jsonb" json:"metadata"`
	CreatedBy   string     `gorm:"size:100;not null" json:"createdBy"`
	UpdatedBy   string     `gorm:"size:100;not null" json:"updatedBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
