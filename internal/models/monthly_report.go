package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// MetricTotals: sumas por tipo de métrica.
type MetricTotals struct {
	Performance float64 `json:"performance"`
	Engagement  float64 `json:"engagement"`
	Conversion  float64 `json:"conversion"`
}

// MonthlyCalculatedMetrics: bloque derivado del reporte mensual, válido
// solo después de consolidar.
type MonthlyCalculatedMetrics struct {
	TotalTasks     int          `json:"totalTasks"`
	CompletedTasks int          `json:"completedTasks"`
	Improvements   int          `json:"improvements"`
	Metrics        MetricTotals `json:"metrics"`
}

func (m MonthlyCalculatedMetrics) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *MonthlyCalculatedMetrics) Scan(value any) error {
	return scanJSON(value, m)
}

// LocationTotals: totales por slug de ubicación.
type LocationTotals map[string]int

func (t LocationTotals) Value() (driver.Value, error) {
	if t == nil {
		t = LocationTotals{}
	}
	return json.Marshal(t)
}

func (t *LocationTotals) Scan(value any) error {
	return scanJSON(value, t)
}

// MetricAverage: promedios por tipo de métrica para una ubicación.
type MetricAverage struct {
	Performance float64 `json:"performance"`
	Engagement  float64 `json:"engagement"`
	Conversion  float64 `json:"conversion"`
}

type LocationMetricAverages map[string]MetricAverage

func (a LocationMetricAverages) Value() (driver.Value, error) {
	if a == nil {
		a = LocationMetricAverages{}
	}
	return json.Marshal(a)
}

func (a *LocationMetricAverages) Scan(value any) error {
	return scanJSON(value, a)
}

type MonthlyReport struct {
	ID                uint                     `gorm:"primaryKey" json:"id"`
	Slug              string                   `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Title             string                   `gorm:"size:200;not null" json:"title"`
	Month             int                      `gorm:"index;not null" json:"month"`
	Year              int                      `gorm:"index;not null" json:"year"`
	ClientID          uint                     `gorm:"index;not null" json:"client"`
	ClientSlug        string                   `gorm:"size:150;index" json:"clientSlug"`
	LocationID        uint                     `gorm:"index;not null" json:"location"`
	LocationSlug      string                   `gorm:"size:150;index" json:"locationSlug"`
	IsConsolidated    bool                     `gorm:"default:false" json:"isConsolidated"`
	WeeklyReports     IDList                   `gorm:"type:jsonb" json:"weeklyReports"`
	Metrics           IDList                   `gorm:"type:jsonb" json:"metrics"`
	CalculatedMetrics MonthlyCalculatedMetrics `gorm:"type:jsonb" json:"calculatedMetrics"`

	PerformanceSummary string `gorm:"type:text" json:"performanceSummary"`
	NextMonthGoals     string `gorm:"type:text" json:"nextMonthGoals"`

	TotalTasksByLocation        LocationTotals         `gorm:"type:jsonb" json:"totalTasksByLocation"`
	TotalImprovementsByLocation LocationTotals         `gorm:"type:jsonb" json:"totalImprovementsByLocation"`
	AverageMetricsByLocation    LocationMetricAverages `gorm:"type:jsonb" json:"averageMetricsByLocation"`

	CreatedBy string    `gorm:"size:100;not null" json:"createdBy"`
	UpdatedBy string    `gorm:"size:100;not null" json:"updatedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Version uint `gorm:"default:0" json:"-"`
}
