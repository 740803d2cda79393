package reports

import (
	"testing"

	"seguimiento-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestConsolidateWeekly(t *testing.T) {
	report := &models.WeeklyReport{
		Tasks: models.TaskSnapshots{
			{TaskID: 1, Status: models.TaskCompleted},
			{TaskID: 2, Status: models.TaskPlanned},
			{TaskID: 3, Status: models.TaskCompleted},
		},
		Improvements: models.IDList{10},
	}

	ConsolidateWeekly(report, "user-1")

	assert.Equal(t, 3, report.CalculatedMetrics.TotalTasks)
	assert.Equal(t, 2, report.CalculatedMetrics.CompletedTasks)
	assert.Equal(t, 1, report.CalculatedMetrics.Improvements)
	assert.True(t, report.IsConsolidated)
	assert.Equal(t, "user-1", report.UpdatedBy)

	assert.Len(t, report.Actividad, 1)
	assert.Equal(t, "Reporte consolidado", report.Actividad[0].Accion)
	assert.Equal(t, "user-1", report.Actividad[0].Usuario)
}

func TestConsolidateWeeklyTwiceSameTotalsGrowingLog(t *testing.T) {
	report := &models.WeeklyReport{
		Tasks: models.TaskSnapshots{
			{TaskID: 1, Status: models.TaskCompleted},
		},
	}

	ConsolidateWeekly(report, "user-1")
	first := report.CalculatedMetrics

	ConsolidateWeekly(report, "user-2")

	assert.Equal(t, first, report.CalculatedMetrics)
	// cada corrida deja su propia entrada en la bitácora
	assert.Len(t, report.Actividad, 2)
}

func TestConsolidateWeeklyEmptyReport(t *testing.T) {
	report := &models.WeeklyReport{}

	ConsolidateWeekly(report, "user-1")

	assert.Equal(t, 0, report.CalculatedMetrics.TotalTasks)
	assert.Equal(t, 0, report.CalculatedMetrics.CompletedTasks)
	assert.Equal(t, 0, report.CalculatedMetrics.Improvements)
	assert.True(t, report.IsConsolidated)
}

func TestConsolidateMonthlySumsConsolidatedWeeklies(t *testing.T) {
	report := &models.MonthlyReport{}
	weeklies := []models.WeeklyReport{
		{
			IsConsolidated: true,
			LocationSlug:   "sucursal-centro",
			CalculatedMetrics: models.WeeklyCalculatedMetrics{
				TotalTasks: 5, CompletedTasks: 3, Improvements: 2,
			},
		},
		{
			IsConsolidated: true,
			LocationSlug:   "sucursal-norte",
			CalculatedMetrics: models.WeeklyCalculatedMetrics{
				TotalTasks: 4, CompletedTasks: 4, Improvements: 1,
			},
		},
		{
			// sin consolidar: su bloque calculado no es autoritativo
			IsConsolidated: false,
			LocationSlug:   "sucursal-centro",
			CalculatedMetrics: models.WeeklyCalculatedMetrics{
				TotalTasks: 99, CompletedTasks: 99, Improvements: 99,
			},
		},
	}

	ConsolidateMonthly(report, weeklies, nil, nil, "user-1")

	assert.Equal(t, 9, report.CalculatedMetrics.TotalTasks)
	assert.Equal(t, 7, report.CalculatedMetrics.CompletedTasks)
	assert.Equal(t, 3, report.CalculatedMetrics.Improvements)
	assert.True(t, report.IsConsolidated)
	assert.Equal(t, "user-1", report.UpdatedBy)

	assert.Equal(t, 5, report.TotalTasksByLocation["sucursal-centro"])
	assert.Equal(t, 4, report.TotalTasksByLocation["sucursal-norte"])
	assert.Equal(t, 2, report.TotalImprovementsByLocation["sucursal-centro"])
	assert.Equal(t, 1, report.TotalImprovementsByLocation["sucursal-norte"])
}

func TestConsolidateMonthlyMetricTotalsAndAverages(t *testing.T) {
	report := &models.MonthlyReport{}
	metricDocs := []models.Metric{
		{Type: models.MetricPerformance, Value: 80, LocationID: 1},
		{Type: models.MetricPerformance, Value: 60, LocationID: 1},
		{Type: models.MetricEngagement, Value: 40, LocationID: 1},
		{Type: models.MetricConversion, Value: 10, LocationID: 2},
		{Type: models.MetricPerformance, Value: 90, LocationID: 3}, // ubicación borrada
	}
	slugs := map[uint]string{
		1: "sucursal-centro",
		2: "sucursal-norte",
	}

	ConsolidateMonthly(report, nil, metricDocs, slugs, "user-1")

	assert.InDelta(t, 230, report.CalculatedMetrics.Metrics.Performance, 0.001)
	assert.InDelta(t, 40, report.CalculatedMetrics.Metrics.Engagement, 0.001)
	assert.InDelta(t, 10, report.CalculatedMetrics.Metrics.Conversion, 0.001)

	centro := report.AverageMetricsByLocation["sucursal-centro"]
	assert.InDelta(t, 70, centro.Performance, 0.001)
	assert.InDelta(t, 40, centro.Engagement, 0.001)
	assert.InDelta(t, 0, centro.Conversion, 0.001)

	norte := report.AverageMetricsByLocation["sucursal-norte"]
	assert.InDelta(t, 10, norte.Conversion, 0.001)

	// la métrica con ubicación desconocida suma al total global pero no
	// genera promedio por ubicación
	_, ok := report.AverageMetricsByLocation["sucursal-sur"]
	assert.False(t, ok)
	assert.Len(t, report.AverageMetricsByLocation, 2)
}
