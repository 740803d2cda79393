package reports

import (
	"seguimiento-backend/internal/activity"
	"seguimiento-backend/internal/models"
)

// Motores de consolidación. Son funciones puras sobre el documento ya
// cargado; la persistencia (escritura condicional por versión) queda en
// los handlers.

// ConsolidateWeekly recalcula el bloque de métricas del reporte semanal
// a partir de los snapshots de tareas y las mejoras vinculadas, marca el
// reporte como consolidado y registra la actividad. Reconsolidar vuelve
// a producir los mismos totales pero agrega una nueva entrada a la
// bitácora cada vez, igual que el comportamiento histórico del sistema.
func ConsolidateWeekly(report *models.WeeklyReport, userID string) {
	completed := 0
	for _, t := range report.Tasks {
		if t.Status == models.TaskCompleted {
			completed++
		}
	}

	report.CalculatedMetrics = models.WeeklyCalculatedMetrics{
		TotalTasks:     len(report.Tasks),
		CompletedTasks: completed,
		Improvements:   len(report.Improvements),
	}
	report.IsConsolidated = true
	report.Actividad = activity.Append(report.Actividad, "Reporte consolidado", userID)
	report.UpdatedBy = userID
}

// ConsolidateMonthly agrega los bloques calculados de los reportes
// semanales vinculados y las métricas del mes. Solo suma semanales ya
// consolidados: un bloque sin consolidar no es autoritativo y diluiría
// los totales con ceros. Los promedios por ubicación se agrupan por el
// slug de la ubicación de cada métrica (locationSlugByID).
func ConsolidateMonthly(
	report *models.MonthlyReport,
	weeklies []models.WeeklyReport,
	metricDocs []models.Metric,
	locationSlugByID map[uint]string,
	userID string,
) {
	calc := models.MonthlyCalculatedMetrics{}
	tasksByLocation := models.LocationTotals{}
	improvementsByLocation := models.LocationTotals{}

	for _, w := range weeklies {
		if !w.IsConsolidated {
			continue
		}
		calc.TotalTasks += w.CalculatedMetrics.TotalTasks
		calc.CompletedTasks += w.CalculatedMetrics.CompletedTasks
		calc.Improvements += w.CalculatedMetrics.Improvements

		if w.LocationSlug != "" {
			tasksByLocation[w.LocationSlug] += w.CalculatedMetrics.TotalTasks
			improvementsByLocation[w.LocationSlug] += w.CalculatedMetrics.Improvements
		}
	}

	type metricAccum struct {
		performance, engagement, conversion float64
		performanceN, engagementN, conversionN int
	}
	byLocation := map[string]*metricAccum{}

	for _, m := range metricDocs {
		switch m.Type {
		case models.MetricPerformance:
			calc.Metrics.Performance += m.Value
		case models.MetricEngagement:
			calc.Metrics.Engagement += m.Value
		case models.MetricConversion:
			calc.Metrics.Conversion += m.Value
		}

		locSlug, ok := locationSlugByID[m.LocationID]
		if !ok || locSlug == "" {
			continue
		}
		acc := byLocation[locSlug]
		if acc == nil {
			acc = &metricAccum{}
			byLocation[locSlug] = acc
		}
		switch m.Type {
		case models.MetricPerformance:
			acc.performance += m.Value
			acc.performanceN++
		case models.MetricEngagement:
			acc.engagement += m.Value
			acc.engagementN++
		case models.MetricConversion:
			acc.conversion += m.Value
			acc.conversionN++
		}
	}

	averages := models.LocationMetricAverages{}
	for locSlug, acc := range byLocation {
		avg := models.MetricAverage{}
		if acc.performanceN > 0 {
			avg.Performance = acc.performance / float64(acc.performanceN)
		}
		if acc.engagementN > 0 {
			avg.Engagement = acc.engagement / float64(acc.engagementN)
		}
		if acc.conversionN > 0 {
			avg.Conversion = acc.conversion / float64(acc.conversionN)
		}
		averages[locSlug] = avg
	}

	report.CalculatedMetrics = calc
	report.TotalTasksByLocation = tasksByLocation
	report.TotalImprovementsByLocation = improvementsByLocation
	report.AverageMetricsByLocation = averages
	report.IsConsolidated = true
	report.UpdatedBy = userID
}
