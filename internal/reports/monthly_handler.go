package reports

import (
	"errors"
	"strings"

	"seguimiento-backend/internal/database"
	"seguimiento-backend/internal/models"
	"seguimiento-backend/internal/slug"

	"github.com/gofiber/fiber/v2"
)

type CreateMonthlyReportRequest struct {
	Slug               string   `json:"slug"`
	Title              string   `json:"title"`
	Month              int      `json:"month"`
	Year               int      `json:"year"`
	Client             uint     `json:"client"`
	Location           uint     `json:"location"`
	WeeklyReports      []uint   `json:"weeklyReports"`
	Metrics            []uint   `json:"metrics"`
	PerformanceSummary string   `json:"performanceSummary"`
	NextMonthGoals     string   `json:"nextMonthGoals"`
	UserID             string   `json:"userId"`
}

type UpdateMonthlyReportRequest struct {
	Slug               *string   `json:"slug"`
	Title              *string   `json:"title"`
	Month              *int      `json:"month"`
	Year               *int      `json:"year"`
	WeeklyReports      *[]uint   `json:"weeklyReports"`
	Metrics            *[]uint   `json:"metrics"`
	PerformanceSummary *string   `json:"performanceSummary"`
	NextMonthGoals     *string   `json:"nextMonthGoals"`
	UserID             string    `json:"userId"`
}

func saveMonthly(report *models.MonthlyReport) error {
	result := database.DB.Model(&models.MonthlyReport{}).
		Where("id = ? AND version = ?", report.ID, report.Version).
		Updates(map[string]interface{}{
			"slug":                           report.Slug,
			"title":                          report.Title,
			"month":                          report.Month,
			"year":                           report.Year,
			"client_id":                      report.ClientID,
			"client_slug":                    report.ClientSlug,
			"location_id":                    report.LocationID,
			"location_slug":                  report.LocationSlug,
			"is_consolidated":                report.IsConsolidated,
			"weekly_reports":                 report.WeeklyReports,
			"metrics":                        report.Metrics,
			"calculated_metrics":             report.CalculatedMetrics,
			"performance_summary":            report.PerformanceSummary,
			"next_month_goals":               report.NextMonthGoals,
			"total_tasks_by_location":        report.TotalTasksByLocation,
			"total_improvements_by_location": report.TotalImprovementsByLocation,
			"average_metrics_by_location":    report.AverageMetricsByLocation,
			"updated_by":                     report.UpdatedBy,
			"version":                        report.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errVersionConflict
	}
	report.Version++
	return nil
}

func CreateMonthlyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMonthlyReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Report title is required")
		}
		if body.Month < 1 || body.Month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "Month must be between 1 and 12")
		}
		if body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userId is required")
		}

		var client models.Client
		if err := database.DB.First(&client, "id = ?", body.Client).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Client not found")
		}
		var location models.Location
		if err := database.DB.First(&location, "id = ?", body.Location).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Location not found")
		}

		if body.Slug == "" {
			body.Slug = slug.Make(body.Title)
		}

		report := models.MonthlyReport{
			Slug:               body.Slug,
			Title:              body.Title,
			Month:              body.Month,
			Year:               body.Year,
			ClientID:           client.ID,
			ClientSlug:         client.Slug,
			LocationID:         location.ID,
			LocationSlug:       slug.Make(location.Name),
			WeeklyReports:      models.IDList(body.WeeklyReports),
			Metrics:            models.IDList(body.Metrics),
			PerformanceSummary: body.PerformanceSummary,
			NextMonthGoals:     body.NextMonthGoals,
			CreatedBy:          body.UserID,
			UpdatedBy:          body.UserID,
		}

		if err := database.DB.Create(&report).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error al crear el reporte mensual",
				"error":   err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(expandMonthly(report))
	}
}

func ListMonthlyReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.MonthlyReport{})

		if client := c.Query("client"); client != "" {
			query = query.Where("client_id = ?", client)
		}
		if location := c.Query("location"); location != "" {
			query = query.Where("location_id = ?", location)
		}
		if year := c.Query("year"); year != "" {
			query = query.Where("year = ?", year)
		}
		if month := c.Query("month"); month != "" {
			query = query.Where("month = ?", month)
		}

		var reports []models.MonthlyReport
		if err := query.Order("year DESC, month DESC").Find(&reports).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error al obtener los reportes mensuales",
				"error":   err.Error(),
			})
		}

		res := make([]MonthlyReportResponse, 0, len(reports))
		for _, report := range reports {
			res = append(res, expandMonthly(report))
		}

		return c.JSON(res)
	}
}

func GetMonthlyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var report models.MonthlyReport
		if err := database.DB.First(&report, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reporte mensual no encontrado")
		}

		return c.JSON(expandMonthly(report))
	}
}

func UpdateMonthlyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var report models.MonthlyReport
		if err := database.DB.First(&report, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reporte mensual no encontrado")
		}

		var body UpdateMonthlyReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Slug != nil {
			report.Slug = *body.Slug
		}
		if body.Title != nil {
			report.Title = *body.Title
		}
		if body.Month != nil {
			if *body.Month < 1 || *body.Month > 12 {
				return fiber.NewError(fiber.StatusBadRequest, "Month must be between 1 and 12")
			}
			report.Month = *body.Month
		}
		if body.Year != nil {
			report.Year = *body.Year
		}
		if body.WeeklyReports != nil {
			report.WeeklyReports = models.IDList(*body.WeeklyReports)
		}
		if body.Metrics != nil {
			report.Metrics = models.IDList(*body.Metrics)
		}
		if body.PerformanceSummary != nil {
			report.PerformanceSummary = *body.PerformanceSummary
		}
		if body.NextMonthGoals != nil {
			report.NextMonthGoals = *body.NextMonthGoals
		}
		report.UpdatedBy = body.UserID

		if err := saveMonthly(&report); err != nil {
			if errors.Is(err, errVersionConflict) {
				return fiber.NewError(fiber.StatusConflict, "El reporte mensual fue modificado por otra petición")
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error al actualizar el reporte mensual",
				"error":   err.Error(),
			})
		}

		return c.JSON(expandMonthly(report))
	}
}

func DeleteMonthlyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var report models.MonthlyReport
		if err := database.DB.First(&report, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reporte mensual no encontrado")
		}

		if err := database.DB.Delete(&report).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error al eliminar el reporte mensual",
				"error":   err.Error(),
			})
		}

		return c.JSON(fiber.Map{"message": "Reporte mensual eliminado exitosamente"})
	}
}

// ConsolidateMonthlyReportHandler: POST /api/monthly/:id/consolidate
func ConsolidateMonthlyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var report models.MonthlyReport
		if err := database.DB.First(&report, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reporte mensual no encontrado")
		}

		var body struct {
			UserID string `json:"userId"`
		}
		_ = c.BodyParser(&body)

		var weeklies []models.WeeklyReport
		if len(report.WeeklyReports) > 0 {
			if err := database.DB.Where("id IN ?", []uint(report.WeeklyReports)).Find(&weeklies).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Error al consolidar el reporte mensual",
					"error":   err.Error(),
				})
			}
		}

		var metricDocs []models.Metric
		if len(report.Metrics) > 0 {
			if err := database.DB.Where("id IN ?", []uint(report.Metrics)).Find(&metricDocs).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Error al consolidar el reporte mensual",
					"error":   err.Error(),
				})
			}
		}

		// los promedios por ubicación se agrupan por el slug de la
		// ubicación de cada métrica
		locationIDs := make([]uint, 0, len(metricDocs))
		seen := map[uint]bool{}
		for _, m := range metricDocs {
			if m.LocationID != 0 && !seen[m.LocationID] {
				seen[m.LocationID] = true
				locationIDs = append(locationIDs, m.LocationID)
			}
		}
		locationSlugByID := make(map[uint]string, len(locationIDs))
		if len(locationIDs) > 0 {
			var locations []models.Location
			if err := database.DB.Where("id IN ?", locationIDs).Find(&locations).Error; err == nil {
				for _, l := range locations {
					locationSlugByID[l.ID] = slug.Make(l.Name)
				}
			}
		}

		ConsolidateMonthly(&report, weeklies, metricDocs, locationSlugByID, body.UserID)

		if err := saveMonthly(&report); err != nil {
			if errors.Is(err, errVersionConflict) {
				return fiber.NewError(fiber.StatusConflict, "El reporte mensual fue modificado por otra petición")
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error al consolidar el reporte mensual",
				"error":   err.Error(),
			})
		}

		return c.JSON(expandMonthly(report))
	}
}
