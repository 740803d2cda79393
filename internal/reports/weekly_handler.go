package reports

import (
	"errors"
	"strings"
	"time"

	"seguimiento-backend/internal/activity"
	"seguimiento-backend/internal/database"
	"seguimiento-backend/internal/models"
	"seguimiento-backend/internal/slug"

	"github.com/gofiber/fiber/v2"
)

// errVersionConflict: otra petición escribió el reporte entre nuestra
// lectura y nuestra escritura condicional.
var errVersionConflict = errors.New("report version conflict")

type CreateWeeklyReportRequest struct {
	Slug         string                `json:"slug"`
	Title        string                `json:"title"`
	WeekNumber   int                   `json:"weekNumber"`
	Year         int                   `json:"year"`
	StartDate    time.Time             `json:"startDate"`
	EndDate      time.Time             `json:"endDate"`
	Client       uint                  `json:"client"`
	Location     uint                  `json:"location"`
	Tasks        []models.TaskSnapshot `json:"tasks"`
	Improvements []uint                `json:"improvements"`
	Metrics      []uint                `json:"metrics"`
	UserID       string                `json:"userId"`
}

type UpdateWeeklyReportRequest struct {
	Slug             *string                `json:"slug"`
	Title            *string                `json:"title"`
	WeekNumber       *int                   `json:"weekNumber"`
	Year             *int                   `json:"year"`
	StartDate        *time.Time             `json:"startDate"`
	EndDate          *time.Time             `json:"endDate"`
	Tasks            *[]models.TaskSnapshot `json:"tasks"`
	Improvements     *[]uint                `json:"improvements"`
	Metrics          *[]uint                `json:"metrics"`
	NuevaActividad   string                 `json:"nuevaActividad"`
	NuevaObservacion string                 `json:"nuevaObservacion"`
	UserID           string                 `json:"userId"`
}

// saveWeekly persiste el reporte con una escritura condicional por
// versión: si otra petición escribió primero, no se pierde su cambio y
// el llamador recibe errVersionConflict.
func saveWeekly(report *models.WeeklyReport) error {
	result := database.DB.Model(&models.WeeklyReport{}).
		Where("id = ? AND version = ?", report.ID, report.Version).
		Updates(map[string]interface{}{
			"slug":               report.Slug,
			"title":              report.Title,
			"week_number":        report.WeekNumber,
			"year":               report.Year,
			"start_date":         report.StartDate,
			"end_date":           report.EndDate,
			"client_id":          report.ClientID,
			"client_slug":        report.ClientSlug,
			"location_id":        report.LocationID,
			"location_slug":      report.LocationSlug,
			"is_consolidated":    report.IsConsolidated,
			"tasks":              report.Tasks,
			"improvements":       report.Improvements,
			"metrics":            report.Metrics,
			"calculated_metrics": report.CalculatedMetrics,
			"observaciones":      report.Observaciones,
			"actividad":          report.Actividad,
			"updated_by":         report.UpdatedBy,
			"version":            report.Version + 1,
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

func CreateWeeklyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateWeeklyReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Report title is required")
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

		report := models.WeeklyReport{
			Slug:          body.Slug,
			Title:         body.Title,
			WeekNumber:    body.WeekNumber,
			Year:          body.Year,
			StartDate:     body.StartDate,
			EndDate:       body.EndDate,
			ClientID:      client.ID,
			ClientSlug:    client.Slug,
			LocationID:    location.ID,
			LocationSlug:  slug.Make(location.Name),
			Tasks:         models.TaskSnapshots(body.Tasks),
			Improvements:  models.IDList(body.Improvements),
			Metrics:       models.IDList(body.Metrics),
			Observaciones: activity.Observations{},
			Actividad:     activity.Log{},
			CreatedBy:     body.UserID,
			UpdatedBy:     body.UserID,
		}

		if err := database.DB.Create(&report).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error creating weekly report",
				"error":   err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(expandWeekly(report))
	}
}

func ListWeeklyReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.WeeklyReport{})

		if client := c.Query("client"); client != "" {
			query = query.Where("client_id = ?", client)
		}
		if location := c.Query("location"); location != "" {
			query = query.Where("location_id = ?", location)
		}
		if year := c.Query("year"); year != "" {
			query = query.Where("year = ?", year)
		}
		if weekNumber := c.Query("weekNumber"); weekNumber != "" {
			query = query.Where("week_number = ?", weekNumber)
		}

		var reports []models.WeeklyReport
		if err := query.Order("year DESC, week_number DESC").Find(&reports).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error fetching weekly reports",
				"error":   err.Error(),
			})
		}

		res := make([]WeeklyReportResponse, 0, len(reports))
		for _, report := range reports {
			res = append(res, expandWeekly(report))
		}

		return c.JSON(res)
	}
}

func GetWeeklyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var report models.WeeklyReport
		if err := database.DB.First(&report, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Weekly report not found")
		}

		return c.JSON(expandWeekly(report))
	}
}

func UpdateWeeklyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var report models.WeeklyReport
		if err := database.DB.First(&report, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Weekly report not found")
		}

		var body UpdateWeeklyReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Slug != nil {
			report.Slug = *body.Slug
		}
		if body.Title != nil {
			report.Title = *body.Title
		}
		if body.WeekNumber != nil {
			report.WeekNumber = *body.WeekNumber
		}
		if body.Year != nil {
			report.Year = *body.Year
		}
		if body.StartDate != nil {
			report.StartDate = *body.StartDate
		}
		if body.EndDate != nil {
			report.EndDate = *body.EndDate
		}
		if body.Tasks != nil {
			report.Tasks = models.TaskSnapshots(*body.Tasks)
		}
		if body.Improvements != nil {
			report.Improvements = models.IDList(*body.Improvements)
		}
		if body.Metrics != nil {
			report.Metrics = models.IDList(*body.Metrics)
		}

		// bitácora y observaciones tienen disparadores independientes en
		// la misma petición; si el texto viene vacío el array no se toca
		report.Actividad = activity.Append(report.Actividad, body.NuevaActividad, body.UserID)
		report.Observaciones = activity.AppendObservation(report.Observaciones, body.NuevaObservacion, body.UserID)
		report.UpdatedBy = body.UserID

		if err := saveWeekly(&report); err != nil {
			if errors.Is(err, errVersionConflict) {
				return fiber.NewError(fiber.StatusConflict, "Weekly report was modified by another request")
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error updating weekly report",
				"error":   err.Error(),
			})
		}

		return c.JSON(expandWeekly(report))
	}
}

func DeleteWeeklyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var report models.WeeklyReport
		if err := database.DB.First(&report, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Weekly report not found")
		}

		if err := database.DB.Delete(&report).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error deleting weekly report",
				"error":   err.Error(),
			})
		}

		return c.JSON(fiber.Map{"message": "Weekly report deleted successfully"})
	}
}

// ConsolidateWeeklyReportHandler: POST /api/weekly/:id/consolidate
func ConsolidateWeeklyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var report models.WeeklyReport
		if err := database.DB.First(&report, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Weekly report not found")
		}

		var body struct {
			UserID string `json:"userId"`
		}
		_ = c.BodyParser(&body)

		ConsolidateWeekly(&report, body.UserID)

		if err := saveWeekly(&report); err != nil {
			if errors.Is(err, errVersionConflict) {
				return fiber.NewError(fiber.StatusConflict, "Weekly report was modified by another request")
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error consolidating weekly report",
				"error":   err.Error(),
			})
		}

		return c.JSON(expandWeekly(report))
	}
}
