package improvements

import (
	"strings"
	"time"

	"seguimiento-backend/internal/activity"
	"seguimiento-backend/internal/database"
	"seguimiento-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateImprovementRequest struct {
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	Status             models.TaskStatus `json:"status"`
	Type               string            `json:"type"`
	Client             uint              `json:"client"`
	Location           uint              `json:"location"`
	ImplementedBy      string            `json:"implementedBy"`
	ImplementationDate time.Time         `json:"implementationDate"`
	UserID             string            `json:"userId"`
}

type UpdateImprovementRequest struct {
	Title              *string            `json:"title"`
	Description        *string            `json:"description"`
	Status             *models.TaskStatus `json:"status"`
	Type               *string            `json:"type"`
	Client             *uint              `json:"client"`
	Location           *uint              `json:"location"`
	ImplementedBy      *string            `json:"implementedBy"`
	ImplementationDate *time.Time         `json:"implementationDate"`
	NuevaActividad     string             `json:"nuevaActividad"`
	UserID             string             `json:"userId"`
}

type ImprovementResponse struct {
	models.Improvement
	Client   *models.NameRef `json:"client,omitempty"`
	Location *models.NameRef `json:"location,omitempty"`
}

func toResponse(improvement models.Improvement) ImprovementResponse {
	res := ImprovementResponse{Improvement: improvement}
	var client models.Client
	if err := database.DB.Select("id", "name").First(&client, "id = ?", improvement.ClientID).Error; err == nil {
		res.Client = &models.NameRef{ID: client.ID, Name: client.Name}
	}
	var location models.Location
	if err := database.DB.Select("id", "name").First(&location, "id = ?", improvement.LocationID).Error; err == nil {
		res.Location = &models.NameRef{ID: location.ID, Name: location.Name}
	}
	return res
}

func CreateImprovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateImprovementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Improvement title is required")
		}
		if body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userId is required")
		}
		if body.Status == "" {
			body.Status = models.TaskPlanned
		}

		improvement := models.Improvement{
			Title:              body.Title,
			Description:        body.Description,
			Status:             body.Status,
			Type:               body.Type,
			ClientID:           body.Client,
			LocationID:         body.Location,
			ImplementedBy:      body.ImplementedBy,
			ImplementationDate: body.ImplementationDate,
			Actividad:          activity.Log{},
			CreatedBy:          body.UserID,
			UpdatedBy:          body.UserID,
		}

		if err := database.DB.Create(&improvement).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error creating improvement",
				"error":   err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(improvement))
	}
}

func ListImprovementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.Improvement{})

		if client := c.Query("client"); client != "" {
			query = query.Where("client_id = ?", client)
		}
		if location := c.Query("location"); location != "" {
			query = query.Where("location_id = ?", location)
		}
		if improvementType := c.Query("type"); improvementType != "" {
			query = query.Where("type = ?", improvementType)
		}

		var improvements []models.Improvement
		if err := query.Order("implementation_date DESC").Find(&improvements).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error fetching improvements",
				"error":   err.Error(),
			})
		}

		res := make([]ImprovementResponse, 0, len(improvements))
		for _, improvement := range improvements {
			res = append(res, toResponse(improvement))
		}

		return c.JSON(res)
	}
}

func GetImprovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var improvement models.Improvement
		if err := database.DB.First(&improvement, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Improvement not found")
		}

		return c.JSON(toResponse(improvement))
	}
}

func UpdateImprovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var improvement models.Improvement
		if err := database.DB.First(&improvement, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Improvement not found")
		}

		var body UpdateImprovementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Title != nil {
			improvement.Title = *body.Title
		}
		if body.Description != nil {
			improvement.Description = *body.Description
		}
		if body.Status != nil {
			improvement.Status = *body.Status
		}
		if body.Type != nil {
			improvement.Type = *body.Type
		}
		if body.Client != nil {
			improvement.ClientID = *body.Client
		}
		if body.Location != nil {
			improvement.LocationID = *body.Location
		}
		if body.ImplementedBy != nil {
			improvement.ImplementedBy = *body.ImplementedBy
		}
		if body.ImplementationDate != nil {
			improvement.ImplementationDate = *body.ImplementationDate
		}

		// si no llega nuevaActividad el array existente queda intacto
		improvement.Actividad = activity.Append(improvement.Actividad, body.NuevaActividad, body.UserID)
		improvement.UpdatedBy = body.UserID

		if err := database.DB.Save(&improvement).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error updating improvement",
				"error":   err.Error(),
			})
		}

		return c.JSON(toResponse(improvement))
	}
}

func DeleteImprovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var improvement models.Improvement
		if err := database.DB.First(&improvement, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Improvement not found")
		}

		if err := database.DB.Delete(&improvement).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error deleting improvement",
				"error":   err.Error(),
			})
		}

		return c.JSON(fiber.Map{"message": "Improvement deleted successfully"})
	}
}
