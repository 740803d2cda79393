package metrics

import (
	"strings"
	"time"

	"seguimiento-backend/internal/database"
	"seguimiento-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateMetricRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Type        models.MetricType `json:"type"`
	Value       float64           `json:"value"`
	Client      uint              `json:"client"`
	Location    uint              `json:"location"`
	Date        time.Time         `json:"date"`
	Source      string            `json:"source"`
	Channel     string            `json:"channel"`
	Metadata    models.Metadata   `json:"metadata"`
	UserID      string            `json:"userId"`
}

type UpdateMetricRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Type        *models.MetricType `json:"type"`
	Value       *float64           `json:"value"`
	Client      *uint              `json:"client"`
	Location    *uint              `json:"location"`
	Date        *time.Time         `json:"date"`
	Source      *string            `json:"source"`
	Channel     *string            `json:"channel"`
	Metadata    *models.Metadata   `json:"metadata"`
	UserID      string             `json:"userId"`
}

type MetricResponse struct {
	models.Metric
	Client   *models.NameRef `json:"client,omitempty"`
	Location *models.NameRef `json:"location,omitempty"`
}

func toResponse(metric models.Metric) MetricResponse {
	res := MetricResponse{Metric: metric}
	var client models.Client
	if err := database.DB.Select("id", "name").First(&client, "id = ?", metric.ClientID).Error; err == nil {
		res.Client = &models.NameRef{ID: client.ID, Name: client.Name}
	}
	var location models.Location
	if err := database.DB.Select("id", "name").First(&location, "id = ?", metric.LocationID).Error; err == nil {
		res.Location = &models.NameRef{ID: location.ID, Name: location.Name}
	}
	return res
}

func isValidType(t models.MetricType) bool {
	switch t {
	case models.MetricPerformance, models.MetricEngagement, models.MetricConversion:
		return true
	}
	return false
}

func CreateMetricHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMetricRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Metric name is required")
		}
		if !isValidType(body.Type) {
			return fiber.NewError(fiber.StatusBadRequest, "Metric type must be Performance, Engagement or Conversion")
		}
		if body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userId is required")
		}
		if body.Date.IsZero() {
			body.Date = time.Now()
		}

		metric := models.Metric{
			Name:        body.Name,
			Description: body.Description,
			Type:        body.Type,
			Value:       body.Value,
			ClientID:    body.Client,
			LocationID:  body.Location,
			Date:        body.Date,
			Source:      body.Source,
			Channel:     body.Channel,
			Metadata:    body.Metadata,
			CreatedBy:   body.UserID,
			UpdatedBy:   body.UserID,
		}

		if err := database.DB.Create(&metric).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error creating metrics",
				"error":   err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(metric))
	}
}

func ListMetricsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.Metric{})

		if client := c.Query("client"); client != "" {
			query = query.Where("client_id = ?", client)
		}
		if location := c.Query("location"); location != "" {
			query = query.Where("location_id = ?", location)
		}
		if metricType := c.Query("type"); metricType != "" {
			query = query.Where("type = ?", metricType)
		}
		if startDate := c.Query("startDate"); startDate != "" {
			if t, err := time.Parse("2006-01-02", startDate); err == nil {
				query = query.Where("date >= ?", t)
			}
		}
		if endDate := c.Query("endDate"); endDate != "" {
			if t, err := time.Parse("2006-01-02", endDate); err == nil {
				query = query.Where("date <= ?", t)
			}
		}

		var results []models.Metric
		if err := query.Order("date DESC").Find(&results).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error fetching metrics",
				"error":   err.Error(),
			})
		}

		res := make([]MetricResponse, 0, len(results))
		for _, metric := range results {
			res = append(res, toResponse(metric))
		}

		return c.JSON(res)
	}
}

func GetMetricHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var metric models.Metric
		if err := database.DB.First(&metric, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Metrics not found")
		}

		return c.JSON(toResponse(metric))
	}
}

func UpdateMetricHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var metric models.Metric
		if err := database.DB.First(&metric, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Metrics not found")
		}

		var body UpdateMetricRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			metric.Name = *body.Name
		}
		if body.Description != nil {
			metric.Description = *body.Description
		}
		if body.Type != nil {
			if !isValidType(*body.Type) {
				return fiber.NewError(fiber.StatusBadRequest, "Metric type must be Performance, Engagement or Conversion")
			}
			metric.Type = *body.Type
		}
		if body.Value != nil {
			metric.Value = *body.Value
		}
		if body.Client != nil {
			metric.ClientID = *body.Client
		}
		if body.Location != nil {
			metric.LocationID = *body.Location
		}
		if body.Date != nil {
			metric.Date = *body.Date
		}
		if body.Source != nil {
			metric.Source = *body.Source
		}
		if body.Channel != nil {
			metric.Channel = *body.Channel
		}
		if body.Metadata != nil {
			metric.Metadata = *body.Metadata
		}
		metric.UpdatedBy = body.UserID

		if err := database.DB.Save(&metric).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error updating metrics",
				"error":   err.Error(),
			})
		}

		return c.JSON(toResponse(metric))
	}
}

func DeleteMetricHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var metric models.Metric
		if err := database.DB.First(&metric, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Metrics not found")
		}

		if err := database.DB.Delete(&metric).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error deleting metrics",
				"error":   err.Error(),
			})
		}

		return c.JSON(fiber.Map{"message": "Metrics deleted successfully"})
	}
}
