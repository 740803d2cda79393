package tasks

import (
	"strings"
	"time"

	"seguimiento-backend/internal/activity"
	"seguimiento-backend/internal/database"
	"seguimiento-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateTaskRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	Type        string            `json:"type"`
	Client      uint              `json:"client"`
	Location    uint              `json:"location"`
	AssignedTo  string            `json:"assignedTo"`
	DueDate     time.Time         `json:"dueDate"`
	UserID      string            `json:"userId"`
}

type UpdateTaskRequest struct {
	Title          *string            `json:"title"`
	Description    *string            `json:"description"`
	Status         *models.TaskStatus `json:"status"`
	Type           *string            `json:"type"`
	Client         *uint              `json:"client"`
	Location       *uint              `json:"location"`
	AssignedTo     *string            `json:"assignedTo"`
	DueDate        *time.Time         `json:"dueDate"`
	CompletedDate  *time.Time         `json:"completedDate"`
	NuevaActividad string             `json:"nuevaActividad"`
	UserID         string             `json:"userId"`
}

type TaskResponse struct {
	models.Task
	Client   *models.NameRef `json:"client,omitempty"`
	Location *models.NameRef `json:"location,omitempty"`
}

func toResponse(task models.Task) TaskResponse {
	res := TaskResponse{Task: task}
	var client models.Client
	if err := database.DB.Select("id", "name").First(&client, "id = ?", task.ClientID).Error; err == nil {
		res.Client = &models.NameRef{ID: client.ID, Name: client.Name}
	}
	var location models.Location
	if err := database.DB.Select("id", "name").First(&location, "id = ?", task.LocationID).Error; err == nil {
		res.Location = &models.NameRef{ID: location.ID, Name: location.Name}
	}
	return res
}

func CreateTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTaskRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Task title is required")
		}
		if body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userId is required")
		}
		if body.Status == "" {
			body.Status = models.TaskPlanned
		}

		task := models.Task{
			Title:       body.Title,
			Description: body.Description,
			Status:      body.Status,
			Type:        body.Type,
			ClientID:    body.Client,
			LocationID:  body.Location,
			AssignedTo:  body.AssignedTo,
			DueDate:     body.DueDate,
			Actividad:   activity.Log{},
			CreatedBy:   body.UserID,
			UpdatedBy:   body.UserID,
		}

		// una tarea que ya nace completada también recibe su fecha
		if task.Status == models.TaskCompleted {
			now := time.Now()
			task.CompletedDate = &now
		}

		if err := database.DB.Create(&task).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error creating task",
				"error":   err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(task))
	}
}

func ListTasksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.Task{})

		if client := c.Query("client"); client != "" {
			query = query.Where("client_id = ?", client)
		}
		if location := c.Query("location"); location != "" {
			query = query.Where("location_id = ?", location)
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if taskType := c.Query("type"); taskType != "" {
			query = query.Where("type = ?", taskType)
		}

		var tasks []models.Task
		if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error fetching tasks",
				"error":   err.Error(),
			})
		}

		res := make([]TaskResponse, 0, len(tasks))
		for _, task := range tasks {
			res = append(res, toResponse(task))
		}

		return c.JSON(res)
	}
}

func GetTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var task models.Task
		if err := database.DB.First(&task, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Task not found")
		}

		return c.JSON(toResponse(task))
	}
}

func UpdateTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var task models.Task
		if err := database.DB.First(&task, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Task not found")
		}

		var body UpdateTaskRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		previousStatus := task.Status

		if body.Title != nil {
			task.Title = *body.Title
		}
		if body.Description != nil {
			task.Description = *body.Description
		}
		if body.Status != nil {
			task.Status = *body.Status
		}
		if body.Type != nil {
			task.Type = *body.Type
		}
		if body.Client != nil {
			task.ClientID = *body.Client
		}
		if body.Location != nil {
			task.LocationID = *body.Location
		}
		if body.AssignedTo != nil {
			task.AssignedTo = *body.AssignedTo
		}
		if body.DueDate != nil {
			task.DueDate = *body.DueDate
		}
		if body.CompletedDate != nil {
			task.CompletedDate = body.CompletedDate
		}

		// la fecha de completado se fija automáticamente la primera vez
		// que la tarea pasa a Completed; nunca se pisa después
		if task.Status == models.TaskCompleted &&
			previousStatus != models.TaskCompleted &&
			task.CompletedDate == nil {
			now := time.Now()
			task.CompletedDate = &now
		}

		// nuevaActividad es un campo de un solo uso: dispara el append y
		// no se persiste tal cual
		task.Actividad = activity.Append(task.Actividad, body.NuevaActividad, body.UserID)
		task.UpdatedBy = body.UserID

		if err := database.DB.Save(&task).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error updating task",
				"error":   err.Error(),
			})
		}

		return c.JSON(toResponse(task))
	}
}

func DeleteTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var task models.Task
		if err := database.DB.First(&task, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Task not found")
		}

		if err := database.DB.Delete(&task).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error deleting task",
				"error":   err.Error(),
			})
		}

		return c.JSON(fiber.Map{"message": "Task deleted successfully"})
	}
}
