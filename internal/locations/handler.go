package locations

import (
	"strings"

	"seguimiento-backend/internal/database"
	"seguimiento-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateLocationRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	City    string `json:"city"`
	Address string `json:"address"`
	Client  uint   `json:"client"`
	UserID  string `json:"userId"`
}

type UpdateLocationRequest struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
	City    *string `json:"city"`
	Address *string `json:"address"`
	Client  *uint   `json:"client"`
	Active  *bool   `json:"active"`
	UserID  string  `json:"userId"`
}

// LocationResponse expande el cliente dueño a {id, name}.
type LocationResponse struct {
	models.Location
	Client *models.NameRef `json:"client,omitempty"`
}

func toResponse(location models.Location) LocationResponse {
	res := LocationResponse{Location: location}
	var client models.Client
	if err := database.DB.Select("id", "name").First(&client, "id = ?", location.ClientID).Error; err == nil {
		res.Client = &models.NameRef{ID: client.ID, Name: client.Name}
	}
	return res
}

func CreateLocationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateLocationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Location name is required")
		}
		if body.Client == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "client is required")
		}
		if body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userId is required")
		}

		// el slug del cliente se denormaliza en la ubicación
		var client models.Client
		if err := database.DB.First(&client, "id = ?", body.Client).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Client not found")
		}

		location := models.Location{
			Name:       body.Name,
			Country:    body.Country,
			City:       body.City,
			Address:    body.Address,
			ClientID:   client.ID,
			ClientSlug: client.Slug,
			Active:     true,
			CreatedBy:  body.UserID,
			UpdatedBy:  body.UserID,
		}

		if err := database.DB.Create(&location).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error creating location",
				"error":   err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(location))
	}
}

func ListLocationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.Location{})

		if client := c.Query("client"); client != "" {
			query = query.Where("client_id = ?", client)
		}
		if active := c.Query("active"); active != "" {
			query = query.Where("active = ?", active == "true")
		}

		var locations []models.Location
		if err := query.Order("name ASC").Find(&locations).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error fetching locations",
				"error":   err.Error(),
			})
		}

		res := make([]LocationResponse, 0, len(locations))
		for _, location := range locations {
			res = append(res, toResponse(location))
		}

		return c.JSON(res)
	}
}

func GetLocationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var location models.Location
		if err := database.DB.First(&location, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Location not found")
		}

		return c.JSON(toResponse(location))
	}
}

func UpdateLocationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var location models.Location
		if err := database.DB.First(&location, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Location not found")
		}

		var body UpdateLocationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Location name is required")
			}
			location.Name = name
		}
		if body.Country != nil {
			location.Country = *body.Country
		}
		if body.City != nil {
			location.City = *body.City
		}
		if body.Address != nil {
			location.Address = *body.Address
		}
		if body.Client != nil {
			var client models.Client
			if err := database.DB.First(&client, "id = ?", *body.Client).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Client not found")
			}
			location.ClientID = client.ID
			location.ClientSlug = client.Slug
		}
		if body.Active != nil {
			location.Active = *body.Active
		}
		location.UpdatedBy = body.UserID

		if err := database.DB.Save(&location).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error updating location",
				"error":   err.Error(),
			})
		}

		return c.JSON(toResponse(location))
	}
}

// DeleteLocationHandler desactiva la ubicación (baja lógica). Quitar la
// ubicación de la lista de un cliente no la borra: esta es la única vía
// de baja.
func DeleteLocationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var location models.Location
		if err := database.DB.First(&location, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Location not found")
		}

		var body struct {
			UserID string `json:"userId"`
		}
		_ = c.BodyParser(&body)

		location.Active = false
		if body.UserID != "" {
			location.UpdatedBy = body.UserID
		}

		if err := database.DB.Save(&location).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error deactivating location",
				"error":   err.Error(),
			})
		}

		return c.JSON(fiber.Map{"message": "Location deactivated successfully"})
	}
}
