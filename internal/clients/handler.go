package clients

import (
	"strings"

	"seguimiento-backend/internal/database"
	"seguimiento-backend/internal/models"
	"seguimiento-backend/internal/slug"

	"github.com/gofiber/fiber/v2"
)

type CreateClientRequest struct {
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	ContactPerson string `json:"contactPerson"`
	Description   string `json:"description"`
	Notes         string `json:"notes"`
	Locations     []uint `json:"locations"`
	Address       string `json:"address"`
	UserID        string `json:"userId"`
}

type UpdateClientRequest struct {
	Name          *string `json:"name"`
	Slug          *string `json:"slug"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	ContactPerson *string `json:"contactPerson"`
	Description   *string `json:"description"`
	Notes         *string `json:"notes"`
	Locations     *[]uint `json:"locations"`
	Address       *string `json:"address"`
	Active        *bool   `json:"active"`
	UserID        string  `json:"userId"`
}

// ClientResponse expande la lista de ubicaciones referenciadas a
// documentos completos. Los IDs colgantes simplemente se omiten.
type ClientResponse struct {
	models.Client
	Locations []models.Location `json:"locations"`
}

func expandLocations(ids models.IDList) []models.Location {
	locations := make([]models.Location, 0, len(ids))
	if len(ids) == 0 {
		return locations
	}
	var found []models.Location
	if err := database.DB.Where("id IN ?", []uint(ids)).Find(&found).Error; err != nil {
		return locations
	}
	byID := make(map[uint]models.Location, len(found))
	for _, l := range found {
		byID[l.ID] = l
	}
	// se preserva el orden de la lista de referencias
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			locations = append(locations, l)
		}
	}
	return locations
}

func toResponse(client models.Client) ClientResponse {
	return ClientResponse{Client: client, Locations: expandLocations(client.Locations)}
}

func CreateClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Client name is required")
		}
		if body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "userId is required")
		}

		if body.Slug == "" {
			body.Slug = slug.Make(body.Name)
		}

		client := models.Client{
			Name:          body.Name,
			Slug:          body.Slug,
			Email:         body.Email,
			Phone:         body.Phone,
			ContactPerson: body.ContactPerson,
			Description:   body.Description,
			Notes:         body.Notes,
			Locations:     models.IDList(body.Locations),
			Address:       body.Address,
			Active:        true,
			CreatedBy:     body.UserID,
			UpdatedBy:     body.UserID,
		}

		if err := database.DB.Create(&client).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error creating client",
				"error":   err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(client))
	}
}

func ListClientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Model(&models.Client{})

		if active := c.Query("active"); active != "" {
			query = query.Where("active = ?", active == "true")
		}

		var clients []models.Client
		if err := query.Order("name ASC").Find(&clients).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error fetching clients",
				"error":   err.Error(),
			})
		}

		res := make([]ClientResponse, 0, len(clients))
		for _, client := range clients {
			res = append(res, toResponse(client))
		}

		return c.JSON(res)
	}
}

func GetClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var client models.Client
		if err := database.DB.First(&client, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Client not found")
		}

		return c.JSON(toResponse(client))
	}
}

func UpdateClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var client models.Client
		if err := database.DB.First(&client, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Client not found")
		}

		var body UpdateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Client name is required")
			}
			client.Name = name
		}
		if body.Slug != nil {
			client.Slug = *body.Slug
		}
		if body.Email != nil {
			client.Email = *body.Email
		}
		if body.Phone != nil {
			client.Phone = *body.Phone
		}
		if body.ContactPerson != nil {
			client.ContactPerson = *body.ContactPerson
		}
		if body.Description != nil {
			client.Description = *body.Description
		}
		if body.Notes != nil {
			client.Notes = *body.Notes
		}
		if body.Locations != nil {
			client.Locations = models.IDList(*body.Locations)
		}
		if body.Address != nil {
			client.Address = *body.Address
		}
		if body.Active != nil {
			client.Active = *body.Active
		}
		client.UpdatedBy = body.UserID

		if err := database.DB.Save(&client).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error updating client",
				"error":   err.Error(),
			})
		}

		return c.JSON(toResponse(client))
	}
}

// DeleteClientHandler desactiva el cliente (baja lógica); el registro
// sigue existiendo y se puede seguir consultando por ID.
func DeleteClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var client models.Client
		if err := database.DB.First(&client, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Client not found")
		}

		var body struct {
			UserID string `json:"userId"`
		}
		_ = c.BodyParser(&body)

		client.Active = false
		if body.UserID != "" {
			client.UpdatedBy = body.UserID
		}

		if err := database.DB.Save(&client).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error deactivating client",
				"error":   err.Error(),
			})
		}

		return c.JSON(fiber.Map{"message": "Client deactivated successfully"})
	}
}
