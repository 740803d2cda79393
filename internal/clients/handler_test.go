package clients

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"seguimiento-backend/internal/database"
	"seguimiento-backend/internal/models"
	"seguimiento-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	database.DB = testutil.OpenTestDB(t)

	app := fiber.New()
	app.Post("/clients", CreateClientHandler())
	app.Get("/clients", ListClientsHandler())
	app.Get("/clients/:id", GetClientHandler())
	app.Put("/clients/:id", UpdateClientHandler())
	app.Delete("/clients/:id", DeleteClientHandler())
	return app
}

func TestCreateClientGeneratesSlug(t *testing.T) {
	app := newTestApp(t)

	payload, _ := json.Marshal(fiber.Map{
		"name":   "Café Río Grande",
		"userId": "user-1",
	})
	req := httptest.NewRequest("POST", "/clients", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created ClientResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "cafe-rio-grande", created.Slug)
	assert.True(t, created.Active)
}

func TestCreateClientRequiresName(t *testing.T) {
	app := newTestApp(t)

	payload, _ := json.Marshal(fiber.Map{"userId": "user-1"})
	req := httptest.NewRequest("POST", "/clients", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteClientIsSoftDelete(t *testing.T) {
	app := newTestApp(t)

	client := models.Client{Name: "Acme", Slug: "acme", Active: true, CreatedBy: "u", UpdatedBy: "u"}
	require.NoError(t, database.DB.Create(&client).Error)

	req := httptest.NewRequest("DELETE", "/clients/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// el registro sigue siendo consultable, solo queda inactivo
	req = httptest.NewRequest("GET", "/clients/1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var fetched ClientResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.False(t, fetched.Active)
}

func TestListClientsFilterByActive(t *testing.T) {
	app := newTestApp(t)

	require.NoError(t, database.DB.Create(&models.Client{Name: "Activo", Slug: "activo", Active: true, CreatedBy: "u", UpdatedBy: "u"}).Error)
	require.NoError(t, database.DB.Create(&models.Client{Name: "Inactivo", Slug: "inactivo", Active: false, CreatedBy: "u", UpdatedBy: "u"}).Error)

	req := httptest.NewRequest("GET", "/clients?active=false", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list []ClientResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "inactivo", list[0].Slug)
}

func TestClientLocationsExpansionSkipsDangling(t *testing.T) {
	app := newTestApp(t)

	loc := models.Location{Name: "Sucursal Centro", ClientID: 1, Active: true, CreatedBy: "u", UpdatedBy: "u"}
	require.NoError(t, database.DB.Create(&loc).Error)

	client := models.Client{
		Name: "Acme", Slug: "acme", Active: true,
		Locations: models.IDList{loc.ID, 999},
		CreatedBy: "u", UpdatedBy: "u",
	}
	require.NoError(t, database.DB.Create(&client).Error)

	req := httptest.NewRequest("GET", "/clients/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var fetched ClientResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	require.Len(t, fetched.Locations, 1)
	assert.Equal(t, "Sucursal Centro", fetched.Locations[0].Name)
}
