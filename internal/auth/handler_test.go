package auth

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"seguimiento-backend/internal/config"
	"seguimiento-backend/internal/database"
	"seguimiento-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()
	database.DB = testutil.OpenTestDB(t)
	cfg := &config.Config{JWTSecret: "clave-de-prueba-suficientemente-larga-123"}

	app := fiber.New()
	app.Post("/users/register", RegisterHandler())
	app.Post("/users/login", LoginHandler(cfg))

	protected := app.Group("")
	protected.Use(JWTMiddleware(cfg))
	protected.Get("/auth/me", MeHandler())
	return app, cfg
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, payload any) (int, []byte) {
	t.Helper()
	var reqBody []byte
	if payload != nil {
		reqBody, _ = json.Marshal(payload)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf.Bytes()
}

func TestRegisterLoginMeFlow(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, "POST", "/users/register", "", fiber.Map{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "secreto123",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))

	status, body = doJSON(t, app, "POST", "/users/login", "", fiber.Map{
		"email":    "ana@example.com",
		"password": "secreto123",
	})
	require.Equal(t, fiber.StatusOK, status, string(body))

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &login))
	require.NotEmpty(t, login.Token)

	status, body = doJSON(t, app, "GET", "/auth/me", login.Token, nil)
	require.Equal(t, fiber.StatusOK, status, string(body))

	var me struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, "ana@example.com", me.Email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/users/register", "", fiber.Map{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "secreto123",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, "POST", "/users/login", "", fiber.Map{
		"email":    "ana@example.com",
		"password": "otra-clave",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	payload := fiber.Map{"name": "Ana", "email": "ana@example.com", "password": "secreto123"}
	status, _ := doJSON(t, app, "POST", "/users/register", "", payload)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, "POST", "/users/register", "", payload)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, "GET", "/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, "GET", "/auth/me", "token-invalido", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestPasswordHashNeverSerialized(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, "POST", "/users/register", "", fiber.Map{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "secreto123",
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.NotContains(t, string(body), "secreto123")
	assert.NotContains(t, string(body), "password_hash")
}
