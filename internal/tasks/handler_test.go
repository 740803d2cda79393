package tasks

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
	app.Post("/tasks", CreateTaskHandler())
	app.Get("/tasks", ListTasksHandler())
	app.Get("/tasks/:id", GetTaskHandler())
	app.Put("/tasks/:id", UpdateTaskHandler())
	app.Delete("/tasks/:id", DeleteTaskHandler())
	return app
}

func postJSON(t *testing.T, app *fiber.App, method, target string, payload any) *TaskResponse {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Less(t, resp.StatusCode, 300, "unexpected status %d", resp.StatusCode)

	var out TaskResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return &out
}

func TestCreateTaskDefaultsToPlanned(t *testing.T) {
	app := newTestApp(t)

	task := postJSON(t, app, "POST", "/tasks", fiber.Map{
		"title":  "Revisar inventario",
		"userId": "user-1",
	})

	assert.Equal(t, models.TaskPlanned, task.Status)
	assert.Nil(t, task.CompletedDate)
}

func TestCreateTaskBornCompletedGetsDate(t *testing.T) {
	app := newTestApp(t)

	task := postJSON(t, app, "POST", "/tasks", fiber.Map{
		"title":  "Migrar datos",
		"status": "Completed",
		"userId": "user-1",
	})

	assert.Equal(t, models.TaskCompleted, task.Status)
	require.NotNil(t, task.CompletedDate)
}

func TestUpdateTaskSetsCompletedDateOnTransition(t *testing.T) {
	app := newTestApp(t)

	task := postJSON(t, app, "POST", "/tasks", fiber.Map{
		"title":  "Revisar inventario",
		"userId": "user-1",
	})
	require.Nil(t, task.CompletedDate)

	updated := postJSON(t, app, "PUT", "/tasks/1", fiber.Map{
		"status": "Completed",
		"userId": "user-2",
	})

	require.NotNil(t, updated.CompletedDate)
	firstDate := *updated.CompletedDate

	// una segunda actualización en Completed no pisa la fecha original
	updated = postJSON(t, app, "PUT", "/tasks/1", fiber.Map{
		"description": "con detalle",
		"status":      "Completed",
		"userId":      "user-2",
	})
	require.NotNil(t, updated.CompletedDate)
	assert.True(t, updated.CompletedDate.Equal(firstDate))
}

func TestUpdateTaskAppendsActivity(t *testing.T) {
	app := newTestApp(t)

	postJSON(t, app, "POST", "/tasks", fiber.Map{
		"title":  "Revisar inventario",
		"userId": "user-1",
	})

	updated := postJSON(t, app, "PUT", "/tasks/1", fiber.Map{
		"nuevaActividad": "Se revisó la bodega",
		"userId":         "user-2",
	})

	require.Len(t, updated.Actividad, 1)
	assert.Equal(t, "Se revisó la bodega", updated.Actividad[0].Accion)
	assert.Equal(t, "user-2", updated.Actividad[0].Usuario)

	// sin nuevaActividad la bitácora queda intacta
	updated = postJSON(t, app, "PUT", "/tasks/1", fiber.Map{
		"description": "otro cambio",
		"userId":      "user-2",
	})
	assert.Len(t, updated.Actividad, 1)
}

func TestDeleteTaskIsHardDelete(t *testing.T) {
	app := newTestApp(t)

	postJSON(t, app, "POST", "/tasks", fiber.Map{
		"title":  "Temporal",
		"userId": "user-1",
	})

	req := httptest.NewRequest("DELETE", "/tasks/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/tasks/1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListTasksFilterByStatus(t *testing.T) {
	app := newTestApp(t)

	postJSON(t, app, "POST", "/tasks", fiber.Map{"title": "a", "status": "Planned", "userId": "u"})
	postJSON(t, app, "POST", "/tasks", fiber.Map{"title": "b", "status": "Completed", "userId": "u"})
	postJSON(t, app, "POST", "/tasks", fiber.Map{"title": "c", "status": "Completed", "userId": "u"})

	req := httptest.NewRequest("GET", "/tasks?status=Completed", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list []TaskResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 2)
}
