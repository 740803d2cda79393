package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendAddsEntry(t *testing.T) {
	log := Log{}

	log = Append(log, "Tarea creada", "user-1")

	assert.Len(t, log, 1)
	assert.Equal(t, "Tarea creada", log[0].Accion)
	assert.Equal(t, "user-1", log[0].Usuario)
	assert.False(t, log[0].Fecha.IsZero())
}

func TestAppendEmptyTextIsNoOp(t *testing.T) {
	log := Log{{Accion: "existente", Usuario: "user-1"}}

	assert.Len(t, Append(log, "", "user-1"), 1)
	assert.Len(t, Append(log, "   ", "user-1"), 1)
}

func TestAppendPreservesOrder(t *testing.T) {
	var log Log
	log = Append(log, "primera", "a")
	log = Append(log, "segunda", "b")
	log = Append(log, "tercera", "c")

	assert.Len(t, log, 3)
	assert.Equal(t, "primera", log[0].Accion)
	assert.Equal(t, "segunda", log[1].Accion)
	assert.Equal(t, "tercera", log[2].Accion)
}

func TestAppendDoesNotMutateInput(t *testing.T) {
	original := Log{{Accion: "primera", Usuario: "a"}}

	grown := Append(original, "segunda", "b")

	assert.Len(t, original, 1)
	assert.Len(t, grown, 2)
}

func TestAppendObservation(t *testing.T) {
	var obs Observations
	obs = AppendObservation(obs, "sin novedades", "user-1")
	obs = AppendObservation(obs, "", "user-1")

	assert.Len(t, obs, 1)
	assert.Equal(t, "sin novedades", obs[0].Descripcion)
	assert.Equal(t, "user-1", obs[0].Usuario)
}
