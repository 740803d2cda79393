package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Sucursal Centro":    "sucursal-centro",
		"Café Río":           "cafe-rio",
		"  Semana   10  ":    "semana-10",
		"Año Nuevo / Peñón":  "ano-nuevo-penon",
		"UPPER_case.mixed":   "upper-case-mixed",
		"--ya-con-guiones--": "ya-con-guiones",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), "input %q", in)
	}
}

func TestMakeEmptyFallsBackToRandom(t *testing.T) {
	got := Make("!!!")
	assert.Len(t, got, 8)
	assert.NotEqual(t, Make("!!!"), got)
}
