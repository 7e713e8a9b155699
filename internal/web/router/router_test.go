package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Resolve(t *testing.T) {
	r := Default()

	tests := []struct {
		path string
		view string
		ok   bool
	}{
		{path: "/", view: ViewInicio, ok: true},
		{path: "", view: ViewInicio, ok: true},
		{path: "/alumnos", view: ViewAlumnos, ok: true},
		{path: "/alumnos/", view: ViewAlumnos, ok: true},
		{path: "/ciclos-escolares", view: ViewCiclosEscolares, ok: true},
		{path: "/metodos-pago", view: ViewMetodosPago, ok: true},
		{path: "/usuarios", view: ViewUsuarios, ok: true},
		{path: "/inicio", ok: false},
		{path: "/alumnos/A001", ok: false},
		{path: "/Alumnos", ok: false},
		{path: "/desconocido", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			route, ok := r.Resolve(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.view, route.View)
		})
	}
}

func TestDefault_Table(t *testing.T) {
	routes := Default().Routes()
	require.Len(t, routes, 10)
	assert.Equal(t, Route{Pattern: "/", View: ViewInicio}, routes[0])

	// the copy does not alias the table
	routes[0].View = "otra"
	route, ok := Default().Resolve("/")
	require.True(t, ok)
	assert.Equal(t, ViewInicio, route.View)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		routes []Route
	}{
		{name: "no leading slash", routes: []Route{{Pattern: "alumnos", View: "alumnos"}}},
		{name: "empty view", routes: []Route{{Pattern: "/alumnos"}}},
		{name: "duplicate pattern", routes: []Route{
			{Pattern: "/alumnos", View: "alumnos"},
			{Pattern: "/alumnos/", View: "estudiantes"},
		}},
		{name: "duplicate view", routes: []Route{
			{Pattern: "/alumnos", View: "alumnos"},
			{Pattern: "/estudiantes", View: "alumnos"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.routes...)
			assert.Error(t, err)
		})
	}
}
