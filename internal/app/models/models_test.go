package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var c CicloEscolarPayload
	err := json.Unmarshal([]byte(`{"nombre":"2024-2025","fecha_inicio":"2024-08-12","fecha_fin":"2025-06-30T00:00:00Z","es_actual":true}`), &c)
	require.NoError(t, err)

	assert.Equal(t, NewDate(2024, time.August, 12), c.FechaInicio)
	assert.Equal(t, NewDate(2025, time.June, 30), c.FechaFin)
	assert.False(t, c.FechaFin.Before(c.FechaInicio))

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nombre":"2024-2025","fecha_inicio":"2024-08-12","fecha_fin":"2025-06-30","es_actual":true}`, string(out))
}

func TestDate_Invalid(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"12/08/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240812`), &d))

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

func TestCuenta_NullFechaPago(t *testing.T) {
	out, err := json.Marshal(Cuenta{IDCuenta: 1, Concepto: ConceptoUADEC})
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.Nil(t, raw["fecha_pago"])
	assert.Nil(t, raw["id_metodo"])
}

func TestAlumnoUpdate_Apply(t *testing.T) {
	email := "ana@uadec.edu.mx"
	a := Alumno{Matricula: "A001", NombreCompleto: "Ana", IDCarrera: 1, SemestreActual: 1, Activo: true}

	nombre := "Ana López"
	semestre := 3
	AlumnoUpdate{NombreCompleto: &nombre, SemestreActual: &semestre, EmailInstitucional: &email}.Apply(&a)

	assert.Equal(t, "A001", a.Matricula)
	assert.Equal(t, "Ana López", a.NombreCompleto)
	assert.Equal(t, 3, a.SemestreActual)
	assert.Equal(t, int64(1), a.IDCarrera)
	assert.True(t, a.Activo)
	require.NotNil(t, a.EmailInstitucional)
	assert.Equal(t, email, *a.EmailInstitucional)
}

func TestCarreraUpdate_Apply(t *testing.T) {
	c := Carrera{IDCarrera: 4, Nombre: "Ingeniería", DuracionSemestres: 8}
	nombre := "Ing. Civil"
	CarreraUpdate{Nombre: &nombre}.Apply(&c)

	assert.Equal(t, Carrera{IDCarrera: 4, Nombre: "Ing. Civil", DuracionSemestres: 8}, c)
}

func TestUsuario_HidesPasswordHash(t *testing.T) {
	out, err := json.Marshal(Usuario{IDUsuario: 1, Username: "ana", PasswordHash: "secret-hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret-hash")
}
