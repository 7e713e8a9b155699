package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/repositories/memory"
	"github.com/controlescolar/escolar/internal/bootstrap"
	"github.com/controlescolar/escolar/internal/config"
	"github.com/controlescolar/escolar/internal/events"
	"github.com/controlescolar/escolar/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func ptr[T any](v T) *T { return &v }

// newAPI starts the REST API on an in-memory store
func newAPI(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.BcryptCost = bcrypt.MinCost

	cfg := &config.Config{}
	cfg.Server.APIPrefix = "/api"
	deps := bootstrap.BuildDependencies(memory.NewRepositories(), events.Nop{}, zerolog.Nop())
	srv := httptest.NewServer(bootstrap.SetupRouter(cfg, deps))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/api")
	require.NoError(t, err)
	return c
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, u := range []string{"", "localhost:8080/api", "ftp://host/api", "http://"} {
		_, err := New(u)
		assert.Error(t, err, u)
	}
}

func TestEscapeID(t *testing.T) {
	assert.Equal(t, "42", EscapeID(int64(42)))
	assert.Equal(t, "INS%2F2024", EscapeID("INS/2024"))
	assert.Equal(t, "A%20001", EscapeID("A 001"))
	assert.Equal(t, "50%25", EscapeID("50%"))
}

func TestCarreras_Scenario(t *testing.T) {
	ctx := context.Background()
	c := newAPI(t)

	created, err := c.Carreras.Create(ctx, models.CarreraCreate{Nombre: "Ingeniería", DuracionSemestres: 8})
	require.NoError(t, err)
	require.Positive(t, created.IDCarrera)

	updated, err := c.Carreras.Update(ctx, created.IDCarrera, models.CarreraUpdate{Nombre: ptr("Ing. Civil")})
	require.NoError(t, err)
	assert.Equal(t, created.IDCarrera, updated.IDCarrera)
	assert.Equal(t, "Ing. Civil", updated.Nombre)
	assert.Equal(t, 8, updated.DuracionSemestres)

	require.NoError(t, c.Carreras.Delete(ctx, created.IDCarrera))

	list, err := c.Carreras.List(ctx)
	require.NoError(t, err)
	for _, carrera := range list {
		assert.NotEqual(t, created.IDCarrera, carrera.IDCarrera)
	}
}

func TestAllServices_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	c := newAPI(t)

	carrera, err := c.Carreras.Create(ctx, models.CarreraCreate{Nombre: "Derecho", DuracionSemestres: 10})
	require.NoError(t, err)
	otra, err := c.Carreras.Create(ctx, models.CarreraCreate{Nombre: "Medicina", DuracionSemestres: 12})
	require.NoError(t, err)

	// alumnos, keyed by a matricula with a reserved character
	alumno, err := c.Alumnos.Create(ctx, models.AlumnoCreate{Matricula: "2024/001", NombreCompleto: "Ana", IDCarrera: carrera.IDCarrera})
	require.NoError(t, err)
	assert.False(t, alumno.FechaRegistro.IsZero())
	assert.Equal(t, 1, alumno.SemestreActual)
	assert.True(t, alumno.Activo)
	_, err = c.Alumnos.Update(ctx, alumno.Matricula, models.AlumnoUpdate{IDCarrera: &otra.IDCarrera})
	require.NoError(t, err)
	alumnos, err := c.Alumnos.List(ctx)
	require.NoError(t, err)
	require.Len(t, alumnos, 1)
	assert.Equal(t, "2024/001", alumnos[0].Matricula)
	assert.Equal(t, otra.IDCarrera, alumnos[0].IDCarrera)

	// ciclos
	ciclo, err := c.CiclosEscolares.Create(ctx, models.CicloEscolarPayload{
		Nombre:      "2024-2025",
		FechaInicio: models.NewDate(2024, time.August, 12),
		FechaFin:    models.NewDate(2025, time.June, 30),
		EsActual:    true,
	})
	require.NoError(t, err)
	ciclos, err := c.Ciclos.List(ctx)
	require.NoError(t, err)
	require.Len(t, ciclos, 1)
	assert.Equal(t, models.NewDate(2024, time.August, 12), ciclos[0].FechaInicio)
	assert.True(t, ciclos[0].EsActual)

	// metodos de pago
	metodo, err := c.MetodosPago.Create(ctx, models.MetodoPagoPayload{Nombre: "Tarjeta"})
	require.NoError(t, err)
	metodo, err = c.MetodosPago.Update(ctx, metodo.IDMetodo, models.MetodoPagoPayload{Nombre: "Tarjeta de crédito"})
	require.NoError(t, err)
	assert.Equal(t, "Tarjeta de crédito", metodo.Nombre)

	// cuentas
	cuenta, err := c.Cuentas.Create(ctx, models.CuentaPayload{
		Matricula: alumno.Matricula, Concepto: models.ConceptoUADEC, IDCiclo: ciclo.IDCiclo, Monto: 1200,
	})
	require.NoError(t, err)
	assert.False(t, cuenta.FechaCreacion.IsZero())
	assert.Nil(t, cuenta.FechaPago)
	pagada, err := c.Cuentas.Update(ctx, cuenta.IDCuenta, models.CuentaPayload{
		Matricula: alumno.Matricula, Concepto: models.ConceptoUADEC, IDCiclo: ciclo.IDCiclo, Monto: 1200,
		Pagado: true, FechaPago: ptr(models.NewDate(2024, time.September, 1)), IDMetodo: &metodo.IDMetodo,
	})
	require.NoError(t, err)
	assert.Equal(t, cuenta.IDCuenta, pagada.IDCuenta)
	require.NotNil(t, pagada.FechaPago)
	assert.Equal(t, "2024-09-01", pagada.FechaPago.String())

	// conceptos, keyed by a clave with a slash
	_, err = c.Conceptos.Create(ctx, models.ConceptoPayload{Clave: "INS/2024", Descripcion: "Inscripción", MontoDefault: 500})
	require.NoError(t, err)
	concepto, err := c.Conceptos.Update(ctx, "INS/2024", models.ConceptoPayload{Clave: "INS/2024", Descripcion: "Inscripción", MontoDefault: 650})
	require.NoError(t, err)
	assert.Equal(t, 650.0, concepto.MontoDefault)

	// roles y usuarios
	rol, err := c.Roles.Create(ctx, models.RolPayload{NombreRol: "coordinador"})
	require.NoError(t, err)
	usuario, err := c.Usuarios.Create(ctx, models.UsuarioPayload{Username: "ana", Password: "secreto1", IDRol: rol.IDRol, MatriculaAlumno: &alumno.Matricula})
	require.NoError(t, err)
	assert.True(t, usuario.Activo)
	usuario, err = c.Usuarios.Update(ctx, usuario.IDUsuario, models.UsuarioPayload{Username: "ana.lopez", IDRol: rol.IDRol, Activo: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "ana.lopez", usuario.Username)
	assert.False(t, usuario.Activo)
	assert.Nil(t, usuario.MatriculaAlumno)

	// observaciones
	obs, err := c.Observaciones.Create(ctx, models.ObservacionPayload{Matricula: alumno.Matricula, Detalle: "Beca", IDAutor: &usuario.IDUsuario})
	require.NoError(t, err)
	assert.False(t, obs.Fecha.IsZero())
	obs, err = c.Observaciones.Update(ctx, obs.IDObservacion, models.ObservacionPayload{Matricula: alumno.Matricula, Detalle: "Beca 50%"})
	require.NoError(t, err)
	assert.Equal(t, "Beca 50%", obs.Detalle)

	// deletes, children first
	require.NoError(t, c.Observaciones.Delete(ctx, obs.IDObservacion))
	require.NoError(t, c.Usuarios.Delete(ctx, usuario.IDUsuario))
	require.NoError(t, c.Roles.Delete(ctx, rol.IDRol))
	require.NoError(t, c.Cuentas.Delete(ctx, cuenta.IDCuenta))
	require.NoError(t, c.MetodosPago.Delete(ctx, metodo.IDMetodo))
	require.NoError(t, c.CiclosEscolares.Delete(ctx, ciclo.IDCiclo))
	require.NoError(t, c.Conceptos.Delete(ctx, "INS/2024"))
	require.NoError(t, c.Alumnos.Delete(ctx, alumno.Matricula))

	for name, list := range map[string]func() (int, error){
		"observaciones": func() (int, error) { l, err := c.Observaciones.List(ctx); return len(l), err },
		"usuarios":      func() (int, error) { l, err := c.Usuarios.List(ctx); return len(l), err },
		"roles":         func() (int, error) { l, err := c.Roles.List(ctx); return len(l), err },
		"cuentas":       func() (int, error) { l, err := c.Cuentas.List(ctx); return len(l), err },
		"metodos":       func() (int, error) { l, err := c.MetodosPago.List(ctx); return len(l), err },
		"ciclos":        func() (int, error) { l, err := c.CiclosEscolares.List(ctx); return len(l), err },
		"conceptos":     func() (int, error) { l, err := c.Conceptos.List(ctx); return len(l), err },
		"alumnos":       func() (int, error) { l, err := c.Alumnos.List(ctx); return len(l), err },
	} {
		n, err := list()
		require.NoError(t, err, name)
		assert.Zero(t, n, name)
	}
}

func TestUpdate_LeavesOthersUnchanged(t *testing.T) {
	ctx := context.Background()
	c := newAPI(t)

	a, err := c.Roles.Create(ctx, models.RolPayload{NombreRol: "admin"})
	require.NoError(t, err)
	b, err := c.Roles.Create(ctx, models.RolPayload{NombreRol: "alumno"})
	require.NoError(t, err)

	_, err = c.Roles.Update(ctx, a.IDRol, models.RolPayload{NombreRol: "administrador"})
	require.NoError(t, err)

	roles, err := c.Roles.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Rol{
		{IDRol: a.IDRol, NombreRol: "administrador"},
		{IDRol: b.IDRol, NombreRol: "alumno"},
	}, roles)
}

func TestEscapedIdentifierReachesServerDecoded(t *testing.T) {
	var rawPath, path atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawPath.Store(r.URL.EscapedPath())
		path.Store(r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := New(srv.URL + "/api")
	require.NoError(t, err)
	require.NoError(t, c.Conceptos.Delete(context.Background(), "INS/2024 a%"))

	assert.Equal(t, "/api/conceptos/INS%2F2024%20a%25", rawPath.Load())
	assert.Equal(t, "/api/conceptos/INS/2024 a%", path.Load())
}

func TestOneRoundTripPerCall(t *testing.T) {
	var calls, withHeader atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("X-Client") == "escolar-web" {
			withHeader.Add(1)
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithHeader("X-Client", "escolar-web"))
	require.NoError(t, err)

	_, err = c.Roles.List(context.Background())
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, int32(1), calls.Load(), "no retry")
	assert.Equal(t, int32(1), withHeader.Load())
}

func TestRejected_CarriesServerError(t *testing.T) {
	ctx := context.Background()
	c := newAPI(t)

	_, err := c.Carreras.Update(ctx, 999, models.CarreraUpdate{Nombre: ptr("x")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
	assert.False(t, errors.Is(err, ErrTransport))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "RES_001", apiErr.Code)
	assert.Equal(t, "career not found", apiErr.Message)
	assert.Equal(t, "/carreras/999", apiErr.Path)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	_, err = c.Alumnos.Create(ctx, models.AlumnoCreate{Matricula: "A001", NombreCompleto: "Ana", IDCarrera: 5})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "id_carrera", apiErr.Field)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL + "/api"
	srv.Close()

	c, err := New(base, WithTimeout(2*time.Second))
	require.NoError(t, err)

	_, err = c.Carreras.Create(context.Background(), models.CarreraCreate{Nombre: "Ingeniería", DuracionSemestres: 8})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Zero(t, StatusOf(err))

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.MethodPost, te.Method)
	assert.Equal(t, "/carreras", te.Path)

	// the client is still usable and unchanged
	assert.Equal(t, base, c.BaseURL())
	_, err = c.Carreras.List(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
}

func TestContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c, err := New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.MetodosPago.List(ctx)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
