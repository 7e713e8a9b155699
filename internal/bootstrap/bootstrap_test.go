package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/models/dto"
	"github.com/controlescolar/escolar/internal/app/repositories/memory"
	"github.com/controlescolar/escolar/internal/config"
	"github.com/controlescolar/escolar/internal/events"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Server.APIPrefix = "/api"
	deps := BuildDependencies(memory.NewRepositories(), events.Nop{}, zerolog.Nop())
	return SetupRouter(cfg, deps)
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPI_Health(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAPI_CarreraLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/carreras", `{"nombre":"Ingeniería","duracion_semestres":8}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Carrera
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.IDCarrera)

	w = do(r, http.MethodPut, "/api/carreras/1", `{"nombre":"Ing. Civil"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id_carrera":1,"nombre":"Ing. Civil","duracion_semestres":8}`, w.Body.String())

	w = do(r, http.MethodDelete, "/api/carreras/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(r, http.MethodGet, "/api/carreras", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAPI_ErrorStatuses(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/carreras", `{"nombre":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/api/carreras/abc", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/api/carreras/7", `{"nombre":"x"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/roles/7", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/desconocido", "").Code)

	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/roles", `{"nombre_rol":"admin"}`).Code)
	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/api/roles", `{"nombre_rol":"admin"}`).Code)
}

func TestAPI_EscapedConceptoClave(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/conceptos", `{"clave":"INS/2024","descripcion":"Inscripción","monto_default":500,"genera_cuenta_default":true}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodPut, "/api/conceptos/INS%2F2024", `{"clave":"INS/2024","descripcion":"Inscripción 2024","monto_default":650,"genera_cuenta_default":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Concepto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "INS/2024", updated.Clave)
	assert.Equal(t, 650.0, updated.MontoDefault)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/conceptos/INS%2F2024", "").Code)
	assert.JSONEq(t, `[]`, do(r, http.MethodGet, "/api/conceptos", "").Body.String())
}

func TestAPI_ReferencedDeleteConflicts(t *testing.T) {
	r := newTestRouter(t)

	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/carreras", `{"nombre":"Derecho","duracion_semestres":10}`).Code)
	w := do(r, http.MethodPost, "/api/alumnos", `{"matricula":"A 001","nombre_completo":"Ana","id_carrera":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"semestre_actual":1`)

	assert.Equal(t, http.StatusConflict, do(r, http.MethodDelete, "/api/carreras/1", "").Code)

	w = do(r, http.MethodPut, "/api/alumnos/A%20001", `{"semestre_actual":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"semestre_actual":2`)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/alumnos/A%20001", "").Code)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/carreras/1", "").Code)
}

func TestAPI_ValidationReportsJSONField(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/cuentas", `{"matricula":"A001","concepto":"OTRO","id_ciclo":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "concepto", resp.Error.Field)
}
