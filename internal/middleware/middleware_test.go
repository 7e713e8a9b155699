package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/controlescolar/escolar/internal/app/models/dto"
	"github.com/controlescolar/escolar/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"not found", apperrors.NewResourceNotFoundError("career not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"duplicate", apperrors.NewAlreadyExistsError("student already exists"), http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"referenced", apperrors.NewConflictError("career is still referenced"), http.StatusConflict, dto.ErrorCodeConflict},
		{"validation", apperrors.NewValidationError("nombre cannot be empty"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"bad request", apperrors.NewBadRequestError("bad"), http.StatusBadRequest, dto.ErrorCodeBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(c *gin.Context) { HandleAPIError(c, tt.err) })

			w := perform(r, http.MethodGet, "/x", "", nil)
			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestHandleAPIError_KeepsMessageAndField(t *testing.T) {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		HandleAPIError(c, (&apperrors.CustomError{Err: apperrors.ErrValidationFailed, Message: "career 9 does not exist"}).WithField("id_carrera"))
	})

	resp := decodeError(t, perform(r, http.MethodGet, "/x", "", nil))
	assert.Equal(t, "career 9 does not exist", resp.Error.Message)
	assert.Equal(t, "id_carrera", resp.Error.Field)
}

func TestBindJSON(t *testing.T) {
	UseJSONFieldNames()
	type payload struct {
		Nombre string `json:"nombre" binding:"required"`
	}
	r := gin.New()
	r.POST("/x", func(c *gin.Context) {
		var p payload
		if !BindJSON(c, &p) {
			return
		}
		c.JSON(http.StatusOK, p)
	})

	w := perform(r, http.MethodPost, "/x", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "nombre", resp.Error.Field)

	w = perform(r, http.MethodPost, "/x", `{"nombre":`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, "/x", `{"nombre":"Ingeniería"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParamID(t *testing.T) {
	r := gin.New()
	r.GET("/x/:id", func(c *gin.Context) {
		id, ok := ParamID(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/x/12", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/x/abc", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/x/0", "", nil).Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logger(zerolog.Nop()))
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := perform(r, http.MethodGet, "/x", "", map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())

	w = perform(r, http.MethodGet, "/x", "", nil)
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	w = perform(r, http.MethodGet, "/x", "", map[string]string{"X-Request-ID": strings.Repeat("a", 100)})
	assert.NotEqual(t, strings.Repeat("a", 100), w.Header().Get("X-Request-ID"))
}
