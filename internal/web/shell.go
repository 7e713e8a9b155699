// Package web is the front-end shell: it mounts the view resolved by the
// router and relays screen actions to the API client.
package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/controlescolar/escolar/internal/app/models/dto"
	"github.com/controlescolar/escolar/internal/client"
	"github.com/controlescolar/escolar/internal/middleware"
	"github.com/controlescolar/escolar/internal/web/router"
)

// maxBody bounds screen action payloads
const maxBody = 1 << 20

// Shell serves the views of a route table
type Shell struct {
	router *router.Router
	views  map[string]view
	logger zerolog.Logger
}

// New builds a shell for rt backed by api. Every route must name a known view.
func New(api *client.Client, rt *router.Router, lgr zerolog.Logger) (*Shell, error) {
	views := buildViews(api, rt)
	for _, route := range rt.Routes() {
		if _, ok := views[route.View]; !ok {
			return nil, fmt.Errorf("route %s: unknown view %q", route.Pattern, route.View)
		}
	}
	return &Shell{router: rt, views: views, logger: lgr}, nil
}

// Engine returns the gin engine serving the shell
func (s *Shell) Engine() *gin.Engine {
	engine := gin.New()
	engine.UseRawPath = true
	engine.UnescapePathValues = true
	// trailing slashes are resolved by the route table, not redirected
	engine.RedirectTrailingSlash = false

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(s.logger))

	for _, route := range s.router.Routes() {
		v := s.views[route.View]
		engine.GET(route.Pattern, s.render(route.View, v))

		if v.actions == nil {
			continue
		}
		item := strings.TrimSuffix(route.Pattern, "/") + "/:id"
		engine.POST(route.Pattern, s.create(v.actions))
		engine.PUT(item, s.update(v.actions))
		engine.DELETE(item, s.remove(v.actions))
	}

	engine.NoRoute(s.notFound)
	return engine
}

// NewEngine is a shorthand for New followed by Engine
func NewEngine(api *client.Client, rt *router.Router, lgr zerolog.Logger) (*gin.Engine, error) {
	s, err := New(api, rt, lgr)
	if err != nil {
		return nil, err
	}
	return s.Engine(), nil
}

func (s *Shell) render(name string, v view) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := load(c.Request.Context(), v.sources)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"view": name, "data": data})
	}
}

func (s *Shell) create(a *actions) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := readBody(c)
		if err != nil {
			s.fail(c, err)
			return
		}
		created, err := a.create(c.Request.Context(), body)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func (s *Shell) update(a *actions) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := readBody(c)
		if err != nil {
			s.fail(c, err)
			return
		}
		updated, err := a.update(c.Request.Context(), c.Param("id"), body)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func (s *Shell) remove(a *actions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.remove(c.Request.Context(), c.Param("id")); err != nil {
			s.fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// notFound mounts views reached with a trailing slash and answers 404 for
// everything else
func (s *Shell) notFound(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		if route, ok := s.router.Resolve(c.Request.URL.Path); ok {
			s.render(route.View, s.views[route.View])(c)
			return
		}
	}
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeViewNotFound, "no view mounted at "+c.Request.URL.Path),
	))
}

func readBody(c *gin.Context) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", errInvalidInput, err)
	}
	return body, nil
}

// fail renders err. API rejections keep the upstream status and error code;
// transport failures become 502.
func (s *Shell) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	var status int
	var detail *dto.ErrorDetail
	var apiErr *client.APIError

	switch {
	case errors.Is(err, errInvalidInput):
		status = http.StatusBadRequest
		detail = dto.NewErrorDetail(dto.ErrorCodeBadRequest, err.Error())
	case errors.As(err, &apiErr):
		status = apiErr.StatusCode
		code := dto.ErrorCode(apiErr.Code)
		if code == "" {
			code = dto.ErrorCodeExternalServiceError
		}
		message := apiErr.Message
		if message == "" {
			message = http.StatusText(apiErr.StatusCode)
		}
		detail = dto.NewErrorDetail(code, message).WithField(apiErr.Field)
	case errors.Is(err, client.ErrTransport):
		status = http.StatusBadGateway
		detail = dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "API unavailable").
			WithSeverity(dto.ErrorSeverityCritical)
		s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("API request failed")
	default:
		status = http.StatusInternalServerError
		detail = dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled shell error")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}
