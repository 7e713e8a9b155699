// Package client calls the escolar REST API. Every service call is exactly
// one HTTP round trip; nothing is cached or retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/models/dto"
)

// maxErrorBody bounds how much of a rejected response is kept
const maxErrorBody = 64 << 10

// Client holds the API configuration shared by every resource service. It is
// immutable after New and safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	headers http.Header
	logger  zerolog.Logger

	Alumnos         *AlumnoService
	Carreras        *CarreraService
	CiclosEscolares *CicloEscolarService
	Cuentas         *CuentaService
	MetodosPago     *MetodoPagoService
	Conceptos       *ConceptoService
	Observaciones   *ObservacionService
	Roles           *RolService
	Usuarios        *UsuarioService

	// Ciclos is the read-only cycle lookup used by selectors
	Ciclos *CiclosLookup
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the timeout of the underlying *http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithHeader adds a header sent with every request
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Add(key, value) }
}

// WithLogger sets the logger receiving one debug line per request
func WithLogger(lgr zerolog.Logger) Option {
	return func(c *Client) { c.logger = lgr }
}

// New creates a client for the API rooted at baseURL ("http://host:8080/api")
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api base url must be an absolute http(s) url, got %q", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		headers: http.Header{"Accept": []string{"application/json"}},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Alumnos = newResource[models.Alumno, models.AlumnoCreate, models.AlumnoUpdate, string](c, "/alumnos")
	c.Carreras = newResource[models.Carrera, models.CarreraCreate, models.CarreraUpdate, int64](c, "/carreras")
	c.CiclosEscolares = newResource[models.CicloEscolar, models.CicloEscolarPayload, models.CicloEscolarPayload, int64](c, "/ciclos-escolares")
	c.Cuentas = newResource[models.Cuenta, models.CuentaPayload, models.CuentaPayload, int64](c, "/cuentas")
	c.MetodosPago = newResource[models.MetodoPago, models.MetodoPagoPayload, models.MetodoPagoPayload, int64](c, "/metodos-pago")
	c.Conceptos = newResource[models.Concepto, models.ConceptoPayload, models.ConceptoPayload, string](c, "/conceptos")
	c.Observaciones = newResource[models.Observacion, models.ObservacionPayload, models.ObservacionPayload, int64](c, "/observaciones")
	c.Roles = newResource[models.Rol, models.RolPayload, models.RolPayload, int64](c, "/roles")
	c.Usuarios = newResource[models.Usuario, models.UsuarioPayload, models.UsuarioPayload, int64](c, "/usuarios")
	c.Ciclos = &CiclosLookup{c: c, path: "/ciclos-escolares"}

	return c, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one request. in, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Dur("latency", time.Since(start)).Msg("API request failed")
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejected(method, path, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return &TransportError{Method: method, Path: path, Err: io.ErrUnexpectedEOF}
		}
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// rejected builds an APIError from a non-2xx response, keeping the server's
// error code and message when the body is the standard error envelope
func rejected(method, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Body:       raw,
	}

	var envelope dto.ErrorResponse
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error != nil {
		apiErr.Code = string(envelope.Error.Code)
		apiErr.Message = envelope.Error.Message
		apiErr.Field = envelope.Error.Field
	}
	return apiErr
}
