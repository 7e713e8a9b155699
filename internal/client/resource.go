package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/controlescolar/escolar/internal/app/models"
)

// Key is the identifier type of a resource: a surrogate number or a natural key
type Key interface {
	int64 | string
}

// Resource is the list/create/update/delete service of one collection. E is
// the entity, C the create payload, U the update payload and K the key.
type Resource[E, C, U any, K Key] struct {
	c    *Client
	path string
}

type (
	AlumnoService       = Resource[models.Alumno, models.AlumnoCreate, models.AlumnoUpdate, string]
	CarreraService      = Resource[models.Carrera, models.CarreraCreate, models.CarreraUpdate, int64]
	CicloEscolarService = Resource[models.CicloEscolar, models.CicloEscolarPayload, models.CicloEscolarPayload, int64]
	CuentaService       = Resource[models.Cuenta, models.CuentaPayload, models.CuentaPayload, int64]
	MetodoPagoService   = Resource[models.MetodoPago, models.MetodoPagoPayload, models.MetodoPagoPayload, int64]
	ConceptoService     = Resource[models.Concepto, models.ConceptoPayload, models.ConceptoPayload, string]
	ObservacionService  = Resource[models.Observacion, models.ObservacionPayload, models.ObservacionPayload, int64]
	RolService          = Resource[models.Rol, models.RolPayload, models.RolPayload, int64]
	UsuarioService      = Resource[models.Usuario, models.UsuarioPayload, models.UsuarioPayload, int64]
)

func newResource[E, C, U any, K Key](c *Client, path string) *Resource[E, C, U, K] {
	return &Resource[E, C, U, K]{c: c, path: path}
}

// Path returns the collection path relative to the API root
func (r *Resource[E, C, U, K]) Path() string {
	return r.path
}

// itemPath appends the escaped identifier to the collection path
func (r *Resource[E, C, U, K]) itemPath(id K) string {
	return r.path + "/" + EscapeID(id)
}

// EscapeID formats an identifier as one path segment. Numbers use base 10;
// natural keys are percent-encoded so "/", "%" and spaces survive.
func EscapeID[K Key](id K) string {
	if s, ok := any(id).(string); ok {
		return url.PathEscape(s)
	}
	return fmt.Sprint(id)
}

// List returns the whole collection as provided by the server
func (r *Resource[E, C, U, K]) List(ctx context.Context) ([]E, error) {
	var out []E
	if err := r.c.do(ctx, http.MethodGet, r.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts payload and returns the stored entity with its server fields
func (r *Resource[E, C, U, K]) Create(ctx context.Context, payload C) (*E, error) {
	var out E
	if err := r.c.do(ctx, http.MethodPost, r.path, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update puts payload to the entity addressed by id and returns it
func (r *Resource[E, C, U, K]) Update(ctx context.Context, id K, payload U) (*E, error) {
	var out E
	if err := r.c.do(ctx, http.MethodPut, r.itemPath(id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the entity addressed by id
func (r *Resource[E, C, U, K]) Delete(ctx context.Context, id K) error {
	return r.c.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

// CiclosLookup lists school cycles for selectors
type CiclosLookup struct {
	c    *Client
	path string
}

// List returns every school cycle
func (l *CiclosLookup) List(ctx context.Context) ([]models.CicloEscolar, error) {
	var out []models.CicloEscolar
	if err := l.c.do(ctx, http.MethodGet, l.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
