package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/controlescolar/escolar/internal/app/repositories"
	"github.com/controlescolar/escolar/internal/events"
	"github.com/controlescolar/escolar/internal/pkg/apperrors"
)

// Services defined in this package, one per resource:
// - AlumnoService, CarreraService, CicloEscolarService, CuentaService,
//   MetodoPagoService, ConceptoService, ObservacionService, RolService,
//   UsuarioService
type Services struct {
	Alumnos         AlumnoService
	Carreras        CarreraService
	CiclosEscolares CicloEscolarService
	Cuentas         CuentaService
	MetodosPago     MetodoPagoService
	Conceptos       ConceptoService
	Observaciones   ObservacionService
	Roles           RolService
	Usuarios        UsuarioService
}

// Options carries the collaborators shared by every service
type Options struct {
	Events events.Publisher
	Logger zerolog.Logger
	// Now returns the clock used for server timestamps; defaults to time.Now
	Now func() time.Time
}

// NewServices builds every service on top of repos
func NewServices(repos *repositories.Repositories, opts Options) *Services {
	b := newBase(opts)
	return &Services{
		Alumnos:         NewAlumnoService(repos.Alumnos, repos.Carreras, b),
		Carreras:        NewCarreraService(repos.Carreras, b),
		CiclosEscolares: NewCicloEscolarService(repos.CiclosEscolares, b),
		Cuentas:         NewCuentaService(repos.Cuentas, repos.Alumnos, repos.CiclosEscolares, repos.MetodosPago, b),
		MetodosPago:     NewMetodoPagoService(repos.MetodosPago, b),
		Conceptos:       NewConceptoService(repos.Conceptos, b),
		Observaciones:   NewObservacionService(repos.Observaciones, repos.Alumnos, repos.Usuarios, b),
		Roles:           NewRolService(repos.Roles, b),
		Usuarios:        NewUsuarioService(repos.Usuarios, repos.Roles, repos.Alumnos, b),
	}
}

// base holds what every service needs besides its repositories
type base struct {
	events events.Publisher
	logger zerolog.Logger
	now    func() time.Time
}

func newBase(opts Options) base {
	b := base{events: opts.Events, logger: opts.Logger, now: opts.Now}
	if b.events == nil {
		b.events = events.Nop{}
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

// timestamp returns the current time truncated to microseconds, the
// resolution PostgreSQL stores
func (b base) timestamp() time.Time {
	return b.now().UTC().Truncate(time.Microsecond)
}

// publish emits a change event for a successful write
func (b base) publish(ctx context.Context, entity string, action events.Action, id any) {
	var key string
	switch v := id.(type) {
	case int64:
		key = strconv.FormatInt(v, 10)
	default:
		key = fmt.Sprint(v)
	}
	b.events.Publish(ctx, events.Event{Entity: entity, Action: action, ID: key, At: b.timestamp()})
}

// translate maps repository sentinels to the application error taxonomy.
// label is the human name of the entity ("career", "student", ...).
func translate(err error, op, label string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return apperrors.NewResourceNotFoundError(label + " not found")
	case errors.Is(err, repositories.ErrAlreadyExists):
		return apperrors.NewAlreadyExistsError(label + " already exists")
	case errors.Is(err, repositories.ErrReferenced):
		return apperrors.NewConflictError(label + " is still referenced by other records")
	case errors.Is(err, repositories.ErrInvalidReference):
		return apperrors.NewValidationError(label + " references a record that does not exist")
	default:
		return fmt.Errorf("error %s %s: %w", op, label, err)
	}
}

// requireRef checks that a referenced record exists. A missing record is a
// validation failure on field, not a 404 of the request itself.
func requireRef[K comparable, E any](ctx context.Context, repo repositories.Store[K, E], id K, field, label string) error {
	_, err := repo.Get(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return validationError(field, fmt.Sprintf("%s %v does not exist", label, id))
	default:
		return fmt.Errorf("error checking %s: %w", label, err)
	}
}

func validationError(field, message string) error {
	return &apperrors.CustomError{Err: apperrors.ErrValidationFailed, Message: message, Field: field}
}
