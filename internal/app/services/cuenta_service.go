package services

import (
	"context"
	"strings"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/repositories"
	"github.com/controlescolar/escolar/internal/events"
)

// CuentaService defines the operations on student accounts
type CuentaService interface {
	List(ctx context.Context) ([]models.Cuenta, error)
	Create(ctx context.Context, payload models.CuentaPayload) (*models.Cuenta, error)
	Update(ctx context.Context, id int64, payload models.CuentaPayload) (*models.Cuenta, error)
	Delete(ctx context.Context, id int64) error
}

type cuentaServiceImpl struct {
	base
	cuentaRepo repositories.CuentaRepository
	alumnoRepo repositories.AlumnoRepository
	cicloRepo  repositories.CicloEscolarRepository
	metodoRepo repositories.MetodoPagoRepository
}

// NewCuentaService creates a new account service instance
func NewCuentaService(
	cuentaRepo repositories.CuentaRepository,
	alumnoRepo repositories.AlumnoRepository,
	cicloRepo repositories.CicloEscolarRepository,
	metodoRepo repositories.MetodoPagoRepository,
	b base,
) CuentaService {
	return &cuentaServiceImpl{
		base:       b,
		cuentaRepo: cuentaRepo,
		alumnoRepo: alumnoRepo,
		cicloRepo:  cicloRepo,
		metodoRepo: metodoRepo,
	}
}

func (s *cuentaServiceImpl) List(ctx context.Context) ([]models.Cuenta, error) {
	cuentas, err := s.cuentaRepo.List(ctx)
	return cuentas, translate(err, "listing", "account")
}

// build validates the payload and its references. A paid account without a
// payment date is stamped with today's date.
func (s *cuentaServiceImpl) build(ctx context.Context, payload models.CuentaPayload) (*models.Cuenta, error) {
	matricula := strings.TrimSpace(payload.Matricula)
	if matricula == "" {
		return nil, validationError("matricula", "matricula cannot be empty")
	}
	switch payload.Concepto {
	case models.ConceptoUADEC, models.ConceptoEscuela:
	default:
		return nil, validationError("concepto", "concepto must be one of: UADEC ESCUELA")
	}
	if payload.Monto < 0 {
		return nil, validationError("monto", "monto cannot be negative")
	}

	if err := requireRef(ctx, s.alumnoRepo, matricula, "matricula", "student"); err != nil {
		return nil, err
	}
	if err := requireRef(ctx, s.cicloRepo, payload.IDCiclo, "id_ciclo", "school cycle"); err != nil {
		return nil, err
	}
	if payload.IDMetodo != nil {
		if err := requireRef(ctx, s.metodoRepo, *payload.IDMetodo, "id_metodo", "payment method"); err != nil {
			return nil, err
		}
	}

	cuenta := &models.Cuenta{
		Matricula: matricula,
		Concepto:  payload.Concepto,
		IDCiclo:   payload.IDCiclo,
		Monto:     payload.Monto,
		Pagado:    payload.Pagado,
		FechaPago: payload.FechaPago,
		IDMetodo:  payload.IDMetodo,
	}
	if cuenta.FechaPago != nil && cuenta.FechaPago.IsZero() {
		cuenta.FechaPago = nil
	}
	if cuenta.Pagado && cuenta.FechaPago == nil {
		today := models.DateOf(s.timestamp())
		cuenta.FechaPago = &today
	}
	return cuenta, nil
}

func (s *cuentaServiceImpl) Create(ctx context.Context, payload models.CuentaPayload) (*models.Cuenta, error) {
	cuenta, err := s.build(ctx, payload)
	if err != nil {
		return nil, err
	}
	cuenta.FechaCreacion = s.timestamp()

	if err := s.cuentaRepo.Create(ctx, cuenta); err != nil {
		return nil, translate(err, "creating", "account")
	}

	s.publish(ctx, "cuenta", events.ActionCreated, cuenta.IDCuenta)
	return cuenta, nil
}

func (s *cuentaServiceImpl) Update(ctx context.Context, id int64, payload models.CuentaPayload) (*models.Cuenta, error) {
	if _, err := s.cuentaRepo.Get(ctx, id); err != nil {
		return nil, translate(err, "retrieving", "account")
	}

	cuenta, err := s.build(ctx, payload)
	if err != nil {
		return nil, err
	}
	cuenta.IDCuenta = id

	if err := s.cuentaRepo.Update(ctx, cuenta); err != nil {
		return nil, translate(err, "updating", "account")
	}

	s.publish(ctx, "cuenta", events.ActionUpdated, id)
	return cuenta, nil
}

func (s *cuentaServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.cuentaRepo.Delete(ctx, id); err != nil {
		return translate(err, "deleting", "account")
	}
	s.publish(ctx, "cuenta", events.ActionDeleted, id)
	return nil
}
