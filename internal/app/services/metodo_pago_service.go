package services

import (
	"context"
	"strings"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/repositories"
	"github.com/controlescolar/escolar/internal/events"
)

// MetodoPagoService defines the operations on payment methods
type MetodoPagoService interface {
	List(ctx context.Context) ([]models.MetodoPago, error)
	Create(ctx context.Context, payload models.MetodoPagoPayload) (*models.MetodoPago, error)
	Update(ctx context.Context, id int64, payload models.MetodoPagoPayload) (*models.MetodoPago, error)
	Delete(ctx context.Context, id int64) error
}

type metodoPagoServiceImpl struct {
	base
	metodoRepo repositories.MetodoPagoRepository
}

// NewMetodoPagoService creates a new payment method service instance
func NewMetodoPagoService(metodoRepo repositories.MetodoPagoRepository, b base) MetodoPagoService {
	return &metodoPagoServiceImpl{base: b, metodoRepo: metodoRepo}
}

func (s *metodoPagoServiceImpl) List(ctx context.Context) ([]models.MetodoPago, error) {
	metodos, err := s.metodoRepo.List(ctx)
	return metodos, translate(err, "listing", "payment method")
}

func (s *metodoPagoServiceImpl) Create(ctx context.Context, payload models.MetodoPagoPayload) (*models.MetodoPago, error) {
	nombre := strings.TrimSpace(payload.Nombre)
	if nombre == "" {
		return nil, validationError("nombre", "nombre cannot be empty")
	}

	metodo := &models.MetodoPago{Nombre: nombre}
	if err := s.metodoRepo.Create(ctx, metodo); err != nil {
		return nil, translate(err, "creating", "payment method")
	}

	s.publish(ctx, "metodo_pago", events.ActionCreated, metodo.IDMetodo)
	return metodo, nil
}

func (s *metodoPagoServiceImpl) Update(ctx context.Context, id int64, payload models.MetodoPagoPayload) (*models.MetodoPago, error) {
	nombre := strings.TrimSpace(payload.Nombre)
	if nombre == "" {
		return nil, validationError("nombre", "nombre cannot be empty")
	}

	metodo := &models.MetodoPago{IDMetodo: id, Nombre: nombre}
	if err := s.metodoRepo.Update(ctx, metodo); err != nil {
		return nil, translate(err, "updating", "payment method")
	}

	s.publish(ctx, "metodo_pago", events.ActionUpdated, id)
	return metodo, nil
}

func (s *metodoPagoServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.metodoRepo.Delete(ctx, id); err != nil {
		return translate(err, "deleting", "payment method")
	}
	s.publish(ctx, "metodo_pago", events.ActionDeleted, id)
	return nil
}
