package services

import (
	"context"
	"strings"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/repositories"
	"github.com/controlescolar/escolar/internal/events"
)

// CicloEscolarService defines the operations on school cycles
type CicloEscolarService interface {
	List(ctx context.Context) ([]models.CicloEscolar, error)
	Create(ctx context.Context, payload models.CicloEscolarPayload) (*models.CicloEscolar, error)
	Update(ctx context.Context, id int64, payload models.CicloEscolarPayload) (*models.CicloEscolar, error)
	Delete(ctx context.Context, id int64) error
}

type cicloEscolarServiceImpl struct {
	base
	cicloRepo repositories.CicloEscolarRepository
}

// NewCicloEscolarService creates a new school cycle service instance
func NewCicloEscolarService(cicloRepo repositories.CicloEscolarRepository, b base) CicloEscolarService {
	return &cicloEscolarServiceImpl{base: b, cicloRepo: cicloRepo}
}

// validateCiclo checks the payload fields binding tags cannot express
func validateCiclo(payload models.CicloEscolarPayload) error {
	if strings.TrimSpace(payload.Nombre) == "" {
		return validationError("nombre", "nombre cannot be empty")
	}
	if payload.FechaInicio.IsZero() {
		return validationError("fecha_inicio", "fecha_inicio is required")
	}
	if payload.FechaFin.IsZero() {
		return validationError("fecha_fin", "fecha_fin is required")
	}
	if payload.FechaFin.Before(payload.FechaInicio) {
		return validationError("fecha_fin", "fecha_fin cannot precede fecha_inicio")
	}
	return nil
}

func cicloFrom(id int64, payload models.CicloEscolarPayload) *models.CicloEscolar {
	return &models.CicloEscolar{
		IDCiclo:     id,
		Nombre:      strings.TrimSpace(payload.Nombre),
		FechaInicio: payload.FechaInicio,
		FechaFin:    payload.FechaFin,
		EsActual:    payload.EsActual,
	}
}

func (s *cicloEscolarServiceImpl) List(ctx context.Context) ([]models.CicloEscolar, error) {
	ciclos, err := s.cicloRepo.List(ctx)
	return ciclos, translate(err, "listing", "school cycle")
}

func (s *cicloEscolarServiceImpl) Create(ctx context.Context, payload models.CicloEscolarPayload) (*models.CicloEscolar, error) {
	if err := validateCiclo(payload); err != nil {
		return nil, err
	}

	ciclo := cicloFrom(0, payload)
	if err := s.cicloRepo.Create(ctx, ciclo); err != nil {
		return nil, translate(err, "creating", "school cycle")
	}

	s.publish(ctx, "ciclo_escolar", events.ActionCreated, ciclo.IDCiclo)
	return ciclo, nil
}

func (s *cicloEscolarServiceImpl) Update(ctx context.Context, id int64, payload models.CicloEscolarPayload) (*models.CicloEscolar, error) {
	if err := validateCiclo(payload); err != nil {
		return nil, err
	}

	ciclo := cicloFrom(id, payload)
	if err := s.cicloRepo.Update(ctx, ciclo); err != nil {
		return nil, translate(err, "updating", "school cycle")
	}

	s.publish(ctx, "ciclo_escolar", events.ActionUpdated, id)
	return ciclo, nil
}

func (s *cicloEscolarServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.cicloRepo.Delete(ctx, id); err != nil {
		return translate(err, "deleting", "school cycle")
	}
	s.publish(ctx, "ciclo_escolar", events.ActionDeleted, id)
	return nil
}
