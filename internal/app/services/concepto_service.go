package services

import (
	"context"
	"strings"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/repositories"
	"github.com/controlescolar/escolar/internal/events"
)

// ConceptoService defines the operations on payment concepts
type ConceptoService interface {
	List(ctx context.Context) ([]models.Concepto, error)
	Create(ctx context.Context, payload models.ConceptoPayload) (*models.Concepto, error)
	Update(ctx context.Context, clave string, payload models.ConceptoPayload) (*models.Concepto, error)
	Delete(ctx context.Context, clave string) error
}

type conceptoServiceImpl struct {
	base
	conceptoRepo repositories.ConceptoRepository
}

// NewConceptoService creates a new concept service instance
func NewConceptoService(conceptoRepo repositories.ConceptoRepository, b base) ConceptoService {
	return &conceptoServiceImpl{base: b, conceptoRepo: conceptoRepo}
}

func (s *conceptoServiceImpl) List(ctx context.Context) ([]models.Concepto, error) {
	conceptos, err := s.conceptoRepo.List(ctx)
	return conceptos, translate(err, "listing", "concept")
}

func (s *conceptoServiceImpl) build(clave string, payload models.ConceptoPayload) (*models.Concepto, error) {
	if clave == "" {
		return nil, validationError("clave", "clave cannot be empty")
	}
	descripcion := strings.TrimSpace(payload.Descripcion)
	if descripcion == "" {
		return nil, validationError("descripcion", "descripcion cannot be empty")
	}
	if payload.MontoDefault < 0 {
		return nil, validationError("monto_default", "monto_default cannot be negative")
	}
	return &models.Concepto{
		Clave:               clave,
		Descripcion:         descripcion,
		MontoDefault:        payload.MontoDefault,
		GeneraCuentaDefault: payload.GeneraCuentaDefault,
	}, nil
}

func (s *conceptoServiceImpl) Create(ctx context.Context, payload models.ConceptoPayload) (*models.Concepto, error) {
	concepto, err := s.build(strings.TrimSpace(payload.Clave), payload)
	if err != nil {
		return nil, err
	}
	if err := s.conceptoRepo.Create(ctx, concepto); err != nil {
		return nil, translate(err, "creating", "concept")
	}

	s.publish(ctx, "concepto", events.ActionCreated, concepto.Clave)
	return concepto, nil
}

// Update addresses the concept by clave; the clave in the payload is ignored
// because the key cannot be renamed.
func (s *conceptoServiceImpl) Update(ctx context.Context, clave string, payload models.ConceptoPayload) (*models.Concepto, error) {
	concepto, err := s.build(clave, payload)
	if err != nil {
		return nil, err
	}
	if err := s.conceptoRepo.Update(ctx, concepto); err != nil {
		return nil, translate(err, "updating", "concept")
	}

	s.publish(ctx, "concepto", events.ActionUpdated, clave)
	return concepto, nil
}

func (s *conceptoServiceImpl) Delete(ctx context.Context, clave string) error {
	if err := s.conceptoRepo.Delete(ctx, clave); err != nil {
		return translate(err, "deleting", "concept")
	}
	s.publish(ctx, "concepto", events.ActionDeleted, clave)
	return nil
}
