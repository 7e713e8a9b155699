package services

import (
	"context"
	"strings"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/repositories"
	"github.com/controlescolar/escolar/internal/events"
)

// CarreraService defines the operations on careers
type CarreraService interface {
	List(ctx context.Context) ([]models.Carrera, error)
	Create(ctx context.Context, payload models.CarreraCreate) (*models.Carrera, error)
	Update(ctx context.Context, id int64, payload models.CarreraUpdate) (*models.Carrera, error)
	Delete(ctx context.Context, id int64) error
}

type carreraServiceImpl struct {
	base
	carreraRepo repositories.CarreraRepository
}

// NewCarreraService creates a new career service instance
func NewCarreraService(carreraRepo repositories.CarreraRepository, b base) CarreraService {
	return &carreraServiceImpl{base: b, carreraRepo: carreraRepo}
}

func (s *carreraServiceImpl) List(ctx context.Context) ([]models.Carrera, error) {
	carreras, err := s.carreraRepo.List(ctx)
	return carreras, translate(err, "listing", "career")
}

func (s *carreraServiceImpl) Create(ctx context.Context, payload models.CarreraCreate) (*models.Carrera, error) {
	nombre := strings.TrimSpace(payload.Nombre)
	if nombre == "" {
		return nil, validationError("nombre", "nombre cannot be empty")
	}

	carrera := &models.Carrera{Nombre: nombre, DuracionSemestres: payload.DuracionSemestres}
	if err := s.carreraRepo.Create(ctx, carrera); err != nil {
		return nil, translate(err, "creating", "career")
	}

	s.publish(ctx, "carrera", events.ActionCreated, carrera.IDCarrera)
	return carrera, nil
}

func (s *carreraServiceImpl) Update(ctx context.Context, id int64, payload models.CarreraUpdate) (*models.Carrera, error) {
	carrera, err := s.carreraRepo.Get(ctx, id)
	if err != nil {
		return nil, translate(err, "retrieving", "career")
	}

	payload.Apply(carrera)
	carrera.Nombre = strings.TrimSpace(carrera.Nombre)
	if carrera.Nombre == "" {
		return nil, validationError("nombre", "nombre cannot be empty")
	}

	if err := s.carreraRepo.Update(ctx, carrera); err != nil {
		return nil, translate(err, "updating", "career")
	}

	s.publish(ctx, "carrera", events.ActionUpdated, id)
	return carrera, nil
}

func (s *carreraServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.carreraRepo.Delete(ctx, id); err != nil {
		return translate(err, "deleting", "career")
	}
	s.publish(ctx, "carrera", events.ActionDeleted, id)
	return nil
}
