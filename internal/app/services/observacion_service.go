package services

import (
	"context"
	"strings"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/repositories"
	"github.com/controlescolar/escolar/internal/events"
)

// ObservacionService defines the operations on student observations
type ObservacionService interface {
	List(ctx context.Context) ([]models.Observacion, error)
	Create(ctx context.Context, payload models.ObservacionPayload) (*models.Observacion, error)
	Update(ctx context.Context, id int64, payload models.ObservacionPayload) (*models.Observacion, error)
	Delete(ctx context.Context, id int64) error
}

type observacionServiceImpl struct {
	base
	observacionRepo repositories.ObservacionRepository
	alumnoRepo      repositories.AlumnoRepository
	usuarioRepo     repositories.UsuarioRepository
}

// NewObservacionService creates a new observation service instance
func NewObservacionService(
	observacionRepo repositories.ObservacionRepository,
	alumnoRepo repositories.AlumnoRepository,
	usuarioRepo repositories.UsuarioRepository,
	b base,
) ObservacionService {
	return &observacionServiceImpl{
		base:            b,
		observacionRepo: observacionRepo,
		alumnoRepo:      alumnoRepo,
		usuarioRepo:     usuarioRepo,
	}
}

func (s *observacionServiceImpl) List(ctx context.Context) ([]models.Observacion, error) {
	observaciones, err := s.observacionRepo.List(ctx)
	return observaciones, translate(err, "listing", "observation")
}

func (s *observacionServiceImpl) build(ctx context.Context, payload models.ObservacionPayload) (*models.Observacion, error) {
	matricula := strings.TrimSpace(payload.Matricula)
	if matricula == "" {
		return nil, validationError("matricula", "matricula cannot be empty")
	}
	detalle := strings.TrimSpace(payload.Detalle)
	if detalle == "" {
		return nil, validationError("detalle", "detalle cannot be empty")
	}

	if err := requireRef(ctx, s.alumnoRepo, matricula, "matricula", "student"); err != nil {
		return nil, err
	}
	if payload.IDAutor != nil {
		if err := requireRef(ctx, s.usuarioRepo, *payload.IDAutor, "id_autor", "user"); err != nil {
			return nil, err
		}
	}

	return &models.Observacion{Matricula: matricula, Detalle: detalle, IDAutor: payload.IDAutor}, nil
}

func (s *observacionServiceImpl) Create(ctx context.Context, payload models.ObservacionPayload) (*models.Observacion, error) {
	observacion, err := s.build(ctx, payload)
	if err != nil {
		return nil, err
	}
	observacion.Fecha = s.timestamp()

	if err := s.observacionRepo.Create(ctx, observacion); err != nil {
		return nil, translate(err, "creating", "observation")
	}

	s.publish(ctx, "observacion", events.ActionCreated, observacion.IDObservacion)
	return observacion, nil
}

func (s *observacionServiceImpl) Update(ctx context.Context, id int64, payload models.ObservacionPayload) (*models.Observacion, error) {
	if _, err := s.observacionRepo.Get(ctx, id); err != nil {
		return nil, translate(err, "retrieving", "observation")
	}

	observacion, err := s.build(ctx, payload)
	if err != nil {
		return nil, err
	}
	observacion.IDObservacion = id

	if err := s.observacionRepo.Update(ctx, observacion); err != nil {
		return nil, translate(err, "updating", "observation")
	}

	s.publish(ctx, "observacion", events.ActionUpdated, id)
	return observacion, nil
}

func (s *observacionServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.observacionRepo.Delete(ctx, id); err != nil {
		return translate(err, "deleting", "observation")
	}
	s.publish(ctx, "observacion", events.ActionDeleted, id)
	return nil
}
