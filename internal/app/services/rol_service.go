package services

import (
	"context"
	"strings"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/repositories"
	"github.com/controlescolar/escolar/internal/events"
)

// RolService defines the operations on user roles
type RolService interface {
	List(ctx context.Context) ([]models.Rol, error)
	Create(ctx context.Context, payload models.RolPayload) (*models.Rol, error)
	Update(ctx context.Context, id int64, payload models.RolPayload) (*models.Rol, error)
	Delete(ctx context.Context, id int64) error
}

type rolServiceImpl struct {
	base
	rolRepo repositories.RolRepository
}

// NewRolService creates a new role service instance
func NewRolService(rolRepo repositories.RolRepository, b base) RolService {
	return &rolServiceImpl{base: b, rolRepo: rolRepo}
}

func (s *rolServiceImpl) List(ctx context.Context) ([]models.Rol, error) {
	roles, err := s.rolRepo.List(ctx)
	return roles, translate(err, "listing", "role")
}

func (s *rolServiceImpl) Create(ctx context.Context, payload models.RolPayload) (*models.Rol, error) {
	nombre := strings.TrimSpace(payload.NombreRol)
	if nombre == "" {
		return nil, validationError("nombre_rol", "nombre_rol cannot be empty")
	}

	rol := &models.Rol{NombreRol: nombre}
	if err := s.rolRepo.Create(ctx, rol); err != nil {
		return nil, translate(err, "creating", "role")
	}

	s.publish(ctx, "rol", events.ActionCreated, rol.IDRol)
	return rol, nil
}

func (s *rolServiceImpl) Update(ctx context.Context, id int64, payload models.RolPayload) (*models.Rol, error) {
	nombre := strings.TrimSpace(payload.NombreRol)
	if nombre == "" {
		return nil, validationError("nombre_rol", "nombre_rol cannot be empty")
	}

	rol := &models.Rol{IDRol: id, NombreRol: nombre}
	if err := s.rolRepo.Update(ctx, rol); err != nil {
		return nil, translate(err, "updating", "role")
	}

	s.publish(ctx, "rol", events.ActionUpdated, id)
	return rol, nil
}

func (s *rolServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.rolRepo.Delete(ctx, id); err != nil {
		return translate(err, "deleting", "role")
	}
	s.publish(ctx, "rol", events.ActionDeleted, id)
	return nil
}
