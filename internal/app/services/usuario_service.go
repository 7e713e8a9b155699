package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/repositories"
	"github.com/controlescolar/escolar/internal/events"
	"github.com/controlescolar/escolar/internal/pkg/auth"
)

// UsuarioService defines the operations on application users
type UsuarioService interface {
	List(ctx context.Context) ([]models.Usuario, error)
	Create(ctx context.Context, payload models.UsuarioPayload) (*models.Usuario, error)
	Update(ctx context.Context, id int64, payload models.UsuarioPayload) (*models.Usuario, error)
	Delete(ctx context.Context, id int64) error
}

type usuarioServiceImpl struct {
	base
	usuarioRepo repositories.UsuarioRepository
	rolRepo     repositories.RolRepository
	alumnoRepo  repositories.AlumnoRepository
}

// NewUsuarioService creates a new user service instance
func NewUsuarioService(
	usuarioRepo repositories.UsuarioRepository,
	rolRepo repositories.RolRepository,
	alumnoRepo repositories.AlumnoRepository,
	b base,
) UsuarioService {
	return &usuarioServiceImpl{
		base:        b,
		usuarioRepo: usuarioRepo,
		rolRepo:     rolRepo,
		alumnoRepo:  alumnoRepo,
	}
}

func (s *usuarioServiceImpl) List(ctx context.Context) ([]models.Usuario, error) {
	usuarios, err := s.usuarioRepo.List(ctx)
	return usuarios, translate(err, "listing", "user")
}

// apply validates the payload and copies it onto u, hashing a new password
// when one is given
func (s *usuarioServiceImpl) apply(ctx context.Context, u *models.Usuario, payload models.UsuarioPayload) error {
	username := strings.TrimSpace(payload.Username)
	if username == "" {
		return validationError("username", "username cannot be empty")
	}
	if err := requireRef(ctx, s.rolRepo, payload.IDRol, "id_rol", "role"); err != nil {
		return err
	}
	matricula := blankToNil(payload.MatriculaAlumno)
	if matricula != nil {
		if err := requireRef(ctx, s.alumnoRepo, *matricula, "matricula_alumno", "student"); err != nil {
			return err
		}
	}

	if payload.Password != "" {
		hash, err := auth.HashPassword(payload.Password)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}
		u.PasswordHash = hash
	}

	u.Username = username
	u.IDRol = payload.IDRol
	u.MatriculaAlumno = matricula
	if payload.Activo != nil {
		u.Activo = *payload.Activo
	}
	return nil
}

func (s *usuarioServiceImpl) Create(ctx context.Context, payload models.UsuarioPayload) (*models.Usuario, error) {
	if payload.Password == "" {
		return nil, validationError("password", "password is required")
	}

	usuario := &models.Usuario{Activo: true}
	if err := s.apply(ctx, usuario, payload); err != nil {
		return nil, err
	}
	if err := s.usuarioRepo.Create(ctx, usuario); err != nil {
		return nil, translate(err, "creating", "user")
	}

	s.publish(ctx, "usuario", events.ActionCreated, usuario.IDUsuario)
	return usuario, nil
}

// Update replaces the user; an omitted password keeps the stored hash and an
// omitted activo keeps the stored flag
func (s *usuarioServiceImpl) Update(ctx context.Context, id int64, payload models.UsuarioPayload) (*models.Usuario, error) {
	usuario, err := s.usuarioRepo.Get(ctx, id)
	if err != nil {
		return nil, translate(err, "retrieving", "user")
	}

	if err := s.apply(ctx, usuario, payload); err != nil {
		return nil, err
	}
	if err := s.usuarioRepo.Update(ctx, usuario); err != nil {
		return nil, translate(err, "updating", "user")
	}

	s.publish(ctx, "usuario", events.ActionUpdated, id)
	return usuario, nil
}

func (s *usuarioServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.usuarioRepo.Delete(ctx, id); err != nil {
		return translate(err, "deleting", "user")
	}
	s.publish(ctx, "usuario", events.ActionDeleted, id)
	return nil
}
