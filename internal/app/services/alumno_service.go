package services

import (
	"context"
	"strings"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/repositories"
	"github.com/controlescolar/escolar/internal/events"
)

// AlumnoService defines the operations on students
type AlumnoService interface {
	List(ctx context.Context) ([]models.Alumno, error)
	Create(ctx context.Context, payload models.AlumnoCreate) (*models.Alumno, error)
	Update(ctx context.Context, matricula string, payload models.AlumnoUpdate) (*models.Alumno, error)
	Delete(ctx context.Context, matricula string) error
}

type alumnoServiceImpl struct {
	base
	alumnoRepo  repositories.AlumnoRepository
	carreraRepo repositories.CarreraRepository
}

// NewAlumnoService creates a new student service instance
func NewAlumnoService(alumnoRepo repositories.AlumnoRepository, carreraRepo repositories.CarreraRepository, b base) AlumnoService {
	return &alumnoServiceImpl{base: b, alumnoRepo: alumnoRepo, carreraRepo: carreraRepo}
}

func (s *alumnoServiceImpl) List(ctx context.Context) ([]models.Alumno, error) {
	alumnos, err := s.alumnoRepo.List(ctx)
	return alumnos, translate(err, "listing", "student")
}

// blankToNil drops empty optional contact fields
func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *alumnoServiceImpl) Create(ctx context.Context, payload models.AlumnoCreate) (*models.Alumno, error) {
	matricula := strings.TrimSpace(payload.Matricula)
	if matricula == "" {
		return nil, validationError("matricula", "matricula cannot be empty")
	}
	nombre := strings.TrimSpace(payload.NombreCompleto)
	if nombre == "" {
		return nil, validationError("nombre_completo", "nombre_completo cannot be empty")
	}
	if err := requireRef(ctx, s.carreraRepo, payload.IDCarrera, "id_carrera", "career"); err != nil {
		return nil, err
	}

	alumno := &models.Alumno{
		Matricula:          matricula,
		NombreCompleto:     nombre,
		EmailInstitucional: blankToNil(payload.EmailInstitucional),
		TelefonoContacto:   blankToNil(payload.TelefonoContacto),
		IDCarrera:          payload.IDCarrera,
		SemestreActual:     1,
		Activo:             true,
		FechaRegistro:      s.timestamp(),
	}
	if payload.SemestreActual != nil {
		alumno.SemestreActual = *payload.SemestreActual
	}
	if payload.Activo != nil {
		alumno.Activo = *payload.Activo
	}

	if err := s.alumnoRepo.Create(ctx, alumno); err != nil {
		return nil, translate(err, "creating", "student")
	}

	s.publish(ctx, "alumno", events.ActionCreated, alumno.Matricula)
	return alumno, nil
}

func (s *alumnoServiceImpl) Update(ctx context.Context, matricula string, payload models.AlumnoUpdate) (*models.Alumno, error) {
	alumno, err := s.alumnoRepo.Get(ctx, matricula)
	if err != nil {
		return nil, translate(err, "retrieving", "student")
	}

	if payload.IDCarrera != nil && *payload.IDCarrera != alumno.IDCarrera {
		if err := requireRef(ctx, s.carreraRepo, *payload.IDCarrera, "id_carrera", "career"); err != nil {
			return nil, err
		}
	}

	payload.Apply(alumno)
	alumno.NombreCompleto = strings.TrimSpace(alumno.NombreCompleto)
	if alumno.NombreCompleto == "" {
		return nil, validationError("nombre_completo", "nombre_completo cannot be empty")
	}
	alumno.EmailInstitucional = blankToNil(alumno.EmailInstitucional)
	alumno.TelefonoContacto = blankToNil(alumno.TelefonoContacto)

	if err := s.alumnoRepo.Update(ctx, alumno); err != nil {
		return nil, translate(err, "updating", "student")
	}

	s.publish(ctx, "alumno", events.ActionUpdated, matricula)
	return alumno, nil
}

func (s *alumnoServiceImpl) Delete(ctx context.Context, matricula string) error {
	if err := s.alumnoRepo.Delete(ctx, matricula); err != nil {
		return translate(err, "deleting", "student")
	}
	s.publish(ctx, "alumno", events.ActionDeleted, matricula)
	return nil
}
