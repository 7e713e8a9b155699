package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/pkg/logger"
)

var alumnoColumns = []string{
	"matricula", "nombre_completo", "email_institucional", "telefono_contacto",
	"id_carrera", "semestre_actual", "activo", "fecha_registro",
}

// PgAlumnoRepository handles database operations for students
type PgAlumnoRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPgAlumnoRepository creates a new student repository
func NewPgAlumnoRepository(db DBTX) *PgAlumnoRepository {
	return &PgAlumnoRepository{db: db, sb: statementBuilder}
}

func scanAlumno(row pgx.Row) (models.Alumno, error) {
	var a models.Alumno
	err := row.Scan(
		&a.Matricula,
		&a.NombreCompleto,
		&a.EmailInstitucional,
		&a.TelefonoContacto,
		&a.IDCarrera,
		&a.SemestreActual,
		&a.Activo,
		&a.FechaRegistro,
	)
	return a, err
}

// List retrieves all students ordered by matricula
func (r *PgAlumnoRepository) List(ctx context.Context) ([]models.Alumno, error) {
	sql, args, err := r.sb.Select(alumnoColumns...).From("alumnos").OrderBy("matricula").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list alumnos query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list alumnos query")
		return nil, fmt.Errorf("error querying alumnos: %w", err)
	}
	defer rows.Close()

	alumnos := []models.Alumno{}
	for rows.Next() {
		a, err := scanAlumno(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning alumno: %w", err)
		}
		alumnos = append(alumnos, a)
	}
	return alumnos, rows.Err()
}

// Get retrieves a student by matricula
func (r *PgAlumnoRepository) Get(ctx context.Context, matricula string) (*models.Alumno, error) {
	sql, args, err := r.sb.Select(alumnoColumns...).From("alumnos").
		Where(squirrel.Eq{"matricula": matricula}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get alumno query: %w", err)
	}

	a, err := scanAlumno(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, noRows(err)
	}
	return &a, nil
}

// Create inserts a student; a duplicate matricula yields ErrAlreadyExists
func (r *PgAlumnoRepository) Create(ctx context.Context, a *models.Alumno) error {
	sql, args, err := r.sb.Insert("alumnos").
		Columns(alumnoColumns...).
		Values(a.Matricula, a.NombreCompleto, a.EmailInstitucional, a.TelefonoContacto,
			a.IDCarrera, a.SemestreActual, a.Activo, a.FechaRegistro).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create alumno query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return translateWriteError(err)
}

// Update overwrites a student's mutable fields
func (r *PgAlumnoRepository) Update(ctx context.Context, a *models.Alumno) error {
	sql, args, err := r.sb.Update("alumnos").
		Set("nombre_completo", a.NombreCompleto).
		Set("email_institucional", a.EmailInstitucional).
		Set("telefono_contacto", a.TelefonoContacto).
		Set("id_carrera", a.IDCarrera).
		Set("semestre_actual", a.SemestreActual).
		Set("activo", a.Activo).
		Where(squirrel.Eq{"matricula": a.Matricula}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update alumno query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateWriteError(err)
	}
	return affectedOrNotFound(tag)
}

// Delete removes a student by matricula
func (r *PgAlumnoRepository) Delete(ctx context.Context, matricula string) error {
	sql, args, err := r.sb.Delete("alumnos").Where(squirrel.Eq{"matricula": matricula}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete alumno query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateDeleteError(err)
	}
	return affectedOrNotFound(tag)
}
