package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/pkg/logger"
)

var carreraColumns = []string{"id_carrera", "nombre", "duracion_semestres"}

// PgCarreraRepository handles database operations for careers
type PgCarreraRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPgCarreraRepository creates a new career repository
func NewPgCarreraRepository(db DBTX) *PgCarreraRepository {
	return &PgCarreraRepository{db: db, sb: statementBuilder}
}

func scanCarrera(row pgx.Row) (models.Carrera, error) {
	var c models.Carrera
	err := row.Scan(&c.IDCarrera, &c.Nombre, &c.DuracionSemestres)
	return c, err
}

// List retrieves all careers ordered by id
func (r *PgCarreraRepository) List(ctx context.Context) ([]models.Carrera, error) {
	sql, args, err := r.sb.Select(carreraColumns...).From("carreras").OrderBy("id_carrera").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list carreras query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list carreras query")
		return nil, fmt.Errorf("error querying carreras: %w", err)
	}
	defer rows.Close()

	carreras := []models.Carrera{}
	for rows.Next() {
		c, err := scanCarrera(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning carrera: %w", err)
		}
		carreras = append(carreras, c)
	}
	return carreras, rows.Err()
}

// Get retrieves a career by id
func (r *PgCarreraRepository) Get(ctx context.Context, id int64) (*models.Carrera, error) {
	sql, args, err := r.sb.Select(carreraColumns...).From("carreras").
		Where(squirrel.Eq{"id_carrera": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get carrera query: %w", err)
	}

	c, err := scanCarrera(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, noRows(err)
	}
	return &c, nil
}

// Create inserts a career and assigns its id
func (r *PgCarreraRepository) Create(ctx context.Context, c *models.Carrera) error {
	sql, args, err := r.sb.Insert("carreras").
		Columns("nombre", "duracion_semestres").
		Values(c.Nombre, c.DuracionSemestres).
		Suffix("RETURNING id_carrera").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create carrera query: %w", err)
	}

	return translateWriteError(r.db.QueryRow(ctx, sql, args...).Scan(&c.IDCarrera))
}

// Update overwrites a career
func (r *PgCarreraRepository) Update(ctx context.Context, c *models.Carrera) error {
	sql, args, err := r.sb.Update("carreras").
		Set("nombre", c.Nombre).
		Set("duracion_semestres", c.DuracionSemestres).
		Where(squirrel.Eq{"id_carrera": c.IDCarrera}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update carrera query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateWriteError(err)
	}
	return affectedOrNotFound(tag)
}

// Delete removes a career by id
func (r *PgCarreraRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("carreras").Where(squirrel.Eq{"id_carrera": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete carrera query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateDeleteError(err)
	}
	return affectedOrNotFound(tag)
}
