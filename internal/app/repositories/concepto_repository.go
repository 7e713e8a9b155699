package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/controlescolar/escolar/internal/app/models"
)

var conceptoColumns = []string{"clave", "descripcion", "monto_default", "genera_cuenta_default"}

// PgConceptoRepository handles database operations for payment concepts
type PgConceptoRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPgConceptoRepository creates a new concept repository
func NewPgConceptoRepository(db DBTX) *PgConceptoRepository {
	return &PgConceptoRepository{db: db, sb: statementBuilder}
}

func scanConcepto(row pgx.Row) (models.Concepto, error) {
	var c models.Concepto
	err := row.Scan(&c.Clave, &c.Descripcion, &c.MontoDefault, &c.GeneraCuentaDefault)
	return c, err
}

// List retrieves all concepts ordered by clave
func (r *PgConceptoRepository) List(ctx context.Context) ([]models.Concepto, error) {
	sql, args, err := r.sb.Select(conceptoColumns...).From("conceptos").OrderBy("clave").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list conceptos query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying conceptos: %w", err)
	}
	defer rows.Close()

	conceptos := []models.Concepto{}
	for rows.Next() {
		c, err := scanConcepto(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning concepto: %w", err)
		}
		conceptos = append(conceptos, c)
	}
	return conceptos, rows.Err()
}

// Get retrieves a concept by clave
func (r *PgConceptoRepository) Get(ctx context.Context, clave string) (*models.Concepto, error) {
	sql, args, err := r.sb.Select(conceptoColumns...).From("conceptos").
		Where(squirrel.Eq{"clave": clave}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get concepto query: %w", err)
	}

	c, err := scanConcepto(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, noRows(err)
	}
	return &c, nil
}

// Create inserts a concept; a duplicate clave yields ErrAlreadyExists
func (r *PgConceptoRepository) Create(ctx context.Context, c *models.Concepto) error {
	sql, args, err := r.sb.Insert("conceptos").
		Columns(conceptoColumns...).
		Values(c.Clave, c.Descripcion, c.MontoDefault, c.GeneraCuentaDefault).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create concepto query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return translateWriteError(err)
}

// Update overwrites a concept's attributes
func (r *PgConceptoRepository) Update(ctx context.Context, c *models.Concepto) error {
	sql, args, err := r.sb.Update("conceptos").
		Set("descripcion", c.Descripcion).
		Set("monto_default", c.MontoDefault).
		Set("genera_cuenta_default", c.GeneraCuentaDefault).
		Where(squirrel.Eq{"clave": c.Clave}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update concepto query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateWriteError(err)
	}
	return affectedOrNotFound(tag)
}

// Delete removes a concept by clave
func (r *PgConceptoRepository) Delete(ctx context.Context, clave string) error {
	sql, args, err := r.sb.Delete("conceptos").Where(squirrel.Eq{"clave": clave}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete concepto query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateDeleteError(err)
	}
	return affectedOrNotFound(tag)
}
