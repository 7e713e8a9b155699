package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/controlescolar/escolar/internal/app/models"
)

var observacionColumns = []string{"id_observacion", "matricula", "detalle", "id_autor", "fecha"}

// PgObservacionRepository handles database operations for student observations
type PgObservacionRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPgObservacionRepository creates a new observation repository
func NewPgObservacionRepository(db DBTX) *PgObservacionRepository {
	return &PgObservacionRepository{db: db, sb: statementBuilder}
}

func scanObservacion(row pgx.Row) (models.Observacion, error) {
	var o models.Observacion
	err := row.Scan(&o.IDObservacion, &o.Matricula, &o.Detalle, &o.IDAutor, &o.Fecha)
	return o, err
}

// List retrieves all observations, newest first
func (r *PgObservacionRepository) List(ctx context.Context) ([]models.Observacion, error) {
	sql, args, err := r.sb.Select(observacionColumns...).From("observaciones").
		OrderBy("fecha DESC", "id_observacion DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list observaciones query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying observaciones: %w", err)
	}
	defer rows.Close()

	observaciones := []models.Observacion{}
	for rows.Next() {
		o, err := scanObservacion(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning observacion: %w", err)
		}
		observaciones = append(observaciones, o)
	}
	return observaciones, rows.Err()
}

// Get retrieves an observation by id
func (r *PgObservacionRepository) Get(ctx context.Context, id int64) (*models.Observacion, error) {
	sql, args, err := r.sb.Select(observacionColumns...).From("observaciones").
		Where(squirrel.Eq{"id_observacion": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get observacion query: %w", err)
	}

	o, err := scanObservacion(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, noRows(err)
	}
	return &o, nil
}

// Create inserts an observation and assigns its id
func (r *PgObservacionRepository) Create(ctx context.Context, o *models.Observacion) error {
	sql, args, err := r.sb.Insert("observaciones").
		Columns("matricula", "detalle", "id_autor", "fecha").
		Values(o.Matricula, o.Detalle, o.IDAutor, o.Fecha).
		Suffix("RETURNING id_observacion").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create observacion query: %w", err)
	}

	return translateWriteError(r.db.QueryRow(ctx, sql, args...).Scan(&o.IDObservacion))
}

// Update overwrites an observation; the recorded date is kept
func (r *PgObservacionRepository) Update(ctx context.Context, o *models.Observacion) error {
	sql, args, err := r.sb.Update("observaciones").
		Set("matricula", o.Matricula).
		Set("detalle", o.Detalle).
		Set("id_autor", o.IDAutor).
		Where(squirrel.Eq{"id_observacion": o.IDObservacion}).
		Suffix("RETURNING fecha").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update observacion query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&o.Fecha); err != nil {
		return translateWriteError(noRows(err))
	}
	return nil
}

// Delete removes an observation by id
func (r *PgObservacionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("observaciones").Where(squirrel.Eq{"id_observacion": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete observacion query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateDeleteError(err)
	}
	return affectedOrNotFound(tag)
}
