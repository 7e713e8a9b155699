package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/controlescolar/escolar/internal/app/models"
)

// PgMetodoPagoRepository handles database operations for payment methods
type PgMetodoPagoRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPgMetodoPagoRepository creates a new payment method repository
func NewPgMetodoPagoRepository(db DBTX) *PgMetodoPagoRepository {
	return &PgMetodoPagoRepository{db: db, sb: statementBuilder}
}

func scanMetodoPago(row pgx.Row) (models.MetodoPago, error) {
	var m models.MetodoPago
	err := row.Scan(&m.IDMetodo, &m.Nombre)
	return m, err
}

// List retrieves all payment methods ordered by id
func (r *PgMetodoPagoRepository) List(ctx context.Context) ([]models.MetodoPago, error) {
	sql, args, err := r.sb.Select("id_metodo", "nombre").From("metodos_pago").OrderBy("id_metodo").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list metodos_pago query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying metodos_pago: %w", err)
	}
	defer rows.Close()

	metodos := []models.MetodoPago{}
	for rows.Next() {
		m, err := scanMetodoPago(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning metodo_pago: %w", err)
		}
		metodos = append(metodos, m)
	}
	return metodos, rows.Err()
}

// Get retrieves a payment method by id
func (r *PgMetodoPagoRepository) Get(ctx context.Context, id int64) (*models.MetodoPago, error) {
	sql, args, err := r.sb.Select("id_metodo", "nombre").From("metodos_pago").
		Where(squirrel.Eq{"id_metodo": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get metodo_pago query: %w", err)
	}

	m, err := scanMetodoPago(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, noRows(err)
	}
	return &m, nil
}

// Create inserts a payment method and assigns its id
func (r *PgMetodoPagoRepository) Create(ctx context.Context, m *models.MetodoPago) error {
	sql, args, err := r.sb.Insert("metodos_pago").
		Columns("nombre").
		Values(m.Nombre).
		Suffix("RETURNING id_metodo").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create metodo_pago query: %w", err)
	}

	return translateWriteError(r.db.QueryRow(ctx, sql, args...).Scan(&m.IDMetodo))
}

// Update overwrites a payment method
func (r *PgMetodoPagoRepository) Update(ctx context.Context, m *models.MetodoPago) error {
	sql, args, err := r.sb.Update("metodos_pago").
		Set("nombre", m.Nombre).
		Where(squirrel.Eq{"id_metodo": m.IDMetodo}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update metodo_pago query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateWriteError(err)
	}
	return affectedOrNotFound(tag)
}

// Delete removes a payment method by id
func (r *PgMetodoPagoRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("metodos_pago").Where(squirrel.Eq{"id_metodo": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete metodo_pago query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateDeleteError(err)
	}
	return affectedOrNotFound(tag)
}
