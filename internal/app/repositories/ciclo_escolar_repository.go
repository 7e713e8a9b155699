package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/pkg/logger"
)

var cicloColumns = []string{"id_ciclo", "nombre", "fecha_inicio", "fecha_fin", "es_actual"}

// PgCicloEscolarRepository handles database operations for school cycles.
// Writing a cycle flagged as current clears the flag on every other cycle in
// the same transaction.
type PgCicloEscolarRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPgCicloEscolarRepository creates a new school cycle repository
func NewPgCicloEscolarRepository(db DBTX) *PgCicloEscolarRepository {
	return &PgCicloEscolarRepository{db: db, sb: statementBuilder}
}

func scanCiclo(row pgx.Row) (models.CicloEscolar, error) {
	var (
		c           models.CicloEscolar
		inicio, fin time.Time
	)
	if err := row.Scan(&c.IDCiclo, &c.Nombre, &inicio, &fin, &c.EsActual); err != nil {
		return c, err
	}
	c.FechaInicio = models.DateOf(inicio)
	c.FechaFin = models.DateOf(fin)
	return c, nil
}

// List retrieves all school cycles ordered by start date
func (r *PgCicloEscolarRepository) List(ctx context.Context) ([]models.CicloEscolar, error) {
	sql, args, err := r.sb.Select(cicloColumns...).From("ciclos_escolares").
		OrderBy("fecha_inicio", "id_ciclo").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list ciclos query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying ciclos: %w", err)
	}
	defer rows.Close()

	ciclos := []models.CicloEscolar{}
	for rows.Next() {
		c, err := scanCiclo(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning ciclo: %w", err)
		}
		ciclos = append(ciclos, c)
	}
	return ciclos, rows.Err()
}

// Get retrieves a school cycle by id
func (r *PgCicloEscolarRepository) Get(ctx context.Context, id int64) (*models.CicloEscolar, error) {
	sql, args, err := r.sb.Select(cicloColumns...).From("ciclos_escolares").
		Where(squirrel.Eq{"id_ciclo": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get ciclo query: %w", err)
	}

	c, err := scanCiclo(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, noRows(err)
	}
	return &c, nil
}

// Create inserts a school cycle and assigns its id
func (r *PgCicloEscolarRepository) Create(ctx context.Context, c *models.CicloEscolar) error {
	return r.withCurrentFlag(ctx, c, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("ciclos_escolares").
			Columns("nombre", "fecha_inicio", "fecha_fin", "es_actual").
			Values(c.Nombre, c.FechaInicio.Time, c.FechaFin.Time, c.EsActual).
			Suffix("RETURNING id_ciclo").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create ciclo query: %w", err)
		}
		return translateWriteError(tx.QueryRow(ctx, sql, args...).Scan(&c.IDCiclo))
	})
}

// Update overwrites a school cycle
func (r *PgCicloEscolarRepository) Update(ctx context.Context, c *models.CicloEscolar) error {
	return r.withCurrentFlag(ctx, c, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Update("ciclos_escolares").
			Set("nombre", c.Nombre).
			Set("fecha_inicio", c.FechaInicio.Time).
			Set("fecha_fin", c.FechaFin.Time).
			Set("es_actual", c.EsActual).
			Where(squirrel.Eq{"id_ciclo": c.IDCiclo}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update ciclo query: %w", err)
		}

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return translateWriteError(err)
		}
		return affectedOrNotFound(tag)
	})
}

// Delete removes a school cycle by id
func (r *PgCicloEscolarRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("ciclos_escolares").Where(squirrel.Eq{"id_ciclo": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete ciclo query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateDeleteError(err)
	}
	return affectedOrNotFound(tag)
}

// withCurrentFlag runs write inside a transaction, clearing es_actual on the
// other cycles first when c is flagged as current.
func (r *PgCicloEscolarRepository) withCurrentFlag(ctx context.Context, c *models.CicloEscolar, write func(context.Context, pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if c.EsActual {
		reset := r.sb.Update("ciclos_escolares").Set("es_actual", false).Where(squirrel.Eq{"es_actual": true})
		if c.IDCiclo != 0 {
			reset = reset.Where(squirrel.NotEq{"id_ciclo": c.IDCiclo})
		}
		sql, args, err := reset.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build clear current ciclo query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Msg("Error clearing current ciclo flag")
			return fmt.Errorf("error clearing current ciclo: %w", err)
		}
	}

	if err := write(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
