package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/controlescolar/escolar/internal/app/models"
)

var cuentaColumns = []string{
	"id_cuenta", "matricula", "concepto", "id_ciclo", "monto",
	"pagado", "fecha_pago", "fecha_creacion", "id_metodo",
}

// PgCuentaRepository handles database operations for student accounts
type PgCuentaRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPgCuentaRepository creates a new account repository
func NewPgCuentaRepository(db DBTX) *PgCuentaRepository {
	return &PgCuentaRepository{db: db, sb: statementBuilder}
}

func scanCuenta(row pgx.Row) (models.Cuenta, error) {
	var (
		c         models.Cuenta
		concepto  string
		fechaPago *time.Time
	)
	err := row.Scan(
		&c.IDCuenta,
		&c.Matricula,
		&concepto,
		&c.IDCiclo,
		&c.Monto,
		&c.Pagado,
		&fechaPago,
		&c.FechaCreacion,
		&c.IDMetodo,
	)
	if err != nil {
		return c, err
	}
	c.Concepto = models.ConceptoCuenta(concepto)
	if fechaPago != nil {
		d := models.DateOf(*fechaPago)
		c.FechaPago = &d
	}
	return c, nil
}

// dateArg converts an optional date to a pgx argument
func dateArg(d *models.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// List retrieves all accounts ordered by id
func (r *PgCuentaRepository) List(ctx context.Context) ([]models.Cuenta, error) {
	sql, args, err := r.sb.Select(cuentaColumns...).From("cuentas").OrderBy("id_cuenta").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list cuentas query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying cuentas: %w", err)
	}
	defer rows.Close()

	cuentas := []models.Cuenta{}
	for rows.Next() {
		c, err := scanCuenta(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning cuenta: %w", err)
		}
		cuentas = append(cuentas, c)
	}
	return cuentas, rows.Err()
}

// Get retrieves an account by id
func (r *PgCuentaRepository) Get(ctx context.Context, id int64) (*models.Cuenta, error) {
	sql, args, err := r.sb.Select(cuentaColumns...).From("cuentas").
		Where(squirrel.Eq{"id_cuenta": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get cuenta query: %w", err)
	}

	c, err := scanCuenta(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, noRows(err)
	}
	return &c, nil
}

// Create inserts an account and assigns its id
func (r *PgCuentaRepository) Create(ctx context.Context, c *models.Cuenta) error {
	sql, args, err := r.sb.Insert("cuentas").
		Columns("matricula", "concepto", "id_ciclo", "monto", "pagado", "fecha_pago", "fecha_creacion", "id_metodo").
		Values(c.Matricula, string(c.Concepto), c.IDCiclo, c.Monto, c.Pagado, dateArg(c.FechaPago), c.FechaCreacion, c.IDMetodo).
		Suffix("RETURNING id_cuenta").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create cuenta query: %w", err)
	}

	return translateWriteError(r.db.QueryRow(ctx, sql, args...).Scan(&c.IDCuenta))
}

// Update overwrites an account; fecha_creacion is never changed
func (r *PgCuentaRepository) Update(ctx context.Context, c *models.Cuenta) error {
	sql, args, err := r.sb.Update("cuentas").
		Set("matricula", c.Matricula).
		Set("concepto", string(c.Concepto)).
		Set("id_ciclo", c.IDCiclo).
		Set("monto", c.Monto).
		Set("pagado", c.Pagado).
		Set("fecha_pago", dateArg(c.FechaPago)).
		Set("id_metodo", c.IDMetodo).
		Where(squirrel.Eq{"id_cuenta": c.IDCuenta}).
		Suffix("RETURNING fecha_creacion").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update cuenta query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&c.FechaCreacion)
	if err != nil {
		return translateWriteError(noRows(err))
	}
	return nil
}

// Delete removes an account by id
func (r *PgCuentaRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("cuentas").Where(squirrel.Eq{"id_cuenta": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete cuenta query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateDeleteError(err)
	}
	return affectedOrNotFound(tag)
}
