package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/controlescolar/escolar/internal/app/models"
)

// PgRolRepository handles database operations for roles
type PgRolRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPgRolRepository creates a new role repository
func NewPgRolRepository(db DBTX) *PgRolRepository {
	return &PgRolRepository{db: db, sb: statementBuilder}
}

func scanRol(row pgx.Row) (models.Rol, error) {
	var rol models.Rol
	err := row.Scan(&rol.IDRol, &rol.NombreRol)
	return rol, err
}

// List retrieves all roles ordered by id
func (r *PgRolRepository) List(ctx context.Context) ([]models.Rol, error) {
	sql, args, err := r.sb.Select("id_rol", "nombre_rol").From("roles").OrderBy("id_rol").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list roles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying roles: %w", err)
	}
	defer rows.Close()

	roles := []models.Rol{}
	for rows.Next() {
		rol, err := scanRol(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning rol: %w", err)
		}
		roles = append(roles, rol)
	}
	return roles, rows.Err()
}

// Get retrieves a role by id
func (r *PgRolRepository) Get(ctx context.Context, id int64) (*models.Rol, error) {
	sql, args, err := r.sb.Select("id_rol", "nombre_rol").From("roles").
		Where(squirrel.Eq{"id_rol": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get rol query: %w", err)
	}

	rol, err := scanRol(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, noRows(err)
	}
	return &rol, nil
}

// Create inserts a role and assigns its id
func (r *PgRolRepository) Create(ctx context.Context, rol *models.Rol) error {
	sql, args, err := r.sb.Insert("roles").
		Columns("nombre_rol").
		Values(rol.NombreRol).
		Suffix("RETURNING id_rol").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create rol query: %w", err)
	}

	return translateWriteError(r.db.QueryRow(ctx, sql, args...).Scan(&rol.IDRol))
}

// Update overwrites a role
func (r *PgRolRepository) Update(ctx context.Context, rol *models.Rol) error {
	sql, args, err := r.sb.Update("roles").
		Set("nombre_rol", rol.NombreRol).
		Where(squirrel.Eq{"id_rol": rol.IDRol}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update rol query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateWriteError(err)
	}
	return affectedOrNotFound(tag)
}

// Delete removes a role by id
func (r *PgRolRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("roles").Where(squirrel.Eq{"id_rol": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete rol query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateDeleteError(err)
	}
	return affectedOrNotFound(tag)
}
