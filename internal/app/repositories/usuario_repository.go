package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/pkg/dberrors"
)

var usuarioColumns = []string{"id_usuario", "username", "password_hash", "id_rol", "matricula_alumno", "activo"}

// PgUsuarioRepository handles database operations for users
type PgUsuarioRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewPgUsuarioRepository creates a new user repository
func NewPgUsuarioRepository(db DBTX) *PgUsuarioRepository {
	return &PgUsuarioRepository{db: db, sb: statementBuilder}
}

// translateUsuarioError names the unique constraint a write collided with
func translateUsuarioError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "usuarios_username_key"):
		return fmt.Errorf("%w: username is taken", ErrAlreadyExists)
	case dberrors.IsDuplicateConstraintError(err, "usuarios_matricula_alumno_key"):
		return fmt.Errorf("%w: student already has a user", ErrAlreadyExists)
	default:
		return translateWriteError(err)
	}
}

func scanUsuario(row pgx.Row) (models.Usuario, error) {
	var u models.Usuario
	err := row.Scan(&u.IDUsuario, &u.Username, &u.PasswordHash, &u.IDRol, &u.MatriculaAlumno, &u.Activo)
	return u, err
}

// List retrieves all users ordered by id
func (r *PgUsuarioRepository) List(ctx context.Context) ([]models.Usuario, error) {
	sql, args, err := r.sb.Select(usuarioColumns...).From("usuarios").OrderBy("id_usuario").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list usuarios query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying usuarios: %w", err)
	}
	defer rows.Close()

	usuarios := []models.Usuario{}
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning usuario: %w", err)
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

// Get retrieves a user by id
func (r *PgUsuarioRepository) Get(ctx context.Context, id int64) (*models.Usuario, error) {
	sql, args, err := r.sb.Select(usuarioColumns...).From("usuarios").
		Where(squirrel.Eq{"id_usuario": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get usuario query: %w", err)
	}

	u, err := scanUsuario(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, noRows(err)
	}
	return &u, nil
}

// Create inserts a user and assigns its id. Username and linked student are unique.
func (r *PgUsuarioRepository) Create(ctx context.Context, u *models.Usuario) error {
	sql, args, err := r.sb.Insert("usuarios").
		Columns("username", "password_hash", "id_rol", "matricula_alumno", "activo").
		Values(u.Username, u.PasswordHash, u.IDRol, u.MatriculaAlumno, u.Activo).
		Suffix("RETURNING id_usuario").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create usuario query: %w", err)
	}

	return translateUsuarioError(r.db.QueryRow(ctx, sql, args...).Scan(&u.IDUsuario))
}

// Update overwrites a user, including its password hash
func (r *PgUsuarioRepository) Update(ctx context.Context, u *models.Usuario) error {
	sql, args, err := r.sb.Update("usuarios").
		Set("username", u.Username).
		Set("password_hash", u.PasswordHash).
		Set("id_rol", u.IDRol).
		Set("matricula_alumno", u.MatriculaAlumno).
		Set("activo", u.Activo).
		Where(squirrel.Eq{"id_usuario": u.IDUsuario}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update usuario query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateUsuarioError(err)
	}
	return affectedOrNotFound(tag)
}

// Delete removes a user by id
func (r *PgUsuarioRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("usuarios").Where(squirrel.Eq{"id_usuario": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete usuario query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateDeleteError(err)
	}
	return affectedOrNotFound(tag)
}
