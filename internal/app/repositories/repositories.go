package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/pkg/dberrors"
)

// Shared repository errors. Both the PostgreSQL and the in-memory
// implementations report failures through these sentinels.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	// ErrReferenced is returned when deleting a row other rows still point to
	ErrReferenced = errors.New("record is still referenced")
	// ErrInvalidReference is returned when a foreign identifier points nowhere
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// Store is the storage contract shared by every entity. Create and Update
// write the server-assigned fields back into the passed record.
type Store[K comparable, E any] interface {
	List(ctx context.Context) ([]E, error)
	Get(ctx context.Context, id K) (*E, error)
	Create(ctx context.Context, e *E) error
	Update(ctx context.Context, e *E) error
	Delete(ctx context.Context, id K) error
}

type (
	AlumnoRepository       = Store[string, models.Alumno]
	CarreraRepository      = Store[int64, models.Carrera]
	CicloEscolarRepository = Store[int64, models.CicloEscolar]
	CuentaRepository       = Store[int64, models.Cuenta]
	MetodoPagoRepository   = Store[int64, models.MetodoPago]
	ConceptoRepository     = Store[string, models.Concepto]
	ObservacionRepository  = Store[int64, models.Observacion]
	RolRepository          = Store[int64, models.Rol]
	UsuarioRepository      = Store[int64, models.Usuario]
)

// Repositories holds all the repository instances
type Repositories struct {
	Alumnos         AlumnoRepository
	Carreras        CarreraRepository
	CiclosEscolares CicloEscolarRepository
	Cuentas         CuentaRepository
	MetodosPago     MetodoPagoRepository
	Conceptos       ConceptoRepository
	Observaciones   ObservacionRepository
	Roles           RolRepository
	Usuarios        UsuarioRepository
}

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// NewRepositories initializes the PostgreSQL repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return NewRepositoriesWithDB(db)
}

// NewRepositoriesWithDB initializes the PostgreSQL repositories on any DBTX
func NewRepositoriesWithDB(db DBTX) *Repositories {
	return &Repositories{
		Alumnos:         NewPgAlumnoRepository(db),
		Carreras:        NewPgCarreraRepository(db),
		CiclosEscolares: NewPgCicloEscolarRepository(db),
		Cuentas:         NewPgCuentaRepository(db),
		MetodosPago:     NewPgMetodoPagoRepository(db),
		Conceptos:       NewPgConceptoRepository(db),
		Observaciones:   NewPgObservacionRepository(db),
		Roles:           NewPgRolRepository(db),
		Usuarios:        NewPgUsuarioRepository(db),
	}
}

// statementBuilder builds PostgreSQL ($n) placeholders
var statementBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// translateWriteError maps PostgreSQL constraint failures of INSERT/UPDATE to
// repository sentinels.
func translateWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case dberrors.IsUniqueViolation(err):
		return ErrAlreadyExists
	case dberrors.IsForeignKeyViolation(err):
		return ErrInvalidReference
	default:
		return err
	}
}

// translateDeleteError maps PostgreSQL constraint failures of DELETE to
// repository sentinels.
func translateDeleteError(err error) error {
	if dberrors.IsForeignKeyViolation(err) {
		return ErrReferenced
	}
	return err
}

// affectedOrNotFound turns an UPDATE/DELETE touching no rows into ErrNotFound
func affectedOrNotFound(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// noRows maps pgx.ErrNoRows to ErrNotFound
func noRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
