package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/repositories"
)

func ptr[T any](v T) *T { return &v }

func TestTable_CreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	a := &models.Carrera{Nombre: "Ingeniería", DuracionSemestres: 8}
	b := &models.Carrera{Nombre: "Derecho", DuracionSemestres: 10}
	require.NoError(t, s.Carreras.Create(ctx, a))
	require.NoError(t, s.Carreras.Create(ctx, b))

	assert.Equal(t, int64(1), a.IDCarrera)
	assert.Equal(t, int64(2), b.IDCarrera)

	list, err := s.Carreras.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Carrera{*a, *b}, list)
}

func TestTable_EmptyListIsNotNil(t *testing.T) {
	list, err := NewStore().Roles.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTable_NaturalKeyDuplicate(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Conceptos.Create(ctx, &models.Concepto{Clave: "INS/2024", Descripcion: "Inscripción"}))
	err := s.Conceptos.Create(ctx, &models.Concepto{Clave: "INS/2024", Descripcion: "Otra"})
	assert.ErrorIs(t, err, repositories.ErrAlreadyExists)

	got, err := s.Conceptos.Get(ctx, "INS/2024")
	require.NoError(t, err)
	assert.Equal(t, "Inscripción", got.Descripcion)
}

func TestTable_UpdateAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	assert.ErrorIs(t, s.Roles.Update(ctx, &models.Rol{IDRol: 9, NombreRol: "x"}), repositories.ErrNotFound)
	assert.ErrorIs(t, s.Roles.Delete(ctx, 9), repositories.ErrNotFound)
	_, err := s.Roles.Get(ctx, 9)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestTable_UniqueOnUpdateIgnoresSelf(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	admin := &models.Rol{NombreRol: "admin"}
	alumno := &models.Rol{NombreRol: "alumno"}
	require.NoError(t, s.Roles.Create(ctx, admin))
	require.NoError(t, s.Roles.Create(ctx, alumno))

	assert.NoError(t, s.Roles.Update(ctx, &models.Rol{IDRol: admin.IDRol, NombreRol: "admin"}))
	assert.ErrorIs(t, s.Roles.Update(ctx, &models.Rol{IDRol: alumno.IDRol, NombreRol: "admin"}), repositories.ErrAlreadyExists)
}

func TestUsuarios_UniqueLinkedStudent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Usuarios.Create(ctx, &models.Usuario{Username: "ana", IDRol: 1, MatriculaAlumno: ptr("A001")}))
	require.NoError(t, s.Usuarios.Create(ctx, &models.Usuario{Username: "admin", IDRol: 1}))
	require.NoError(t, s.Usuarios.Create(ctx, &models.Usuario{Username: "staff", IDRol: 1}))

	err := s.Usuarios.Create(ctx, &models.Usuario{Username: "ana2", IDRol: 1, MatriculaAlumno: ptr("A001")})
	assert.ErrorIs(t, err, repositories.ErrAlreadyExists)
	err = s.Usuarios.Create(ctx, &models.Usuario{Username: "ana", IDRol: 1})
	assert.ErrorIs(t, err, repositories.ErrAlreadyExists)
}

func TestTable_PreservesServerFields(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	registered := time.Date(2024, time.August, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Alumnos.Create(ctx, &models.Alumno{Matricula: "A001", NombreCompleto: "Ana", IDCarrera: 1, FechaRegistro: registered}))

	update := &models.Alumno{Matricula: "A001", NombreCompleto: "Ana López", IDCarrera: 1}
	require.NoError(t, s.Alumnos.Update(ctx, update))

	assert.Equal(t, registered, update.FechaRegistro)
	got, err := s.Alumnos.Get(ctx, "A001")
	require.NoError(t, err)
	assert.Equal(t, "Ana López", got.NombreCompleto)
	assert.Equal(t, registered, got.FechaRegistro)
}

func TestCiclos_SingleCurrent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	first := &models.CicloEscolar{Nombre: "2023-2024", EsActual: true}
	second := &models.CicloEscolar{Nombre: "2024-2025", EsActual: true}
	require.NoError(t, s.CiclosEscolares.Create(ctx, first))
	require.NoError(t, s.CiclosEscolares.Create(ctx, second))

	list, err := s.CiclosEscolares.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.False(t, list[0].EsActual)
	assert.True(t, list[1].EsActual)
}

func TestObservaciones_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	older := &models.Observacion{Matricula: "A001", Detalle: "uno", Fecha: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &models.Observacion{Matricula: "A001", Detalle: "dos", Fecha: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.Observaciones.Create(ctx, older))
	require.NoError(t, s.Observaciones.Create(ctx, newer))

	list, err := s.Observaciones.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "dos", list[0].Detalle)
}

func TestDelete_RestrictedByReferences(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	carrera := &models.Carrera{Nombre: "Ingeniería", DuracionSemestres: 8}
	require.NoError(t, s.Carreras.Create(ctx, carrera))
	require.NoError(t, s.Alumnos.Create(ctx, &models.Alumno{Matricula: "A001", NombreCompleto: "Ana", IDCarrera: carrera.IDCarrera}))
	ciclo := &models.CicloEscolar{Nombre: "2024-2025"}
	require.NoError(t, s.CiclosEscolares.Create(ctx, ciclo))
	metodo := &models.MetodoPago{Nombre: "Efectivo"}
	require.NoError(t, s.MetodosPago.Create(ctx, metodo))
	cuenta := &models.Cuenta{Matricula: "A001", Concepto: models.ConceptoUADEC, IDCiclo: ciclo.IDCiclo, IDMetodo: &metodo.IDMetodo}
	require.NoError(t, s.Cuentas.Create(ctx, cuenta))

	assert.ErrorIs(t, s.Carreras.Delete(ctx, carrera.IDCarrera), repositories.ErrReferenced)
	assert.ErrorIs(t, s.Alumnos.Delete(ctx, "A001"), repositories.ErrReferenced)
	assert.ErrorIs(t, s.CiclosEscolares.Delete(ctx, ciclo.IDCiclo), repositories.ErrReferenced)
	assert.ErrorIs(t, s.MetodosPago.Delete(ctx, metodo.IDMetodo), repositories.ErrReferenced)

	require.NoError(t, s.Cuentas.Delete(ctx, cuenta.IDCuenta))
	require.NoError(t, s.Alumnos.Delete(ctx, "A001"))
	require.NoError(t, s.Carreras.Delete(ctx, carrera.IDCarrera))
	require.NoError(t, s.MetodosPago.Delete(ctx, metodo.IDMetodo))
}

func TestTable_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Carreras.Create(ctx, &models.Carrera{Nombre: "c", DuracionSemestres: 1}))
		}()
	}
	wg.Wait()

	list, err := s.Carreras.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)
	seen := map[int64]bool{}
	for _, c := range list {
		seen[c.IDCarrera] = true
	}
	assert.Len(t, seen, 50)
}

func TestTable_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore().Carreras.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
