package memory

import (
	"github.com/controlescolar/escolar/internal/app/models"
	"github.com/controlescolar/escolar/internal/app/repositories"
)

// Store holds one table per entity with delete guards mirroring the
// RESTRICT foreign keys of the PostgreSQL schema.
type Store struct {
	Alumnos         *Table[string, models.Alumno]
	Carreras        *Table[int64, models.Carrera]
	CiclosEscolares *Table[int64, models.CicloEscolar]
	Cuentas         *Table[int64, models.Cuenta]
	MetodosPago     *Table[int64, models.MetodoPago]
	Conceptos       *Table[string, models.Concepto]
	Observaciones   *Table[int64, models.Observacion]
	Roles           *Table[int64, models.Rol]
	Usuarios        *Table[int64, models.Usuario]
}

// NewStore creates an empty store
func NewStore() *Store {
	s := &Store{
		Alumnos: newTable(spec[string, models.Alumno]{
			key:  func(a *models.Alumno) string { return a.Matricula },
			less: func(a, b *models.Alumno) bool { return a.Matricula < b.Matricula },
			preserve: func(stored models.Alumno, a *models.Alumno) {
				a.FechaRegistro = stored.FechaRegistro
			},
		}),
		Carreras: newTable(spec[int64, models.Carrera]{
			key:    func(c *models.Carrera) int64 { return c.IDCarrera },
			assign: func(c *models.Carrera, id int64) { c.IDCarrera = id },
			less:   func(a, b *models.Carrera) bool { return a.IDCarrera < b.IDCarrera },
		}),
		CiclosEscolares: newTable(spec[int64, models.CicloEscolar]{
			key:        func(c *models.CicloEscolar) int64 { return c.IDCiclo },
			assign:     func(c *models.CicloEscolar, id int64) { c.IDCiclo = id },
			less:       func(a, b *models.CicloEscolar) bool { return a.IDCiclo < b.IDCiclo },
			afterWrite: keepSingleCurrent,
		}),
		Cuentas: newTable(spec[int64, models.Cuenta]{
			key:    func(c *models.Cuenta) int64 { return c.IDCuenta },
			assign: func(c *models.Cuenta, id int64) { c.IDCuenta = id },
			less:   func(a, b *models.Cuenta) bool { return a.IDCuenta < b.IDCuenta },
			preserve: func(stored models.Cuenta, c *models.Cuenta) {
				c.FechaCreacion = stored.FechaCreacion
			},
		}),
		MetodosPago: newTable(spec[int64, models.MetodoPago]{
			key:    func(m *models.MetodoPago) int64 { return m.IDMetodo },
			assign: func(m *models.MetodoPago, id int64) { m.IDMetodo = id },
			less:   func(a, b *models.MetodoPago) bool { return a.IDMetodo < b.IDMetodo },
			unique: []func(*models.MetodoPago) (string, bool){
				func(m *models.MetodoPago) (string, bool) { return m.Nombre, true },
			},
		}),
		Conceptos: newTable(spec[string, models.Concepto]{
			key:  func(c *models.Concepto) string { return c.Clave },
			less: func(a, b *models.Concepto) bool { return a.Clave < b.Clave },
		}),
		Observaciones: newTable(spec[int64, models.Observacion]{
			key:    func(o *models.Observacion) int64 { return o.IDObservacion },
			assign: func(o *models.Observacion, id int64) { o.IDObservacion = id },
			less: func(a, b *models.Observacion) bool {
				if !a.Fecha.Equal(b.Fecha) {
					return a.Fecha.After(b.Fecha)
				}
				return a.IDObservacion > b.IDObservacion
			},
			preserve: func(stored models.Observacion, o *models.Observacion) {
				o.Fecha = stored.Fecha
			},
		}),
		Roles: newTable(spec[int64, models.Rol]{
			key:    func(r *models.Rol) int64 { return r.IDRol },
			assign: func(r *models.Rol, id int64) { r.IDRol = id },
			less:   func(a, b *models.Rol) bool { return a.IDRol < b.IDRol },
			unique: []func(*models.Rol) (string, bool){
				func(r *models.Rol) (string, bool) { return r.NombreRol, true },
			},
		}),
		Usuarios: newTable(spec[int64, models.Usuario]{
			key:    func(u *models.Usuario) int64 { return u.IDUsuario },
			assign: func(u *models.Usuario, id int64) { u.IDUsuario = id },
			less:   func(a, b *models.Usuario) bool { return a.IDUsuario < b.IDUsuario },
			unique: []func(*models.Usuario) (string, bool){
				func(u *models.Usuario) (string, bool) { return u.Username, true },
				func(u *models.Usuario) (string, bool) {
					if u.MatriculaAlumno == nil {
						return "", false
					}
					return *u.MatriculaAlumno, true
				},
			},
		}),
	}

	s.Carreras.guard(func(id int64) bool {
		return s.Alumnos.any(func(a *models.Alumno) bool { return a.IDCarrera == id })
	})
	s.Alumnos.guard(func(matricula string) bool {
		return s.Cuentas.any(func(c *models.Cuenta) bool { return c.Matricula == matricula })
	})
	s.Alumnos.guard(func(matricula string) bool {
		return s.Observaciones.any(func(o *models.Observacion) bool { return o.Matricula == matricula })
	})
	s.Alumnos.guard(func(matricula string) bool {
		return s.Usuarios.any(func(u *models.Usuario) bool {
			return u.MatriculaAlumno != nil && *u.MatriculaAlumno == matricula
		})
	})
	s.Usuarios.guard(func(id int64) bool {
		return s.Observaciones.any(func(o *models.Observacion) bool { return o.IDAutor != nil && *o.IDAutor == id })
	})
	s.CiclosEscolares.guard(func(id int64) bool {
		return s.Cuentas.any(func(c *models.Cuenta) bool { return c.IDCiclo == id })
	})
	s.MetodosPago.guard(func(id int64) bool {
		return s.Cuentas.any(func(c *models.Cuenta) bool { return c.IDMetodo != nil && *c.IDMetodo == id })
	})
	s.Roles.guard(func(id int64) bool {
		return s.Usuarios.any(func(u *models.Usuario) bool { return u.IDRol == id })
	})

	return s
}

// keepSingleCurrent clears es_actual on every other cycle when c is current
func keepSingleCurrent(rows map[int64]models.CicloEscolar, c *models.CicloEscolar) {
	if !c.EsActual {
		return
	}
	for id, r := range rows {
		if id != c.IDCiclo && r.EsActual {
			r.EsActual = false
			rows[id] = r
		}
	}
}

// Repositories exposes the store through the repository contracts
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Alumnos:         s.Alumnos,
		Carreras:        s.Carreras,
		CiclosEscolares: s.CiclosEscolares,
		Cuentas:         s.Cuentas,
		MetodosPago:     s.MetodosPago,
		Conceptos:       s.Conceptos,
		Observaciones:   s.Observaciones,
		Roles:           s.Roles,
		Usuarios:        s.Usuarios,
	}
}

// NewRepositories returns repositories backed by a fresh in-memory store
func NewRepositories() *repositories.Repositories {
	return NewStore().Repositories()
}
