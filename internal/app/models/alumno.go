package models

import "time"

// Alumno is a student, identified by its enrollment code (matricula)
type Alumno struct {
	Matricula          string    `json:"matricula"`
	NombreCompleto     string    `json:"nombre_completo"`
	EmailInstitucional *string   `json:"email_institucional"`
	TelefonoContacto   *string   `json:"telefono_contacto"`
	IDCarrera          int64     `json:"id_carrera"`
	SemestreActual     int       `json:"semestre_actual"`
	Activo             bool      `json:"activo"`
	FechaRegistro      time.Time `json:"fecha_registro"`
}

// AlumnoCreate is the payload accepted when registering a student.
// SemestreActual defaults to 1 and Activo to true.
type AlumnoCreate struct {
	Matricula          string  `json:"matricula" binding:"required,max=20"`
	NombreCompleto     string  `json:"nombre_completo" binding:"required,max=150"`
	EmailInstitucional *string `json:"email_institucional,omitempty" binding:"omitempty,email"`
	TelefonoContacto   *string `json:"telefono_contacto,omitempty" binding:"omitempty,max=20"`
	IDCarrera          int64   `json:"id_carrera" binding:"required,gt=0"`
	SemestreActual     *int    `json:"semestre_actual,omitempty" binding:"omitempty,min=1,max=20"`
	Activo             *bool   `json:"activo,omitempty"`
}

// AlumnoUpdate is a partial update; nil fields keep their stored value.
// The matricula is addressed by the path and cannot change.
type AlumnoUpdate struct {
	NombreCompleto     *string `json:"nombre_completo,omitempty" binding:"omitempty,max=150"`
	EmailInstitucional *string `json:"email_institucional,omitempty" binding:"omitempty,email"`
	TelefonoContacto   *string `json:"telefono_contacto,omitempty" binding:"omitempty,max=20"`
	IDCarrera          *int64  `json:"id_carrera,omitempty" binding:"omitempty,gt=0"`
	SemestreActual     *int    `json:"semestre_actual,omitempty" binding:"omitempty,min=1,max=20"`
	Activo             *bool   `json:"activo,omitempty"`
}

// Apply copies the non-nil fields of u onto a
func (u AlumnoUpdate) Apply(a *Alumno) {
	if u.NombreCompleto != nil {
		a.NombreCompleto = *u.NombreCompleto
	}
	if u.EmailInstitucional != nil {
		a.EmailInstitucional = u.EmailInstitucional
	}
	if u.TelefonoContacto != nil {
		a.TelefonoContacto = u.TelefonoContacto
	}
	if u.IDCarrera != nil {
		a.IDCarrera = *u.IDCarrera
	}
	if u.SemestreActual != nil {
		a.SemestreActual = *u.SemestreActual
	}
	if u.Activo != nil {
		a.Activo = *u.Activo
	}
}
