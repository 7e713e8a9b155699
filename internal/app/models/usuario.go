package models

// Usuario is an application user. The password hash never leaves the server.
type Usuario struct {
	IDUsuario       int64   `json:"id_usuario"`
	Username        string  `json:"username"`
	IDRol           int64   `json:"id_rol"`
	MatriculaAlumno *string `json:"matricula_alumno"`
	Activo          bool    `json:"activo"`

	PasswordHash string `json:"-"`
}

// UsuarioPayload is used for both create and update. Password is required on
// create and optional on update, where an empty password keeps the stored one.
// Activo defaults to true.
type UsuarioPayload struct {
	Username        string  `json:"username" binding:"required,min=3,max=50"`
	Password        string  `json:"password,omitempty" binding:"omitempty,min=6"`
	IDRol           int64   `json:"id_rol" binding:"required,gt=0"`
	MatriculaAlumno *string `json:"matricula_alumno,omitempty"`
	Activo          *bool   `json:"activo,omitempty"`
}
