package models

// Rol is a user role
type Rol struct {
	IDRol     int64  `json:"id_rol"`
	NombreRol string `json:"nombre_rol"`
}

// RolPayload is used for both create and update
type RolPayload struct {
	NombreRol string `json:"nombre_rol" binding:"required,max=50"`
}
