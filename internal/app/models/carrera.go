package models

// Carrera is a degree programme
type Carrera struct {
	IDCarrera         int64  `json:"id_carrera"`
	Nombre            string `json:"nombre"`
	DuracionSemestres int    `json:"duracion_semestres"`
}

// CarreraCreate is the payload accepted when creating a career
type CarreraCreate struct {
	Nombre            string `json:"nombre" binding:"required,max=120"`
	DuracionSemestres int    `json:"duracion_semestres" binding:"required,min=1,max=20"`
}

// CarreraUpdate is a partial update; nil fields keep their stored value
type CarreraUpdate struct {
	Nombre            *string `json:"nombre,omitempty" binding:"omitempty,min=1,max=120"`
	DuracionSemestres *int    `json:"duracion_semestres,omitempty" binding:"omitempty,min=1,max=20"`
}

// Apply copies the non-nil fields of u onto c
func (u CarreraUpdate) Apply(c *Carrera) {
	if u.Nombre != nil {
		c.Nombre = *u.Nombre
	}
	if u.DuracionSemestres != nil {
		c.DuracionSemestres = *u.DuracionSemestres
	}
}
