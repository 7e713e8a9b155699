package models

import "time"

// Observacion is a note recorded about a student
type Observacion struct {
	IDObservacion int64     `json:"id_observacion"`
	Matricula     string    `json:"matricula"`
	Detalle       string    `json:"detalle"`
	IDAutor       *int64    `json:"id_autor"`
	Fecha         time.Time `json:"fecha"`
}

// ObservacionPayload is used for both create and update. IDAutor references a user.
type ObservacionPayload struct {
	Matricula string `json:"matricula" binding:"required"`
	Detalle   string `json:"detalle" binding:"required"`
	IDAutor   *int64 `json:"id_autor" binding:"omitempty,gt=0"`
}
