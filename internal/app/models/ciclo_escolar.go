package models

// CicloEscolar is a school cycle. At most one cycle is current.
type CicloEscolar struct {
	IDCiclo     int64  `json:"id_ciclo"`
	Nombre      string `json:"nombre"`
	FechaInicio Date   `json:"fecha_inicio"`
	FechaFin    Date   `json:"fecha_fin"`
	EsActual    bool   `json:"es_actual"`
}

// CicloEscolarPayload is used for both create and update
type CicloEscolarPayload struct {
	Nombre      string `json:"nombre" binding:"required,max=60"`
	FechaInicio Date   `json:"fecha_inicio"`
	FechaFin    Date   `json:"fecha_fin"`
	EsActual    bool   `json:"es_actual"`
}
