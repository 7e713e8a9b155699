package models

// Concepto is a payment concept, identified by its code (clave). Codes may
// contain characters that are reserved in URLs.
type Concepto struct {
	Clave               string  `json:"clave"`
	Descripcion         string  `json:"descripcion"`
	MontoDefault        float64 `json:"monto_default"`
	GeneraCuentaDefault bool    `json:"genera_cuenta_default"`
}

// ConceptoPayload is used for both create and update
type ConceptoPayload struct {
	Clave               string  `json:"clave" binding:"required,max=30"`
	Descripcion         string  `json:"descripcion" binding:"required,max=200"`
	MontoDefault        float64 `json:"monto_default" binding:"gte=0"`
	GeneraCuentaDefault bool    `json:"genera_cuenta_default"`
}
