package models

// MetodoPago is a payment method
type MetodoPago struct {
	IDMetodo int64  `json:"id_metodo"`
	Nombre   string `json:"nombre"`
}

// MetodoPagoPayload is used for both create and update
type MetodoPagoPayload struct {
	Nombre string `json:"nombre" binding:"required,max=60"`
}
