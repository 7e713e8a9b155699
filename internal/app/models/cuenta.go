package models

import "time"

// ConceptoCuenta is the charge an account is raised for
type ConceptoCuenta string

const (
	ConceptoUADEC   ConceptoCuenta = "UADEC"
	ConceptoEscuela ConceptoCuenta = "ESCUELA"
)

// Cuenta is a charge owed by a student for a school cycle
type Cuenta struct {
	IDCuenta      int64          `json:"id_cuenta"`
	Matricula     string         `json:"matricula"`
	Concepto      ConceptoCuenta `json:"concepto"`
	IDCiclo       int64          `json:"id_ciclo"`
	Monto         float64        `json:"monto"`
	Pagado        bool           `json:"pagado"`
	FechaPago     *Date          `json:"fecha_pago"`
	FechaCreacion time.Time      `json:"fecha_creacion"`
	IDMetodo      *int64         `json:"id_metodo"`
}

// CuentaPayload is used for both create and update
type CuentaPayload struct {
	Matricula string         `json:"matricula" binding:"required"`
	Concepto  ConceptoCuenta `json:"concepto" binding:"required,oneof=UADEC ESCUELA"`
	IDCiclo   int64          `json:"id_ciclo" binding:"required,gt=0"`
	Monto     float64        `json:"monto" binding:"gte=0"`
	Pagado    bool           `json:"pagado"`
	FechaPago *Date          `json:"fecha_pago,omitempty"`
	IDMetodo  *int64         `json:"id_metodo,omitempty" binding:"omitempty,gt=0"`
}
