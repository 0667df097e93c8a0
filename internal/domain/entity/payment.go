package entity

import "github.com/shopspring/decimal"

// Tipos de pago.
const (
	PaymentTypeCash     = "Efectivo"
	PaymentTypeCheck    = "Talón"
	PaymentTypeTransfer = "Transferencia"
	PaymentTypeReceipt  = "Recibo"
)

// Payment registro canónico del pago de una o varias facturas.
//
// Invariante: todas las facturas que referencian el pago ven los mismos
// PaymentDate/Type/Paid; la actualización se propaga a cada factura, nunca
// se duplica de forma independiente.
type Payment struct {
	ID           string
	Provider     string
	NameProvider string
	PaymentDate  int64
	Type         string
	NumCheque    string
	Amount       decimal.Decimal
	Paid         bool
	Invoices     []string // facturas que cubre
	NOrder       string   // números de orden de las facturas, para listados
}
