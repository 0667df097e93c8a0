package entity

import "github.com/shopspring/decimal"

// Billing agregado anual de facturación por proveedor.
// Annual es la suma de los totales de las facturas confirmadas del año y
// Trimesters el desglose por trimestre natural de la fecha de factura.
// Se ajusta al confirmar y al eliminar facturas confirmadas.
type Billing struct {
	ID           string
	Provider     string
	NameProvider string
	Year         int
	Annual       decimal.Decimal
	Trimesters   [4]decimal.Decimal
}
