package entity

import "github.com/shopspring/decimal"

// DeliveryOrderProduct línea de producto de un albarán.
// IVA y Re son tasas (0.10 = 10%); TaxBase y Total son importes calculados
// a partir de precio y cantidad.
type DeliveryOrderProduct struct {
	ID       string
	Product  string // referencia al producto de catálogo
	Code     string
	Name     string
	Price    decimal.Decimal
	Quantity decimal.Decimal
	IVA      decimal.Decimal
	Re       decimal.Decimal
	TaxBase  decimal.Decimal
	Total    decimal.Decimal
}

// Totals importes agregados de un albarán o factura.
// Rate solo tiene significado en facturas de gasto directo de una sola
// entrada; en agregaciones de albaranes queda a cero.
type Totals struct {
	TaxBase decimal.Decimal
	IVA     decimal.Decimal
	Re      decimal.Decimal
	Total   decimal.Decimal
	Rate    decimal.Decimal
}

// DeliveryOrder representa un albarán de entrega de un proveedor.
//
// Invariante: Totals es la suma (redondeada una sola vez) de las líneas de
// producto. Invoice es nil mientras el albarán está "libre"; al vincularse a
// una factura guarda su referencia y, cuando la factura se confirma, copia
// su NOrder. Al desvincular o borrar la factura ambos campos se limpian.
type DeliveryOrder struct {
	ID           string
	Provider     string
	NameProvider string
	Date         int64 // epoch milisegundos
	Note         string
	Products     []DeliveryOrderProduct
	Totals       Totals
	Invoice      *string
	NOrder       *int
}

// Free indica si el albarán no está asignado a ninguna factura.
func (d *DeliveryOrder) Free() bool {
	return d.Invoice == nil
}
