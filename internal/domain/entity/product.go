package entity

import "github.com/shopspring/decimal"

// PriceChange entrada del histórico de precios de un producto.
// El histórico es una secuencia ordenada por fecha; las actualizaciones de
// precio añaden entradas, nunca sobreescriben.
type PriceChange struct {
	Price decimal.Decimal
	Date  int64 // epoch milisegundos
}

// Product representa un producto del catálogo de un proveedor
// (distinto de la línea de producto de un albarán).
// IVA, Re y Profit son tasas (0.10 = 10%); Price es el precio de compra,
// Cost el coste derivado con impuestos y Sale el precio de venta con margen.
type Product struct {
	ID           string
	Code         string // único por proveedor cuando está presente
	Name         string
	Provider     string
	NameProvider string
	IVA          decimal.Decimal
	Re           decimal.Decimal
	Profit       decimal.Decimal
	Price        decimal.Decimal
	Cost         decimal.Decimal
	Sale         decimal.Decimal
	Prices       []PriceChange
}
