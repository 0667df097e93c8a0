package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto de catálogo.
// IVA, Re y Profit son tasas obligatorias; Code es opcional pero único por
// proveedor cuando está presente.
type CreateProductRequest struct {
	Code     string           `json:"code"`
	Name     string           `json:"name"`
	Provider string           `json:"provider"`
	IVA      *decimal.Decimal `json:"iva"`
	Re       *decimal.Decimal `json:"re"`
	Profit   *decimal.Decimal `json:"profit"`
}

// UpdateProductRequest edición de campos del producto.
type UpdateProductRequest struct {
	Code   string           `json:"code"`
	Name   string           `json:"name"`
	IVA    *decimal.Decimal `json:"iva"`
	Re     *decimal.Decimal `json:"re"`
	Profit *decimal.Decimal `json:"profit"`
}

// UpdatePriceRequest actualización del precio de compra; añade una entrada
// al histórico, nunca sobreescribe.
type UpdatePriceRequest struct {
	Price *float64 `json:"price"`
	Date  *int64   `json:"date"`
}

// PriceChangeResponse entrada del histórico de precios.
type PriceChangeResponse struct {
	Price decimal.Decimal `json:"price"`
	Date  int64           `json:"date"`
}

// ProductResponse producto completo.
type ProductResponse struct {
	ID           string                `json:"_id"`
	Code         string                `json:"code,omitempty"`
	Name         string                `json:"name"`
	Provider     string                `json:"provider"`
	NameProvider string                `json:"nameProvider"`
	IVA          decimal.Decimal       `json:"iva"`
	Re           decimal.Decimal       `json:"re"`
	Profit       decimal.Decimal       `json:"profit"`
	Price        decimal.Decimal       `json:"price"`
	Cost         decimal.Decimal       `json:"cost"`
	Sale         decimal.Decimal       `json:"sale"`
	Prices       []PriceChangeResponse `json:"prices,omitempty"`
}
