package dto

import "github.com/shopspring/decimal"

// CreateDeliveryOrderRequest alta de albarán (vacío, contra un proveedor).
type CreateDeliveryOrderRequest struct {
	Provider string `json:"provider"`
	Date     int64  `json:"date"`
	Note     string `json:"note"`
}

// UpdateDeliveryOrderRequest edición de campos del albarán.
type UpdateDeliveryOrderRequest struct {
	Date *int64  `json:"date"`
	Note *string `json:"note"`
}

// DeliveryOrderProductRequest alta o edición de una línea de producto.
type DeliveryOrderProductRequest struct {
	Product  string   `json:"product"`
	Price    *float64 `json:"price"`
	Quantity *float64 `json:"quantity"`
}

// TotalsResponse importes agregados.
type TotalsResponse struct {
	TaxBase decimal.Decimal `json:"taxBase"`
	IVA     decimal.Decimal `json:"iva"`
	Re      decimal.Decimal `json:"re"`
	Total   decimal.Decimal `json:"total"`
	Rate    decimal.Decimal `json:"rate,omitempty"`
}

// DeliveryOrderProductResponse línea de producto de un albarán.
type DeliveryOrderProductResponse struct {
	ID       string          `json:"_id"`
	Product  string          `json:"product"`
	Code     string          `json:"code,omitempty"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	IVA      decimal.Decimal `json:"iva"`
	Re       decimal.Decimal `json:"re"`
	TaxBase  decimal.Decimal `json:"taxBase"`
	Total    decimal.Decimal `json:"total"`
}

// DeliveryOrderResponse albarán completo (respuesta estándar).
type DeliveryOrderResponse struct {
	ID           string                         `json:"_id"`
	Provider     string                         `json:"provider"`
	NameProvider string                         `json:"nameProvider"`
	Date         int64                          `json:"date"`
	Note         string                         `json:"note,omitempty"`
	Products     []DeliveryOrderProductResponse `json:"products"`
	Totals       TotalsResponse                 `json:"totals"`
	Invoice      *string                        `json:"invoice,omitempty"`
	NOrder       *int                           `json:"nOrder,omitempty"`
}

// DeliveryOrderShortResponse entrada de albarán facturado en listados.
type DeliveryOrderShortResponse struct {
	ID     string          `json:"_id"`
	Date   int64           `json:"date"`
	Total  decimal.Decimal `json:"total"`
	NOrder *int            `json:"nOrder,omitempty"`
}

// InInvoicesResponse bloque de albaranes ya facturados.
type InInvoicesResponse struct {
	Count int                          `json:"count"`
	Data  []DeliveryOrderShortResponse `json:"data"`
}

// OrdersResponse listado de albaranes de un proveedor: libres y facturados.
type OrdersResponse struct {
	Free       []DeliveryOrderResponse `json:"free"`
	InInvoices InInvoicesResponse      `json:"inInvoices"`
}
