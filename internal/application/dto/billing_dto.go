package dto

import "github.com/shopspring/decimal"

// BillingResponse agregado anual de facturación de un proveedor.
type BillingResponse struct {
	ID           string             `json:"_id"`
	Provider     string             `json:"provider"`
	NameProvider string             `json:"nameProvider"`
	Year         int                `json:"year"`
	Annual       decimal.Decimal    `json:"annual"`
	Trimesters   [4]decimal.Decimal `json:"trimesters"`
}
