package dto

import "github.com/shopspring/decimal"

// ClientRequest alta o edición de cliente.
type ClientRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Province   string `json:"province"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Note       string `json:"note"`
}

// ClientResponse cliente completo.
type ClientResponse struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Province   string `json:"province,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Note       string `json:"note,omitempty"`
}

// CreateClientInvoiceRequest alta de factura de cliente (en borrador).
type CreateClientInvoiceRequest struct {
	Client string          `json:"client"`
	Date   int64           `json:"date"`
	Totals *TotalsResponse `json:"totals"`
}

// EditClientInvoiceRequest edición de datos y/o totales.
type EditClientInvoiceRequest struct {
	Date   *int64          `json:"date"`
	Totals *TotalsResponse `json:"totals"`
}

// ClientInvoiceResponse factura de cliente.
type ClientInvoiceResponse struct {
	ID         string          `json:"_id"`
	Client     string          `json:"client"`
	NameClient string          `json:"nameClient"`
	Date       int64           `json:"date,omitempty"`
	NOrder     *int            `json:"nOrder,omitempty"`
	Total      decimal.Decimal `json:"total"`
	TaxBase    decimal.Decimal `json:"taxBase"`
	IVA        decimal.Decimal `json:"iva"`
	Paid       bool            `json:"paid"`
}
