package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest alta de factura agregando albaranes.
// Las dos formas son excluyentes: con DeliveryOrders los totales se calculan;
// sin ellos hay que aportar Totals (factura de gasto directo).
type CreateInvoiceRequest struct {
	Provider       string          `json:"provider"`
	Concept        string          `json:"concept"`
	DeliveryOrders []string        `json:"deliveryOrders"`
	Totals         *TotalsResponse `json:"totals"`
}

// CreateExpenseRequest alta directa de factura de gasto: iva y re son tasas
// que se aplican sobre la base imponible.
type CreateExpenseRequest struct {
	Provider     string   `json:"provider"`
	Concept      string   `json:"concept"`
	NInvoice     string   `json:"nInvoice"`
	DateRegister int64    `json:"dateRegister"`
	DateInvoice  int64    `json:"dateInvoice"`
	TaxBase      *float64 `json:"taxBase"`
	IVA          *float64 `json:"iva"`
	Re           *float64 `json:"re"`
	PaymentType  string   `json:"type"`
	PaymentDate  int64    `json:"paymentDate"`
}

// InvoiceDataRequest campos de datos editables de la factura.
type InvoiceDataRequest struct {
	NInvoice     *string `json:"nInvoice"`
	DateRegister *int64  `json:"dateRegister"`
	DateInvoice  *int64  `json:"dateInvoice"`
	Concept      *string `json:"concept"`
}

// EditInvoiceRequest edición de datos y/o totales; al menos uno presente.
type EditInvoiceRequest struct {
	Data   *InvoiceDataRequest `json:"data"`
	Totals *TotalsResponse     `json:"totals"`
}

// ConfirmInvoiceRequest confirmación: el tipo de pago es obligatorio, la
// fecha de factura debe existir de una edición previa.
type ConfirmInvoiceRequest struct {
	Type        string `json:"type"`
	PaymentDate int64  `json:"paymentDate"`
}

// PaymentSnapshotResponse proyección del pago embebida en la factura.
type PaymentSnapshotResponse struct {
	PaymentID   string `json:"payment,omitempty"`
	PaymentDate int64  `json:"paymentDate,omitempty"`
	Type        string `json:"type,omitempty"`
	NumCheque   string `json:"numCheque,omitempty"`
	Paid        bool   `json:"paid"`
}

// InvoiceResponse factura completa.
type InvoiceResponse struct {
	ID             string                   `json:"_id"`
	Provider       string                   `json:"provider"`
	NameProvider   string                   `json:"nameProvider"`
	Concept        string                   `json:"concept"`
	NInvoice       string                   `json:"nInvoice,omitempty"`
	DeliveryOrders []DeliveryOrderResponse  `json:"deliveryOrders,omitempty"`
	Totals         TotalsResponse           `json:"totals"`
	DateRegister   int64                    `json:"dateRegister"`
	DateInvoice    int64                    `json:"dateInvoice,omitempty"`
	NOrder         *int                     `json:"nOrder,omitempty"`
	Payment        *PaymentSnapshotResponse `json:"payment,omitempty"`
}

// InvoiceShortResponse entrada de listado de facturas.
type InvoiceShortResponse struct {
	ID           string          `json:"_id"`
	NOrder       *int            `json:"nOrder,omitempty"`
	NInvoice     string          `json:"nInvoice,omitempty"`
	NameProvider string          `json:"nameProvider"`
	Concept      string          `json:"concept"`
	DateInvoice  int64           `json:"dateInvoice,omitempty"`
	Total        decimal.Decimal `json:"total"`
	Paid         bool            `json:"paid"`
}

// SwapRequest intercambio de nOrder entre dos facturas confirmadas.
type SwapRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}
