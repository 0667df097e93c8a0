package dto

import "github.com/shopspring/decimal"

// ConfirmPaymentRequest confirmación de la realización de un pago.
type ConfirmPaymentRequest struct {
	PaymentDate int64  `json:"paymentDate"`
	Type        string `json:"type"`
	NumCheque   string `json:"numCheque"`
}

// MergePaymentsRequest fusión de dos o más pagos en uno.
type MergePaymentsRequest struct {
	Payments []string `json:"payments"`
}

// PaymentResponse pago canónico.
type PaymentResponse struct {
	ID           string          `json:"_id"`
	Provider     string          `json:"provider"`
	NameProvider string          `json:"nameProvider"`
	PaymentDate  int64           `json:"paymentDate,omitempty"`
	Type         string          `json:"type"`
	NumCheque    string          `json:"numCheque,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Paid         bool            `json:"paid"`
	Invoices     []string        `json:"invoices"`
	NOrder       string          `json:"nOrder,omitempty"`
}
