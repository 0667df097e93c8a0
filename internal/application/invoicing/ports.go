package invoicing

import (
	"context"

	"github.com/arroyo-erp/arroyo-api/internal/application/numbering"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// TxRunner ejecuta una función con todos los repositorios de facturación
// atados a una misma transacción. Confirmar, eliminar e intercambiar deben
// ser atómicos de cara al caller: la densidad de nOrder solo puede romperse
// de forma transitoria dentro de la transacción.
type TxRunner interface {
	RunInvoicing(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		doRepo repository.DeliveryOrderRepository,
		paymentRepo repository.PaymentRepository,
		billingRepo repository.BillingRepository,
		seqRepo numbering.Repository,
	) error) error
}

// BookExporter genera el libro de facturas de un año (hoja de cálculo ODS).
type BookExporter interface {
	InvoiceBook(year int, invoices []*entity.Invoice) ([]byte, error)
}

// PDFGenerator genera la representación en PDF de una factura.
type PDFGenerator interface {
	GenerateInvoicePDF(invoice *entity.Invoice, provider *entity.Provider, orders []*entity.DeliveryOrder) ([]byte, error)
}
