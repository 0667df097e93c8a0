package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arroyo-erp/arroyo-api/internal/application/auth"
	"github.com/arroyo-erp/arroyo-api/internal/application/clients"
	"github.com/arroyo-erp/arroyo-api/internal/application/deliveryorders"
	"github.com/arroyo-erp/arroyo-api/internal/application/invoicing"
	"github.com/arroyo-erp/arroyo-api/internal/application/payments"
	"github.com/arroyo-erp/arroyo-api/internal/application/products"
	"github.com/arroyo-erp/arroyo-api/internal/application/providers"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.UseCase
	ProviderUC      *providers.UseCase
	ProductUC       *products.UseCase
	DeliveryOrderUC *deliveryorders.UseCase
	InvoicingUC     *invoicing.UseCase
	PaymentUC       *payments.UseCase
	ClientUC        *clients.UseCase
	BillingRepo     repository.BillingRepository
	InvoiceRepo     repository.InvoiceRepository
	ProviderRepo    repository.ProviderRepository
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Providers
	providersGroup := protected.Group("/providers")
	providerHandler := NewProviderHandler(deps.ProviderUC)
	providersGroup.Post("/", providerHandler.Create)
	providersGroup.Get("/", providerHandler.List)
	providersGroup.Get("/:id", providerHandler.GetByID)
	providersGroup.Put("/:id", providerHandler.Update)

	// Products
	productsGroup := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	productsGroup.Post("/", productHandler.Create)
	productsGroup.Get("/", productHandler.List)
	productsGroup.Get("/:id", productHandler.GetByID)
	productsGroup.Put("/:id", productHandler.Update)
	productsGroup.Put("/:id/price", productHandler.UpdatePrice)

	// Delivery orders (albaranes)
	ordersGroup := protected.Group("/deliveryorders")
	orderHandler := NewDeliveryOrderHandler(deps.DeliveryOrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/count-free", orderHandler.CountFree)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Delete("/:id", orderHandler.Delete)
	ordersGroup.Post("/:id/products", orderHandler.AddProduct)
	ordersGroup.Put("/:id/products/:lineId", orderHandler.UpdateProduct)
	ordersGroup.Delete("/:id/products/:lineId", orderHandler.DeleteProduct)

	// Invoices (facturas de proveedor)
	invoicesGroup := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoicingUC)
	invoicesGroup.Post("/", invoiceHandler.Create)
	invoicesGroup.Post("/expense", invoiceHandler.CreateExpense)
	invoicesGroup.Post("/swap", invoiceHandler.Swap)
	invoicesGroup.Get("/", invoiceHandler.List)
	invoicesGroup.Get("/export/:year", invoiceHandler.ExportBook)
	invoicesGroup.Get("/:id", invoiceHandler.GetByID)
	invoicesGroup.Get("/:id/pdf", invoiceHandler.ExportPDF)
	invoicesGroup.Patch("/:id", invoiceHandler.Edit)
	invoicesGroup.Patch("/:id/confirm", invoiceHandler.Confirm)
	invoicesGroup.Patch("/:id/refresh", invoiceHandler.Refresh)
	invoicesGroup.Delete("/:id", invoiceHandler.Delete)

	// Payments
	paymentsGroup := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	paymentsGroup.Get("/", paymentHandler.List)
	paymentsGroup.Post("/merge", paymentHandler.Merge)
	paymentsGroup.Post("/:id/divide", paymentHandler.Divide)
	paymentsGroup.Patch("/:id/confirm", paymentHandler.Confirm)
	paymentsGroup.Delete("/:id", paymentHandler.Remove)

	// Clients y sus facturas
	clientHandler := NewClientHandler(deps.ClientUC)
	clientsGroup := protected.Group("/clients")
	clientsGroup.Post("/", clientHandler.Create)
	clientsGroup.Get("/", clientHandler.List)
	clientsGroup.Put("/:id", clientHandler.Update)

	clientInvoices := protected.Group("/client-invoices")
	clientInvoices.Post("/", clientHandler.CreateInvoice)
	clientInvoices.Get("/", clientHandler.ListInvoices)
	clientInvoices.Patch("/:id", clientHandler.EditInvoice)
	clientInvoices.Patch("/:id/confirm", clientHandler.ConfirmInvoice)
	clientInvoices.Delete("/:id", clientHandler.DeleteInvoice)

	// Billing anual por proveedor
	billingsGroup := protected.Group("/billings")
	billingHandler := NewBillingHandler(deps.BillingRepo, deps.InvoiceRepo, deps.ProviderRepo)
	billingsGroup.Get("/", billingHandler.List)
	billingsGroup.Post("/refresh", billingHandler.Refresh)
}
