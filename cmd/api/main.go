package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/arroyo-erp/arroyo-api/internal/application/auth"
	"github.com/arroyo-erp/arroyo-api/internal/application/clients"
	"github.com/arroyo-erp/arroyo-api/internal/application/deliveryorders"
	"github.com/arroyo-erp/arroyo-api/internal/application/invoicing"
	"github.com/arroyo-erp/arroyo-api/internal/application/payments"
	"github.com/arroyo-erp/arroyo-api/internal/application/products"
	"github.com/arroyo-erp/arroyo-api/internal/application/providers"
	"github.com/arroyo-erp/arroyo-api/internal/infrastructure/ods"
	infrapdf "github.com/arroyo-erp/arroyo-api/internal/infrastructure/pdf"
	"github.com/arroyo-erp/arroyo-api/internal/infrastructure/postgres"
	httpRouter "github.com/arroyo-erp/arroyo-api/internal/interfaces/http"
	"github.com/arroyo-erp/arroyo-api/pkg/config"
	"github.com/arroyo-erp/arroyo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	providerRepo := postgres.NewProviderRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	doRepo := postgres.NewDeliveryOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	clientInvoiceRepo := postgres.NewClientInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	billingRepo := postgres.NewBillingRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	bookExporter := ods.NewBookExporter()
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	providerUC := providers.NewUseCase(providerRepo)
	productUC := products.NewUseCase(productRepo, providerRepo)
	deliveryOrderUC := deliveryorders.NewUseCase(doRepo, providerRepo, productRepo)
	invoicingUC := invoicing.NewUseCase(
		txRunner, invoiceRepo, doRepo, providerRepo, paymentRepo,
		bookExporter, pdfGenerator,
	)
	paymentUC := payments.NewUseCase(paymentRepo, invoiceRepo)
	clientUC := clients.NewUseCase(txRunner, clientRepo, clientInvoiceRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Arroyo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ProviderUC:      providerUC,
		ProductUC:       productUC,
		DeliveryOrderUC: deliveryOrderUC,
		InvoicingUC:     invoicingUC,
		PaymentUC:       paymentUC,
		ClientUC:        clientUC,
		BillingRepo:     billingRepo,
		InvoiceRepo:     invoiceRepo,
		ProviderRepo:    providerRepo,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
