package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arroyo-erp/arroyo-api/internal/application/billing"
	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
	"github.com/arroyo-erp/arroyo-api/internal/domain/repository"
)

// BillingHandler maneja las peticiones HTTP del agregado anual de facturación (protegido).
type BillingHandler struct {
	repo         repository.BillingRepository
	invoiceRepo  repository.InvoiceRepository
	providerRepo repository.ProviderRepository
}

// NewBillingHandler construye el handler.
func NewBillingHandler(
	repo repository.BillingRepository,
	invoiceRepo repository.InvoiceRepository,
	providerRepo repository.ProviderRepository,
) *BillingHandler {
	return &BillingHandler{repo: repo, invoiceRepo: invoiceRepo, providerRepo: providerRepo}
}

// List godoc
// @Summary      Listar la facturación anual por proveedor de un año
// @Tags         billings
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  true  "Año natural"
// @Success      200   {array}  dto.BillingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/billings [get]
func (h *BillingHandler) List(c *fiber.Ctx) error {
	year := c.QueryInt("year", 0)
	if year <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year es requerido"})
	}
	out, err := billing.ByYear(c.UserContext(), h.repo, year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Recalcular la facturación anual de un proveedor desde sus facturas
// @Tags         billings
// @Security     Bearer
// @Produce      json
// @Param        provider  query  string  true  "ID del proveedor"
// @Param        year      query  int     true  "Año natural"
// @Success      200  {array}  dto.BillingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billings/refresh [post]
func (h *BillingHandler) Refresh(c *fiber.Ctx) error {
	providerID := c.Query("provider")
	year := c.QueryInt("year", 0)
	if providerID == "" || year <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "provider y year son requeridos"})
	}
	provider, err := h.providerRepo.GetByID(c.UserContext(), providerID)
	if err != nil {
		return respondError(c, err)
	}
	if provider == nil {
		return respondError(c, domain.ErrProviderNotFound)
	}
	if err := billing.Refresh(c.UserContext(), h.repo, h.invoiceRepo, provider.ID, provider.Name, year); err != nil {
		return respondError(c, err)
	}
	out, err := billing.ByYear(c.UserContext(), h.repo, year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
