package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
	"github.com/arroyo-erp/arroyo-api/internal/application/payments"
)

// PaymentHandler maneja las peticiones HTTP para pagos (protegido).
type PaymentHandler struct {
	uc *payments.UseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payments.UseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// List godoc
// @Summary      Listar pagos pendientes
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PaymentResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.FindUnpaid(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar pago: marca pagado y propaga a sus facturas
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del pago"
// @Param        body  body  dto.ConfirmPaymentRequest  true  "Fecha, tipo y talón"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/confirm [patch]
func (h *PaymentHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Confirm(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Remove godoc
// @Summary      Eliminar pago: limpia el snapshot de sus facturas
// @Tags         payments
// @Security     Bearer
// @Param        id  path  string  true  "ID del pago"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [delete]
func (h *PaymentHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Merge godoc
// @Summary      Fusionar dos o más pagos en uno
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MergePaymentsRequest  true  "IDs de los pagos"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payments/merge [post]
func (h *PaymentHandler) Merge(c *fiber.Ctx) error {
	var in dto.MergePaymentsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Merge(c.UserContext(), in.Payments)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Divide godoc
// @Summary      Dividir un pago conjunto en un pago por factura
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pago"
// @Success      200  {array}  dto.PaymentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/divide [post]
func (h *PaymentHandler) Divide(c *fiber.Ctx) error {
	out, err := h.uc.Divide(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
