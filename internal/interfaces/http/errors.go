package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
	"github.com/arroyo-erp/arroyo-api/internal/domain"
)

// statusFor mapea los errores de dominio a códigos HTTP.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrProviderNotFound),
		errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrInvoiceNotFound),
		errors.Is(err, domain.ErrDeliveryOrderNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDateNotValid):
		return fiber.StatusUnprocessableEntity, "DATE_NOT_VALID"
	case errors.Is(err, domain.ErrParamsMissing),
		errors.Is(err, domain.ErrParamNotValid),
		errors.Is(err, domain.ErrInvoiceNoRemovable),
		errors.Is(err, domain.ErrDeliveryOrderNoRemovable),
		errors.Is(err, domain.ErrDeliveryOrderInvoiced),
		errors.Is(err, domain.ErrNotConfirmed),
		errors.Is(err, domain.ErrProductMissingParams),
		errors.Is(err, domain.ErrProductMissingUpdate),
		errors.Is(err, domain.ErrInvalidAmount):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrProductCodeExists),
		errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// respondError responde el error con su código HTTP y cuerpo estándar.
func respondError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
