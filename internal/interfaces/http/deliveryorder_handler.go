package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arroyo-erp/arroyo-api/internal/application/deliveryorders"
	"github.com/arroyo-erp/arroyo-api/internal/application/dto"
)

// DeliveryOrderHandler maneja las peticiones HTTP para albaranes (protegido).
type DeliveryOrderHandler struct {
	uc *deliveryorders.UseCase
}

// NewDeliveryOrderHandler construye el handler.
func NewDeliveryOrderHandler(uc *deliveryorders.UseCase) *DeliveryOrderHandler {
	return &DeliveryOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear albarán
// @Tags         deliveryorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryOrderRequest  true  "Datos del albarán"
// @Success      201   {object}  dto.DeliveryOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliveryorders [post]
func (h *DeliveryOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener albarán por ID
// @Tags         deliveryorders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del albarán"
// @Success      200  {object}  dto.DeliveryOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveryorders/{id} [get]
func (h *DeliveryOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar albarán (fecha y nota)
// @Tags         deliveryorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del albarán"
// @Param        body  body  dto.UpdateDeliveryOrderRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.DeliveryOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliveryorders/{id} [put]
func (h *DeliveryOrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDeliveryOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar albarán (solo si no está facturado)
// @Tags         deliveryorders
// @Security     Bearer
// @Param        id  path  string  true  "ID del albarán"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveryorders/{id} [delete]
func (h *DeliveryOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddProduct godoc
// @Summary      Añadir línea de producto al albarán
// @Tags         deliveryorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del albarán"
// @Param        body  body  dto.DeliveryOrderProductRequest  true  "Línea"
// @Success      200   {object}  dto.DeliveryOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliveryorders/{id}/products [post]
func (h *DeliveryOrderHandler) AddProduct(c *fiber.Ctx) error {
	var in dto.DeliveryOrderProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddProduct(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateProduct godoc
// @Summary      Actualizar línea de producto del albarán
// @Tags         deliveryorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID del albarán"
// @Param        lineId  path  string  true  "ID de la línea"
// @Param        body    body  dto.DeliveryOrderProductRequest  true  "Línea"
// @Success      200     {object}  dto.DeliveryOrderResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/deliveryorders/{id}/products/{lineId} [put]
func (h *DeliveryOrderHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.DeliveryOrderProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateProduct(c.UserContext(), c.Params("id"), c.Params("lineId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteProduct godoc
// @Summary      Eliminar línea de producto del albarán
// @Tags         deliveryorders
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del albarán"
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      200     {object}  dto.DeliveryOrderResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/deliveryorders/{id}/products/{lineId} [delete]
func (h *DeliveryOrderHandler) DeleteProduct(c *fiber.Ctx) error {
	out, err := h.uc.DeleteProduct(c.UserContext(), c.Params("id"), c.Params("lineId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar albaranes de un proveedor (libres y facturados)
// @Tags         deliveryorders
// @Security     Bearer
// @Produce      json
// @Param        provider  query  string  true   "ID del proveedor"
// @Param        limit     query  int     false  "Límite de facturados"
// @Param        offset    query  int     false  "Offset de facturados"
// @Success      200       {object}  dto.OrdersResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/deliveryorders [get]
func (h *DeliveryOrderHandler) List(c *fiber.Ctx) error {
	provider := c.Query("provider")
	if provider == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "provider es requerido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.Orders(c.UserContext(), provider, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CountFree godoc
// @Summary      Contar albaranes sin facturar de un proveedor
// @Tags         deliveryorders
// @Security     Bearer
// @Produce      json
// @Param        provider  query  string  true  "ID del proveedor"
// @Success      200       {object}  map[string]int
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/deliveryorders/count-free [get]
func (h *DeliveryOrderHandler) CountFree(c *fiber.Ctx) error {
	provider := c.Query("provider")
	if provider == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "provider es requerido"})
	}
	count, err := h.uc.CountFree(c.UserContext(), provider)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}
