package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los mensajes replican los
// textos que la API devuelve al frontend.
var (
	// Familia NotFound: el identificador referenciado no existe.
	ErrProviderNotFound      = errors.New("no se ha encontrado el proveedor")
	ErrClientNotFound        = errors.New("no se ha encontrado el cliente")
	ErrInvoiceNotFound       = errors.New("no existe la factura")
	ErrDeliveryOrderNotFound = errors.New("no existe el albarán")
	ErrProductNotFound       = errors.New("no existe el producto")
	ErrPaymentNotFound       = errors.New("no existe el pago")
	ErrUserNotFound          = errors.New("usuario no encontrado")

	// Parámetros ausentes o mal formados en una llamada de mutación.
	ErrParamsMissing = errors.New("faltan campos")
	ErrParamNotValid = errors.New("parámetro inválido")

	// Fechas: un campo fecha es válido sii es un timestamp finito en milisegundos.
	ErrDateNotValid = errors.New("la fecha no es válida")

	// Familia NoRemovable: el estado del registro impide el borrado.
	ErrInvoiceNoRemovable       = errors.New("la factura no se puede eliminar")
	ErrDeliveryOrderNoRemovable = errors.New("el albarán no se puede eliminar")

	// Un albarán pertenece como mucho a una factura: vincularlo dos veces
	// es un error del caller, nunca un repunteo silencioso.
	ErrDeliveryOrderInvoiced = errors.New("el albarán ya pertenece a una factura")

	// Swap/confirmación sobre registros sin el estado previo requerido.
	ErrNotConfirmed = errors.New("la factura no está confirmada")

	// Productos de catálogo.
	ErrProductMissingParams = errors.New("faltan campos del producto")
	ErrProductMissingUpdate = errors.New("falta el precio o el coste del producto")
	ErrProductCodeExists    = errors.New("el código de producto ya existe")

	// Importes monetarios: NaN o infinito es una violación de contrato del caller.
	ErrInvalidAmount = errors.New("importe no válido")

	// Autenticación.
	ErrUnauthorized       = errors.New("no autorizado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)
