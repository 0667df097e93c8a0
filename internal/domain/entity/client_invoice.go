package entity

// ClientInvoice representa una factura emitida a un cliente.
// Su NOrder vive en un ámbito de numeración propio, independiente del de las
// facturas de proveedor: los contadores nunca se comparten.
type ClientInvoice struct {
	ID         string
	Client     string
	NameClient string
	Date       int64 // epoch milisegundos
	Totals     Totals
	NOrder     *int
	Paid       bool
}

// Confirmed indica si la factura de cliente ya tiene número asignado.
func (c *ClientInvoice) Confirmed() bool {
	return c.NOrder != nil
}
