package entity

// Conceptos de factura de proveedor.
const (
	ConceptCompras   = "Compras"
	ConceptAlquiler  = "Alquiler"
	ConceptGastos    = "Gastos"
	ConceptSuministr = "Suministros"
)

// PaymentSnapshot proyección de solo lectura del pago canónico embebida en
// la factura. Se refresca de forma síncrona en cada mutación del pago; el
// registro autoritativo vive en la colección de pagos.
type PaymentSnapshot struct {
	PaymentID   string
	PaymentDate int64
	Type        string
	NumCheque   string
	Paid        bool
}

// Invoice representa una factura de proveedor: o bien la agregación de uno o
// más albaranes, o bien un gasto directo sin albaranes.
//
// Las dos formas son variantes mutuamente excluyentes: con albaranes los
// totales se calculan siempre agregando sus importes; sin albaranes los
// totales los aporta el caller y deben ser internamente consistentes.
//
// Ciclo de vida: se crea en borrador (sin DateInvoice obligatoria y sin
// NOrder); la confirmación exige fecha de factura y tipo de pago, asigna el
// NOrder secuencial de su ámbito y crea el pago. NOrder se asigna exactamente
// una vez y el conjunto de NOrder asignados es denso {1..K}.
type Invoice struct {
	ID             string
	Provider       string
	NameProvider   string
	Concept        string
	NInvoice       string // número de factura del proveedor, texto libre
	DeliveryOrders []string
	Totals         Totals
	DateRegister   int64 // epoch milisegundos
	DateInvoice    int64 // 0 hasta que se edita; requisito para confirmar
	NOrder         *int  // nil hasta la confirmación
	Payment        PaymentSnapshot
}

// Confirmed indica si la factura ya tiene número de orden asignado.
func (i *Invoice) Confirmed() bool {
	return i.NOrder != nil
}

// Aggregated indica si la factura agrega albaranes (frente a gasto directo).
func (i *Invoice) Aggregated() bool {
	return len(i.DeliveryOrders) > 0
}
