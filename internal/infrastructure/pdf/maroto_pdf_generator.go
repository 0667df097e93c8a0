// Package pdf implementa la representación imprimible de una factura de
// proveedor usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre proveedor + CIF  │  N° Orden + Fechas       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Dirección / Tel / Email                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Albarán | Base | IVA | RE | Total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Base imponible / IVA / RE / TOTAL                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PAGO: Tipo + fecha + estado                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/arroyo-erp/arroyo-api/internal/application/invoicing"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ invoicing.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa invoicing.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	invoice *entity.Invoice,
	provider *entity.Provider,
	orders []*entity.DeliveryOrder,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+invoice.NInvoice, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, provider))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(providerRow(provider))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(orders) > 0 {
		m.AddRows(tableHeaderRow())
		for _, r := range tableOrderRows(orders) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(totalsRow(invoice))
	m.AddRows(line.NewRow(3))
	m.AddRows(paymentRow(invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del proveedor + CIF (izq) y nOrder + fechas (der).
func headerRow(invoice *entity.Invoice, provider *entity.Provider) core.Row {
	nOrder := "BORRADOR"
	if invoice.NOrder != nil {
		nOrder = fmt.Sprintf("N° %d", *invoice.NOrder)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(provider.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CIF: "+nonEmpty(provider.CIF, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA "+nonEmpty(invoice.NInvoice, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(nOrder, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+formatDate(invoice.DateInvoice), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// providerRow: datos de contacto del proveedor.
func providerRow(provider *entity.Provider) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(provider.Address, "—"),
				nonEmpty(provider.Phone, "—"),
				nonEmpty(provider.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de albaranes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Albarán", 3, align.Left),
		h("Base", 2, align.Right),
		h("IVA", 2, align.Right),
		h("RE", 1, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableOrderRows: una fila por albarán agregado.
func tableOrderRows(orders []*entity.DeliveryOrder) []core.Row {
	result := make([]core.Row, 0, len(orders))
	for _, o := range orders {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				formatDate(o.Date),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				o.ID,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				o.Totals.TaxBase.StringFixed(2)+" €",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				o.Totals.IVA.StringFixed(2)+" €",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				o.Totals.Re.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				o.Totals.Total.StringFixed(2)+" €",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(32).Add(
		col.New(3),
		col.New(3).Add(
			label("Base imponible:"),
			label("IVA:"),
			label("Recargo equiv.:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value(invoice.Totals.TaxBase.StringFixed(2)+" €"),
			value(invoice.Totals.IVA.StringFixed(2)+" €"),
			value(invoice.Totals.Re.StringFixed(2)+" €"),
			grandValue(invoice.Totals.Total.StringFixed(2)+" €"),
		),
		col.New(3),
	)
}

// paymentRow: tipo de pago y estado, si la factura tiene pago asociado.
func paymentRow(invoice *entity.Invoice) core.Row {
	if invoice.Payment == (entity.PaymentSnapshot{}) {
		return row.New(6).Add(col.New(12).Add(
			text.New("Factura sin pago asociado", props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		))
	}
	estado := "PENDIENTE"
	if invoice.Payment.Paid {
		estado = "PAGADA"
	}
	detalle := fmt.Sprintf("Forma de pago: %s   |   Fecha: %s",
		invoice.Payment.Type, formatDate(invoice.Payment.PaymentDate))
	if invoice.Payment.NumCheque != "" {
		detalle += "   |   Talón: " + invoice.Payment.NumCheque
	}
	return row.New(12).Add(
		col.New(9).Add(
			text.New("PAGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(detalle, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
		col.New(3).Add(
			text.New(estado, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 4,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatDate convierte epoch milisegundos a dd/mm/aaaa ("—" si no hay fecha).
func formatDate(millis int64) string {
	if millis <= 0 {
		return "—"
	}
	return time.UnixMilli(millis).UTC().Format("02/01/2006")
}
