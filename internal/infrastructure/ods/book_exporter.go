// Package ods genera el libro de facturas anual como hoja de cálculo
// OpenDocument (ODS): un zip con mimetype, manifest y un content.xml
// construido con etree.
package ods

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/arroyo-erp/arroyo-api/internal/application/invoicing"
	"github.com/arroyo-erp/arroyo-api/internal/domain/entity"
)

const (
	mimetypeODS = "application/vnd.oasis.opendocument.spreadsheet"

	nsOffice   = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	nsTable    = "urn:oasis:names:tc:opendocument:xmlns:table:1.0"
	nsText     = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
	nsManifest = "urn:oasis:names:tc:opendocument:xmlns:manifest:1.0"
)

var _ invoicing.BookExporter = (*BookExporter)(nil)

// BookExporter implementa invoicing.BookExporter.
type BookExporter struct{}

// NewBookExporter construye el exportador.
func NewBookExporter() *BookExporter { return &BookExporter{} }

// InvoiceBook genera el libro de facturas de un año. Las facturas llegan ya
// confirmadas y ordenadas por número de orden ascendente.
func (e *BookExporter) InvoiceBook(year int, invoices []*entity.Invoice) ([]byte, error) {
	content, err := contentXML(year, invoices)
	if err != nil {
		return nil, err
	}
	manifest, err := manifestXML()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	// mimetype debe ser la primera entrada del zip y almacenarse sin comprimir.
	mt, err := w.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return nil, fmt.Errorf("ods: crear mimetype: %w", err)
	}
	if _, err := mt.Write([]byte(mimetypeODS)); err != nil {
		return nil, fmt.Errorf("ods: escribir mimetype: %w", err)
	}

	for _, f := range []struct {
		name string
		data []byte
	}{
		{"META-INF/manifest.xml", manifest},
		{"content.xml", content},
	} {
		entry, err := w.Create(f.name)
		if err != nil {
			return nil, fmt.Errorf("ods: crear %s: %w", f.name, err)
		}
		if _, err := entry.Write(f.data); err != nil {
			return nil, fmt.Errorf("ods: escribir %s: %w", f.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("ods: cerrar zip: %w", err)
	}
	return buf.Bytes(), nil
}

// contentXML construye el content.xml con una tabla "Facturas <año>".
func contentXML(year int, invoices []*entity.Invoice) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("office:document-content")
	root.CreateAttr("xmlns:office", nsOffice)
	root.CreateAttr("xmlns:table", nsTable)
	root.CreateAttr("xmlns:text", nsText)
	root.CreateAttr("office:version", "1.2")

	body := root.CreateElement("office:body")
	spreadsheet := body.CreateElement("office:spreadsheet")
	tbl := spreadsheet.CreateElement("table:table")
	tbl.CreateAttr("table:name", fmt.Sprintf("Facturas %d", year))

	addRow(tbl, "Orden", "Fecha", "N° Factura", "Proveedor", "Concepto",
		"Base imponible", "IVA", "RE", "Total")

	for _, inv := range invoices {
		addRow(tbl,
			fmt.Sprintf("%d", *inv.NOrder),
			formatDate(inv.DateInvoice),
			inv.NInvoice,
			inv.NameProvider,
			inv.Concept,
			inv.Totals.TaxBase.StringFixed(2),
			inv.Totals.IVA.StringFixed(2),
			inv.Totals.Re.StringFixed(2),
			inv.Totals.Total.StringFixed(2),
		)
	}

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("ods: serializar content.xml: %w", err)
	}
	return out, nil
}

// addRow añade una fila de celdas de texto a la tabla.
func addRow(tbl *etree.Element, cells ...string) {
	tr := tbl.CreateElement("table:table-row")
	for _, cell := range cells {
		tc := tr.CreateElement("table:table-cell")
		tc.CreateAttr("office:value-type", "string")
		tc.CreateElement("text:p").SetText(cell)
	}
}

// manifestXML construye el META-INF/manifest.xml mínimo de un ODS.
func manifestXML() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("manifest:manifest")
	root.CreateAttr("xmlns:manifest", nsManifest)
	root.CreateAttr("manifest:version", "1.2")

	for _, entry := range []struct {
		path, media string
	}{
		{"/", mimetypeODS},
		{"content.xml", "text/xml"},
	} {
		fe := root.CreateElement("manifest:file-entry")
		fe.CreateAttr("manifest:full-path", entry.path)
		fe.CreateAttr("manifest:media-type", entry.media)
	}

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("ods: serializar manifest.xml: %w", err)
	}
	return out, nil
}

// formatDate convierte epoch milisegundos a dd/mm/aaaa.
func formatDate(millis int64) string {
	if millis <= 0 {
		return ""
	}
	return time.UnixMilli(millis).UTC().Format("02/01/2006")
}
