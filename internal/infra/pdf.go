package infra

// pdf.go — estado-de-cuenta (payment statement) generation using go-pdf/fpdf.
// One A4 page per venta with:
//   - Development / prototype / unit header
//   - Buyer list with ownership share
//   - Registered payment table (date, method, amount)
//   - Paid total, sale price, and progress percentage
//
// The output file is saved to storagePath/estado_cuenta_{ventaID}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gomzkevin/airprop-saas/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateEstadoCuentaPDF renders the payment statement for a venta.
// The venta must come preloaded with Unidad.Prototipo.Desarrollo and
// Compradores.Comprador / Compradores.Pagos.
// Returns the absolute path to the generated file.
func GenerateEstadoCuentaPDF(venta *model.Venta, montoPagado decimal.Decimal, progreso int, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("estado_cuenta_%s.pdf", venta.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Estado de Cuenta", "", 1, "C", false, 0, "")

	desarrollo, prototipo, numero := "", "", ""
	if venta.Unidad != nil {
		numero = venta.Unidad.Numero
		if venta.Unidad.Prototipo != nil {
			prototipo = venta.Unidad.Prototipo.Nombre
			if venta.Unidad.Prototipo.Desarrollo != nil {
				desarrollo = venta.Unidad.Prototipo.Desarrollo.Nombre
			}
		}
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("%s — %s, Unidad %s", desarrollo, prototipo, numero), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, venta.FechaActualizacion.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Compradores ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Compradores", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, cv := range venta.Compradores {
		nombre := ""
		if cv.Comprador != nil {
			nombre = cv.Comprador.Nombre
		}
		pdf.CellFormat(contentW*0.7, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, 5, cv.Porcentaje.StringFixed(0)+"%", "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Pagos registrados ────────────────────────────────────────────────────
	col1 := contentW * 0.3
	col2 := contentW * 0.35
	col3 := contentW * 0.35

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Fecha", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Método", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Monto", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, cv := range venta.Compradores {
		for _, pago := range cv.Pagos {
			if pago.Estado != model.PagoRegistrado {
				continue
			}
			metodo := "-"
			if pago.Metodo != nil {
				metodo = *pago.Metodo
			}
			pdf.CellFormat(col1, 5, pago.FechaPago.Format("02/01/2006"), "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 5, metodo, "", 0, "L", false, 0, "")
			pdf.CellFormat(col3, 5, "$"+pago.Monto.StringFixed(2), "", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2, 7, "Pagado:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "$"+montoPagado.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 7, "Precio total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "$"+venta.PrecioTotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 7, "Avance:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, fmt.Sprintf("%d%%", progreso), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
