package infra

// pdf.go — closure report generation using go-pdf/fpdf.
// Produces an A4 summary of one register cycle: totals, per-method
// breakdown, per-product aggregates and the expense list.
// The output file is saved to storagePath/cierre_{fecha}_{hora}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZekuMG/rebu-cotillon-system/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateCierrePDF renders the closure report to disk and returns the
// absolute path of the generated file.
func GenerateCierrePDF(cierre *model.CierreCaja, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cierre_%s_%s.pdf",
		cierre.Fecha, strings.ReplaceAll(cierre.HoraCierre, ":", ""))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Cierre de Caja", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6,
		fmt.Sprintf("%s  ·  %s a %s  ·  %s (%s)",
			cierre.Fecha, cierre.HoraApertura, cierre.HoraCierre,
			cierre.UsuarioNombre, cierre.Tipo),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Totals ───────────────────────────────────────────────────────────────
	line := func(label string, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(contentW*0.6, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 6, value, "", 1, "R", false, 0, "")
	}

	line("Monto de apertura", "$"+cierre.MontoApertura.StringFixed(2), false)
	line(fmt.Sprintf("Ventas (%d)", cierre.CantidadVentas), "$"+cierre.TotalVentas.StringFixed(2), false)
	line("Gastos", "-$"+cierre.TotalGastos.StringFixed(2), false)
	line("Saldo final en caja", "$"+cierre.SaldoFinal.StringFixed(2), true)
	line("Costo de mercadería", "$"+cierre.CostoTotal.StringFixed(2), false)
	line("Ganancia neta", "$"+cierre.GananciaNeta.StringFixed(2), true)
	line("Ticket promedio", "$"+cierre.TicketPromedio.StringFixed(2), false)
	pdf.Ln(4)

	// ── Payment methods ──────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Ventas por método de pago", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, metodo := range []string{
		model.MetodoEfectivo, model.MetodoDebito, model.MetodoCredito,
		model.MetodoMercadoPago, model.MetodoOtros,
	} {
		monto, ok := cierre.ResumenMetodos[metodo]
		if !ok {
			continue
		}
		line(metodo, "$"+monto.StringFixed(2), false)
	}
	pdf.Ln(4)

	// ── Items ────────────────────────────────────────────────────────────────
	if len(cierre.ItemsVendidos) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, "Productos vendidos", "B", 1, "L", false, 0, "")

		col1 := contentW * 0.50
		col2 := contentW * 0.14
		col3 := contentW * 0.18
		col4 := contentW * 0.18

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(col1, 6, "Producto", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "Cant", "B", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "Ingreso", "B", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "Costo", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, item := range cierre.ItemsVendidos {
			titulo := item.Titulo
			if len(titulo) > 45 {
				titulo = titulo[:44] + "…"
			}
			pdf.CellFormat(col1, 6, titulo, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
			pdf.CellFormat(col3, 6, "$"+item.Ingreso.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(col4, 6, "$"+item.Costo.StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	// ── Expenses ─────────────────────────────────────────────────────────────
	if len(cierre.GastosSnapshot) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, "Gastos del ciclo", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, g := range cierre.GastosSnapshot {
			pdf.CellFormat(contentW*0.6, 6,
				fmt.Sprintf("%s (%s)", g.Descripcion, g.MetodoPago), "", 0, "L", false, 0, "")
			pdf.CellFormat(contentW*0.4, 6, "-$"+g.Monto.StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	// ── New members ──────────────────────────────────────────────────────────
	if len(cierre.NuevosSocios) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, "Socios nuevos", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, s := range cierre.NuevosSocios {
			pdf.CellFormat(contentW, 6,
				fmt.Sprintf("N° %d — %s (%s)", s.Numero, s.Nombre, s.Hora), "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
