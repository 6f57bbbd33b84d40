package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"siviack-portal/internal/backend"
)

var pdfWidths = []float64{12, 40, 25, 15, 75, 35, 35, 24, 25, 16}

// pdfCell truncates long values on rune boundaries and translates them to
// the cp1252 encoding the core Helvetica font expects. Byte slicing would
// split multibyte characters and raw UTF-8 renders as mojibake.
func pdfCell(tr func(string) string, value any) string {
	text := fmt.Sprint(value)
	if runes := []rune(text); len(runes) > 60 {
		text = string(runes[:57]) + "..."
	}
	return tr(text)
}

// PDF renders the loaded activity rows as a landscape A4 table.
func PDF(actividades []backend.Actividad) (*bytes.Buffer, error) {
	if len(actividades) == 0 {
		return nil, ErrNoData
	}

	doc := fpdf.New("L", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle("SIVIACK Portal - Actividades", false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr("Reporte de Actividades"), "", 1, "L", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "B", 7)
	doc.SetFillColor(230, 230, 230)
	for i, title := range columns {
		doc.CellFormat(pdfWidths[i], 6, tr(title), "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 7)
	for _, act := range actividades {
		for i, value := range row(act) {
			doc.CellFormat(pdfWidths[i], 6, pdfCell(tr, value), "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: write pdf: %w", err)
	}
	return &buf, nil
}
