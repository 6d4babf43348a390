package output

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/rgehrsitz/ontax/internal/domain"
)

// PDFFormatter renders a one-page tax statement
type PDFFormatter struct{}

func (PDFFormatter) Name() string { return "pdf" }

func (PDFFormatter) Format(b *domain.TaxBreakdown) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	title := "Income Tax Statement"
	if b.DataYear != 0 {
		title = fmt.Sprintf("%s %d", title, b.DataYear)
	}
	pdf.Cell(40, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(90, 8, "Gross income", "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, FormatCurrency(b.Income), "", 1, "R", false, 0, "")
	pdf.Ln(3)

	for _, f := range displayOrder {
		style := ""
		if f == domain.FieldTotalTax || f == domain.FieldTotalDeductions || f == domain.FieldNetPay {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 12)
		pdf.CellFormat(90, 8, FieldLabel(f), "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, FormatFieldValue(b, f), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
