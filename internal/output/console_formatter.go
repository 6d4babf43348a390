package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ontax/internal/domain"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	totalStyle  = lipgloss.NewStyle().Bold(true)
	netPayStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// ConsoleFormatter renders a breakdown as an aligned table for the terminal
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "table" }

func (ConsoleFormatter) Format(b *domain.TaxBreakdown) ([]byte, error) {
	var buf bytes.Buffer

	title := "INCOME TAX BREAKDOWN"
	if b.DataYear != 0 {
		title = fmt.Sprintf("%s (%d)", title, b.DataYear)
	}
	buf.WriteString(titleStyle.Render(title) + "\n")
	buf.WriteString(strings.Repeat("=", 44) + "\n")
	buf.WriteString(fmt.Sprintf("%-26s %17s\n", "Gross income", FormatCurrency(b.Income)))
	buf.WriteString(strings.Repeat("-", 44) + "\n")

	for _, f := range displayOrder {
		row := fmt.Sprintf("%-26s %17s", FieldLabel(f), FormatFieldValue(b, f))
		switch f {
		case domain.FieldNetPay:
			row = netPayStyle.Render(row)
		case domain.FieldTotalTax, domain.FieldTotalDeductions, domain.FieldTotalProvincialTax:
			row = totalStyle.Render(row)
		case domain.FieldTaxRate, domain.FieldNetPayRate:
			row = labelStyle.Render(row)
		}
		buf.WriteString(row + "\n")
		if f == domain.FieldTotalTax || f == domain.FieldTotalDeductions {
			buf.WriteString(strings.Repeat("-", 44) + "\n")
		}
	}

	return buf.Bytes(), nil
}
