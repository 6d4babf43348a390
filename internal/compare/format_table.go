package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing incomes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("INCOME COMPARISON (%d)\n", compSet.DataYear))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Income: $%s\n", compSet.BaseIncome.StringFixed(2)))
	sb.WriteString("\n")

	labelWidth := 16
	numWidth := 15

	// Table header
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		labelWidth, "Income",
		numWidth, "Total Tax",
		numWidth, "Deductions",
		numWidth, "Net Pay",
		numWidth, "Avg Tax Rate"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, labelWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], labelWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Label))
			sb.WriteString(fmt.Sprintf("  Income:      %s\n", tf.formatDelta(alt.IncomeDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Tax:         %s\n", tf.formatDelta(alt.TaxDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Deductions:  %s\n", tf.formatDelta(alt.DeductionsDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Net Pay:     %s\n", tf.formatDelta(alt.NetPayDiffFromBase)))
			if alt.KeptRate != nil {
				sb.WriteString(fmt.Sprintf("  Kept Share:  %s\n", formatPercent(*alt.KeptRate)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nSUMMARY\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single income row
func (tf *TableFormatter) formatRow(result *ComparisonResult, labelWidth, numWidth int, isBase bool) string {
	label := result.Label
	if isBase {
		label += " *"
	}

	rate := "n/a"
	if result.TaxRate != nil {
		rate = formatPercent(*result.TaxRate)
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		labelWidth, label,
		numWidth, "$"+result.TotalTax.StringFixed(2),
		numWidth, "$"+result.TotalDeductions.StringFixed(2),
		numWidth, "$"+result.NetPay.StringFixed(2),
		numWidth, rate)
}

// formatDelta renders a signed currency delta
func (tf *TableFormatter) formatDelta(d decimal.Decimal) string {
	switch {
	case d.IsPositive():
		return "+$" + d.StringFixed(2)
	case d.IsNegative():
		return "-$" + d.Abs().StringFixed(2)
	}
	return " $0.00"
}

// FormatCompact creates a compact single-line summary for each alternative
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: $%s | ", compSet.BaseIncome.StringFixed(2)))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(fmt.Sprintf("%s: net %s", alt.Label, tf.formatDelta(alt.NetPayDiffFromBase)))
	}

	return sb.String()
}
