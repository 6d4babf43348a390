package compare

import (
	"encoding/csv"
	"strings"

	"github.com/shopspring/decimal"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Income",
		"Type",
		"Total Tax",
		"Total Deductions",
		"Net Pay",
		"Tax Rate",
		"Income Diff from Base",
		"Tax Diff from Base",
		"Deductions Diff from Base",
		"Net Pay Diff from Base",
		"Kept Rate",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, rowType string) []string {
	return []string{
		result.Income.StringFixed(2),
		rowType,
		result.TotalTax.StringFixed(2),
		result.TotalDeductions.StringFixed(2),
		result.NetPay.StringFixed(2),
		formatRate(result.TaxRate),
		result.IncomeDiffFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.DeductionsDiffFromBase.StringFixed(2),
		result.NetPayDiffFromBase.StringFixed(2),
		formatRate(result.KeptRate),
	}
}

func formatRate(rate *decimal.Decimal) string {
	if rate == nil {
		return ""
	}
	return rate.StringFixed(4)
}
