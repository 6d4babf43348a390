package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted report for one result
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN INCOME\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Field:        %s\n", result.Request.Field))
	sb.WriteString(fmt.Sprintf("Target:       $%s\n", result.Request.Target.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if !result.Success {
		return sb.String()
	}

	sb.WriteString("REQUIRED INCOME\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Gross Income: $%s\n", result.Income.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Achieved:     $%s\n", result.Achieved.StringFixed(2)))
	diff := result.Achieved.Sub(result.Request.Target)
	sb.WriteString(fmt.Sprintf("Difference:   %s$%s\n", tf.deltaSymbol(diff), diff.Abs().StringFixed(2)))

	if b := result.Breakdown; b != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Total Tax:    $%s\n", b.TotalTax.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("Deductions:   $%s\n", b.TotalDeductions.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("Net Pay:      $%s\n", b.NetPay.StringFixed(2)))
	}

	return sb.String()
}

// FormatMulti formats results from several targets as one table
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("BREAK-EVEN INCOME FOR %s\n", strings.ToUpper(result.Field.String())))
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%15s %15s %15s %10s\n", "Target", "Gross Income", "Achieved", "Status"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	for _, res := range result.Results {
		income, achieved := "-", "-"
		if res.Success {
			income = "$" + res.Income.StringFixed(2)
			achieved = "$" + res.Achieved.StringFixed(2)
		}
		sb.WriteString(fmt.Sprintf("%15s %15s %15s %10s\n",
			"$"+res.Request.Target.StringFixed(2), income, achieved, tf.formatStatus(res.Success)))
	}

	return sb.String()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "solved"
	}
	return "unreachable"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return "-"
	}
	return "+"
}

// JSONFormatter formats solver results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format marshals any solver result
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
