package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a tax breakdown into bytes
type Formatter interface {
	Name() string
	Format(b *domain.TaxBreakdown) ([]byte, error)
}

// formatterFunc adapts a function to the Formatter interface
type formatterFunc struct {
	ID string
	F  func(b *domain.TaxBreakdown) ([]byte, error)
}

func (f formatterFunc) Name() string { return f.ID }

func (f formatterFunc) Format(b *domain.TaxBreakdown) ([]byte, error) { return f.F(b) }

var formatters = map[string]Formatter{}

var formatAliases = map[string]string{
	"console": "table",
	"text":    "table",
}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(JSONFormatter{Pretty: true})
	register(CSVFormatter{})
	register(PDFFormatter{})
}

// GetFormatterByName returns the formatter registered under name or alias, or nil
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[key]; ok {
		key = target
	}
	return formatters[key]
}

// AvailableFormatterNames lists registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders b and writes it to path
func WriteFormatted(f Formatter, b *domain.TaxBreakdown, path string) error {
	data, err := f.Format(b)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a ratio as a percentage
func FormatPercentage(ratio decimal.Decimal) string {
	return ratio.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

var fieldLabels = map[domain.Field]string{
	domain.FieldProvincialTax:      "Ontario tax",
	domain.FieldProvincialSurtax:   "Ontario surtax",
	domain.FieldTotalProvincialTax: "Total provincial tax",
	domain.FieldFederalTax:         "Federal tax",
	domain.FieldTotalTax:           "Total tax",
	domain.FieldCanadaPensionPlan:  "CPP contribution",
	domain.FieldEIDeduction:        "EI premium",
	domain.FieldTotalDeductions:    "Total deductions",
	domain.FieldNetPay:             "Net pay",
	domain.FieldTaxRate:            "Average tax rate",
	domain.FieldNetPayRate:         "Net pay rate",
}

// displayOrder groups fields the way a pay statement reads
var displayOrder = []domain.Field{
	domain.FieldProvincialTax,
	domain.FieldProvincialSurtax,
	domain.FieldTotalProvincialTax,
	domain.FieldFederalTax,
	domain.FieldTotalTax,
	domain.FieldCanadaPensionPlan,
	domain.FieldEIDeduction,
	domain.FieldTotalDeductions,
	domain.FieldNetPay,
	domain.FieldTaxRate,
	domain.FieldNetPayRate,
}

// DisplayOrder returns the fields in pay statement order
func DisplayOrder() []domain.Field {
	return append([]domain.Field(nil), displayOrder...)
}

// FieldLabel returns the human-readable label for f
func FieldLabel(f domain.Field) string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return f.String()
}

// FormatFieldValue renders one field; rates as percentages, n/a when undefined
func FormatFieldValue(b *domain.TaxBreakdown, f domain.Field) string {
	v, err := b.Value(f)
	if err != nil {
		return "n/a"
	}
	if f.IsRate() {
		return FormatPercentage(v)
	}
	return FormatCurrency(v)
}
