package domain

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Field selects one figure from a TaxBreakdown
type Field int

const (
	FieldTotalTax Field = iota
	FieldTotalDeductions
	FieldNetPay
	FieldTotalProvincialTax
	FieldProvincialTax
	FieldProvincialSurtax
	FieldFederalTax
	FieldTaxRate
	FieldCanadaPensionPlan
	FieldEIDeduction
	FieldNetPayRate
)

// DefaultField is used when the caller does not name a field
const DefaultField = FieldTotalTax

var fieldNames = map[Field]string{
	FieldTotalTax:           "total_tax",
	FieldTotalDeductions:    "total_deductions",
	FieldNetPay:             "net_pay",
	FieldTotalProvincialTax: "total_provincial_tax",
	FieldProvincialTax:      "provincial_tax",
	FieldProvincialSurtax:   "provincial_surtax",
	FieldFederalTax:         "federal_tax",
	FieldTaxRate:            "tax_rate",
	FieldCanadaPensionPlan:  "canada_pension_plan",
	FieldEIDeduction:        "ei_deduction",
	FieldNetPayRate:         "net_pay_rate",
}

// legacy names accepted by ParseField
var fieldAliases = map[string]Field{
	"after_tax_income": FieldNetPay,
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// IsRate reports whether the field is a ratio over income
func (f Field) IsRate() bool {
	return f == FieldTaxRate || f == FieldNetPayRate
}

// AllFields returns every field in declaration order
func AllFields() []Field {
	return []Field{
		FieldTotalTax,
		FieldTotalDeductions,
		FieldNetPay,
		FieldTotalProvincialTax,
		FieldProvincialTax,
		FieldProvincialSurtax,
		FieldFederalTax,
		FieldTaxRate,
		FieldCanadaPensionPlan,
		FieldEIDeduction,
		FieldNetPayRate,
	}
}

// FieldNames returns the canonical names of every field
func FieldNames() []string {
	return lo.Map(AllFields(), func(f Field, _ int) string { return f.String() })
}

// MarshalText encodes the field by name
func (f Field) MarshalText() ([]byte, error) {
	if _, ok := fieldNames[f]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, f)
	}
	return []byte(f.String()), nil
}

// UnmarshalText accepts any name ParseField accepts
func (f *Field) UnmarshalText(text []byte) error {
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseField resolves a field name. An empty name selects DefaultField.
func ParseField(name string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return DefaultField, nil
	}
	if f, ok := fieldAliases[key]; ok {
		return f, nil
	}
	for f, n := range fieldNames {
		if n == key {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown breakdown field %q (valid: %s)", ErrInvalidArgument, name, strings.Join(FieldNames(), ", "))
}

// TaxBreakdown holds every figure computed for one income.
// TaxRate and NetPayRate are nil when income is zero.
type TaxBreakdown struct {
	Income             decimal.Decimal  `json:"income"`
	ProvincialTax      decimal.Decimal  `json:"provincial_tax"`
	ProvincialSurtax   decimal.Decimal  `json:"provincial_surtax"`
	TotalProvincialTax decimal.Decimal  `json:"total_provincial_tax"`
	FederalTax         decimal.Decimal  `json:"federal_tax"`
	TotalTax           decimal.Decimal  `json:"total_tax"`
	CanadaPensionPlan  decimal.Decimal  `json:"canada_pension_plan"`
	EIDeduction        decimal.Decimal  `json:"ei_deduction"`
	TotalDeductions    decimal.Decimal  `json:"total_deductions"`
	NetPay             decimal.Decimal  `json:"net_pay"`
	TaxRate            *decimal.Decimal `json:"tax_rate,omitempty"`
	NetPayRate         *decimal.Decimal `json:"net_pay_rate,omitempty"`
	DataYear           int              `json:"data_year,omitempty"`
}

// Value returns the figure for f
func (b *TaxBreakdown) Value(f Field) (decimal.Decimal, error) {
	switch f {
	case FieldTotalTax:
		return b.TotalTax, nil
	case FieldTotalDeductions:
		return b.TotalDeductions, nil
	case FieldNetPay:
		return b.NetPay, nil
	case FieldTotalProvincialTax:
		return b.TotalProvincialTax, nil
	case FieldProvincialTax:
		return b.ProvincialTax, nil
	case FieldProvincialSurtax:
		return b.ProvincialSurtax, nil
	case FieldFederalTax:
		return b.FederalTax, nil
	case FieldTaxRate:
		return rateValue(f, b.TaxRate)
	case FieldCanadaPensionPlan:
		return b.CanadaPensionPlan, nil
	case FieldEIDeduction:
		return b.EIDeduction, nil
	case FieldNetPayRate:
		return rateValue(f, b.NetPayRate)
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown breakdown field %s", ErrInvalidArgument, f)
	}
}

func rateValue(f Field, rate *decimal.Decimal) (decimal.Decimal, error) {
	if rate == nil {
		return decimal.Zero, fmt.Errorf("%w: %s is undefined for zero income", ErrDomain, f)
	}
	return *rate, nil
}
