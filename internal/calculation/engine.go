package calculation

import (
	"fmt"

	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates all tax and deduction calculations.
// It holds only immutable tables and is safe for concurrent use.
type CalculationEngine struct {
	ProvincialCalc *ProvincialTaxCalculator
	SurtaxCalc     *ProvincialSurtaxCalculator
	FederalCalc    *FederalTaxCalculator
	PensionCalc    *PensionPlanCalculator
	InsuranceCalc  *EmploymentInsuranceCalculator
	DataYear       int
	Logger         Logger
}

// NewCalculationEngine creates an engine with the built-in 2021 tables.
// It panics if those tables fail validation.
func NewCalculationEngine() *CalculationEngine {
	ce, err := NewCalculationEngineWithRules(DefaultRules2021())
	if err != nil {
		panic(fmt.Sprintf("built-in 2021 rules are invalid: %v", err))
	}
	return ce
}

// NewCalculationEngineWithRules creates an engine from a loaded rule set.
// Every table is validated here; a malformed table fails with ErrConfiguration.
func NewCalculationEngineWithRules(rules domain.TaxRules) (*CalculationEngine, error) {
	provincial, err := NewProvincialTaxCalculator(rules.Provincial)
	if err != nil {
		return nil, err
	}
	surtax, err := NewProvincialSurtaxCalculator(rules.ProvincialSurtax)
	if err != nil {
		return nil, err
	}
	federal, err := NewFederalTaxCalculator(rules.Federal)
	if err != nil {
		return nil, err
	}
	pension, err := NewPensionPlanCalculator(rules.PensionPlan)
	if err != nil {
		return nil, err
	}
	insurance, err := NewEmploymentInsuranceCalculator(rules.EmploymentInsurance)
	if err != nil {
		return nil, err
	}
	return &CalculationEngine{
		ProvincialCalc: provincial,
		SurtaxCalc:     surtax,
		FederalCalc:    federal,
		PensionCalc:    pension,
		InsuranceCalc:  insurance,
		DataYear:       rules.Metadata.DataYear,
		Logger:         NopLogger{},
	}, nil
}

// SetLogger sets the logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// ProvincialTax returns Ontario tax payable excluding surtax
func (ce *CalculationEngine) ProvincialTax(income decimal.Decimal) (decimal.Decimal, error) {
	return ce.ProvincialCalc.CalculateTax(income)
}

// ProvincialSurtax returns the Ontario surtax for income
func (ce *CalculationEngine) ProvincialSurtax(income decimal.Decimal) (decimal.Decimal, error) {
	provincialTax, err := ce.ProvincialCalc.CalculateTax(income)
	if err != nil {
		return decimal.Zero, err
	}
	return ce.SurtaxCalc.CalculateSurtax(provincialTax)
}

// FederalTax returns federal tax payable
func (ce *CalculationEngine) FederalTax(income decimal.Decimal) (decimal.Decimal, error) {
	return ce.FederalCalc.CalculateFederalTax(income)
}

// PensionDeduction returns the CPP contribution
func (ce *CalculationEngine) PensionDeduction(income decimal.Decimal) (decimal.Decimal, error) {
	return ce.PensionCalc.CalculateContribution(income)
}

// InsuranceDeduction returns the EI premium
func (ce *CalculationEngine) InsuranceDeduction(income decimal.Decimal) (decimal.Decimal, error) {
	return ce.InsuranceCalc.CalculatePremium(income)
}

// Breakdown computes every figure for income. For zero income the rate
// fields are left nil; requesting them through Value fails with ErrDomain.
func (ce *CalculationEngine) Breakdown(income decimal.Decimal) (*domain.TaxBreakdown, error) {
	if err := checkIncome(income); err != nil {
		return nil, err
	}

	provincialTax, err := ce.ProvincialCalc.CalculateTax(income)
	if err != nil {
		return nil, fmt.Errorf("provincial tax: %w", err)
	}
	surtax, err := ce.SurtaxCalc.CalculateSurtax(provincialTax)
	if err != nil {
		return nil, fmt.Errorf("provincial surtax: %w", err)
	}
	federalTax, err := ce.FederalCalc.CalculateFederalTax(income)
	if err != nil {
		return nil, fmt.Errorf("federal tax: %w", err)
	}
	cpp, err := ce.PensionCalc.CalculateContribution(income)
	if err != nil {
		return nil, fmt.Errorf("pension deduction: %w", err)
	}
	ei, err := ce.InsuranceCalc.CalculatePremium(income)
	if err != nil {
		return nil, fmt.Errorf("insurance deduction: %w", err)
	}

	b := &domain.TaxBreakdown{
		Income:            income,
		ProvincialTax:     provincialTax,
		ProvincialSurtax:  surtax,
		FederalTax:        federalTax,
		CanadaPensionPlan: cpp,
		EIDeduction:       ei,
		DataYear:          ce.DataYear,
	}
	b.TotalProvincialTax = provincialTax.Add(surtax)
	b.TotalTax = b.TotalProvincialTax.Add(federalTax)
	b.TotalDeductions = cpp.Add(ei)
	b.NetPay = income.Sub(b.TotalTax).Sub(b.TotalDeductions)

	if income.IsPositive() {
		taxRate := b.TotalTax.Div(income)
		netPayRate := b.NetPay.Div(income)
		b.TaxRate = &taxRate
		b.NetPayRate = &netPayRate
	}

	ce.Logger.Debugf("breakdown income=%s provincial=%s surtax=%s federal=%s cpp=%s ei=%s net=%s",
		income.StringFixed(2), provincialTax.StringFixed(2), surtax.StringFixed(2),
		federalTax.StringFixed(2), cpp.StringFixed(2), ei.StringFixed(2), b.NetPay.StringFixed(2))

	return b, nil
}

// TaxBreakdown computes the breakdown for income and returns the selected field
func (ce *CalculationEngine) TaxBreakdown(income decimal.Decimal, field domain.Field) (decimal.Decimal, error) {
	b, err := ce.Breakdown(income)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Value(field)
}

// TaxBreakdownByName is TaxBreakdown with the field given by name; "" selects total_tax
func (ce *CalculationEngine) TaxBreakdownByName(income decimal.Decimal, fieldName string) (decimal.Decimal, error) {
	field, err := domain.ParseField(fieldName)
	if err != nil {
		return decimal.Zero, err
	}
	return ce.TaxBreakdown(income, field)
}

var defaultEngine = NewCalculationEngine()

// TaxBreakdown uses the built-in 2021 tables; fieldName "" selects total_tax
func TaxBreakdown(income decimal.Decimal, fieldName string) (decimal.Decimal, error) {
	return defaultEngine.TaxBreakdownByName(income, fieldName)
}

// ProvincialTax uses the built-in 2021 Ontario table
func ProvincialTax(income decimal.Decimal) (decimal.Decimal, error) {
	return defaultEngine.ProvincialTax(income)
}

// ProvincialSurtax uses the built-in 2021 Ontario tables
func ProvincialSurtax(income decimal.Decimal) (decimal.Decimal, error) {
	return defaultEngine.ProvincialSurtax(income)
}

// FederalTax uses the built-in 2021 federal table
func FederalTax(income decimal.Decimal) (decimal.Decimal, error) {
	return defaultEngine.FederalTax(income)
}

// PensionDeduction uses the built-in 2021 CPP rule
func PensionDeduction(income decimal.Decimal) (decimal.Decimal, error) {
	return defaultEngine.PensionDeduction(income)
}

// InsuranceDeduction uses the built-in 2021 EI rule
func InsuranceDeduction(income decimal.Decimal) (decimal.Decimal, error) {
	return defaultEngine.InsuranceDeduction(income)
}
