package calculation

import (
	"fmt"

	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Brackets: 2021 federal and Ontario tables for every call
//    - No inflation indexing
//    - No credits (basic personal amount is folded into the first bracket's floor)
//
// 2. Ontario surtax: charged on Ontario tax payable, not on income
//    - Each threshold taxes the full excess above it, so the 36% tier stacks
//      on top of the 20% tier above the second threshold
//
// 3. Income is employment income only

// ProvincialTaxCalculator handles Ontario income tax, excluding surtax
type ProvincialTaxCalculator struct {
	Table domain.BracketTable
}

// NewProvincialTaxCalculator creates an Ontario calculator from a configured table
func NewProvincialTaxCalculator(table domain.BracketTable) (*ProvincialTaxCalculator, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &ProvincialTaxCalculator{Table: table}, nil
}

// CalculateTax calculates Ontario tax payable on income
func (ptc *ProvincialTaxCalculator) CalculateTax(income decimal.Decimal) (decimal.Decimal, error) {
	return EvaluateBrackets(ptc.Table, income)
}

// ProvincialSurtaxCalculator handles the Ontario surtax
type ProvincialSurtaxCalculator struct {
	Table domain.SurtaxTable
}

// NewProvincialSurtaxCalculator creates a surtax calculator from configured thresholds
func NewProvincialSurtaxCalculator(table domain.SurtaxTable) (*ProvincialSurtaxCalculator, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &ProvincialSurtaxCalculator{Table: table}, nil
}

// CalculateSurtax calculates surtax on provincial tax payable (not income).
// Every threshold charges its rate on max(taxPayable - threshold, 0).
func (stc *ProvincialSurtaxCalculator) CalculateSurtax(provincialTaxPayable decimal.Decimal) (decimal.Decimal, error) {
	if provincialTaxPayable.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: provincial tax payable %s cannot be negative", domain.ErrInvalidInput, provincialTaxPayable)
	}
	var surtax decimal.Decimal
	for _, b := range stc.Table.Brackets {
		excess := provincialTaxPayable.Sub(b.Threshold)
		if excess.IsPositive() {
			surtax = surtax.Add(excess.Mul(b.Rate))
		}
	}
	return surtax, nil
}

// FederalTaxCalculator handles federal income tax calculations
type FederalTaxCalculator struct {
	Table domain.BracketTable
}

// NewFederalTaxCalculator creates a federal calculator from a configured table
func NewFederalTaxCalculator(table domain.BracketTable) (*FederalTaxCalculator, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &FederalTaxCalculator{Table: table}, nil
}

// CalculateFederalTax calculates federal income tax
func (ftc *FederalTaxCalculator) CalculateFederalTax(income decimal.Decimal) (decimal.Decimal, error) {
	return EvaluateBrackets(ftc.Table, income)
}
