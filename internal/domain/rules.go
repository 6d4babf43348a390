package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRules contains all statutory data needed to compute a tax breakdown.
// This is loaded from a rules YAML file or taken from the built-in 2021 tables.
type TaxRules struct {
	Metadata            RulesMetadata `yaml:"metadata" json:"metadata"`
	Federal             BracketTable  `yaml:"federal" json:"federal"`
	Provincial          BracketTable  `yaml:"provincial" json:"provincial"`
	ProvincialSurtax    SurtaxTable   `yaml:"provincial_surtax" json:"provincial_surtax"`
	PensionPlan         DeductionRule `yaml:"pension_plan" json:"pension_plan"`
	EmploymentInsurance DeductionRule `yaml:"employment_insurance" json:"employment_insurance"`
}

// RulesMetadata contains information about the rules data
type RulesMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	Province    string `yaml:"province" json:"province"`
	Description string `yaml:"description" json:"description"`
}

// TaxBracket is one marginal slice of a progressive table.
// A nil Max means the bracket has no upper bound.
type TaxBracket struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// IsUnbounded reports whether the bracket extends to positive infinity
func (b TaxBracket) IsUnbounded() bool {
	return b.Max == nil
}

// Width returns the size of the bracket; ok is false for an unbounded bracket
func (b TaxBracket) Width() (width decimal.Decimal, ok bool) {
	if b.Max == nil {
		return decimal.Zero, false
	}
	return b.Max.Sub(b.Min), true
}

// BracketTable is an ordered set of contiguous brackets for one tax regime
type BracketTable struct {
	Name     string       `yaml:"name" json:"name"`
	Brackets []TaxBracket `yaml:"brackets" json:"brackets"`
}

// Validate checks that the table is non-empty, ascending, contiguous and open-ended.
func (t BracketTable) Validate() error {
	if len(t.Brackets) == 0 {
		return fmt.Errorf("%w: bracket table %q is empty", ErrConfiguration, t.Name)
	}
	if t.Brackets[0].Min.IsNegative() {
		return fmt.Errorf("%w: bracket table %q starts below zero", ErrConfiguration, t.Name)
	}
	last := len(t.Brackets) - 1
	for i, b := range t.Brackets {
		if err := validateRate(b.Rate); err != nil {
			return fmt.Errorf("%w: bracket table %q bracket %d: %v", ErrConfiguration, t.Name, i, err)
		}
		if b.Max == nil {
			if i != last {
				return fmt.Errorf("%w: bracket table %q bracket %d is unbounded but not last", ErrConfiguration, t.Name, i)
			}
			continue
		}
		if i == last {
			return fmt.Errorf("%w: bracket table %q last bracket must be unbounded", ErrConfiguration, t.Name)
		}
		if !b.Max.GreaterThan(b.Min) {
			return fmt.Errorf("%w: bracket table %q bracket %d has max %s <= min %s", ErrConfiguration, t.Name, i, b.Max, b.Min)
		}
		if next := t.Brackets[i+1]; !next.Min.Equal(*b.Max) {
			return fmt.Errorf("%w: bracket table %q bracket %d ends at %s but bracket %d starts at %s", ErrConfiguration, t.Name, i, b.Max, i+1, next.Min)
		}
	}
	return nil
}

// SurtaxBracket applies Rate to the portion of tax payable above Threshold
type SurtaxBracket struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// SurtaxTable is an ascending list of stacking surtax thresholds
type SurtaxTable struct {
	Name     string          `yaml:"name" json:"name"`
	Brackets []SurtaxBracket `yaml:"brackets" json:"brackets"`
}

// Validate checks thresholds are non-negative and strictly ascending.
// An empty table is valid and yields no surtax.
func (t SurtaxTable) Validate() error {
	for i, b := range t.Brackets {
		if b.Threshold.IsNegative() {
			return fmt.Errorf("%w: surtax table %q threshold %d is negative", ErrConfiguration, t.Name, i)
		}
		if err := validateRate(b.Rate); err != nil {
			return fmt.Errorf("%w: surtax table %q threshold %d: %v", ErrConfiguration, t.Name, i, err)
		}
		if i > 0 && !b.Threshold.GreaterThan(t.Brackets[i-1].Threshold) {
			return fmt.Errorf("%w: surtax table %q thresholds must be strictly ascending", ErrConfiguration, t.Name)
		}
	}
	return nil
}

// DeductionRule is a capped-linear payroll contribution formula:
// min(clamp(income - ExemptionFloor, 0, EarningsCeiling) * Rate, MaxContribution).
// A nil MaxContribution leaves the product uncapped.
type DeductionRule struct {
	Name            string           `yaml:"name" json:"name"`
	ExemptionFloor  decimal.Decimal  `yaml:"exemption_floor" json:"exemption_floor"`
	EarningsCeiling decimal.Decimal  `yaml:"earnings_ceiling" json:"earnings_ceiling"`
	Rate            decimal.Decimal  `yaml:"rate" json:"rate"`
	MaxContribution *decimal.Decimal `yaml:"max_contribution,omitempty" json:"max_contribution,omitempty"`
}

// Validate checks the rule parameters
func (r DeductionRule) Validate() error {
	if r.ExemptionFloor.IsNegative() {
		return fmt.Errorf("%w: deduction %q exemption floor is negative", ErrConfiguration, r.Name)
	}
	if !r.EarningsCeiling.IsPositive() {
		return fmt.Errorf("%w: deduction %q earnings ceiling must be positive", ErrConfiguration, r.Name)
	}
	if err := validateRate(r.Rate); err != nil {
		return fmt.Errorf("%w: deduction %q: %v", ErrConfiguration, r.Name, err)
	}
	if r.MaxContribution != nil && r.MaxContribution.IsNegative() {
		return fmt.Errorf("%w: deduction %q max contribution is negative", ErrConfiguration, r.Name)
	}
	return nil
}

// Validate checks every table in the rule set
func (r *TaxRules) Validate() error {
	if err := r.Federal.Validate(); err != nil {
		return err
	}
	if err := r.Provincial.Validate(); err != nil {
		return err
	}
	if err := r.ProvincialSurtax.Validate(); err != nil {
		return err
	}
	if err := r.PensionPlan.Validate(); err != nil {
		return err
	}
	return r.EmploymentInsurance.Validate()
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("rate %s must be between 0 and 1", rate)
	}
	return nil
}
