package calculation

import (
	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
)

// PensionPlanCalculator handles Canada Pension Plan employee contributions
type PensionPlanCalculator struct {
	Rule domain.DeductionRule
}

// NewPensionPlanCalculator creates a CPP calculator with configurable values
func NewPensionPlanCalculator(rule domain.DeductionRule) (*PensionPlanCalculator, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return &PensionPlanCalculator{Rule: rule}, nil
}

// CalculateContribution calculates the CPP contribution on employment income
func (pc *PensionPlanCalculator) CalculateContribution(income decimal.Decimal) (decimal.Decimal, error) {
	if err := checkIncome(income); err != nil {
		return decimal.Zero, err
	}
	return applyDeductionRule(pc.Rule, income), nil
}

// EmploymentInsuranceCalculator handles EI premiums
type EmploymentInsuranceCalculator struct {
	Rule domain.DeductionRule
}

// NewEmploymentInsuranceCalculator creates an EI calculator with configurable values
func NewEmploymentInsuranceCalculator(rule domain.DeductionRule) (*EmploymentInsuranceCalculator, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return &EmploymentInsuranceCalculator{Rule: rule}, nil
}

// CalculatePremium calculates the EI premium on insurable earnings
func (ec *EmploymentInsuranceCalculator) CalculatePremium(income decimal.Decimal) (decimal.Decimal, error) {
	if err := checkIncome(income); err != nil {
		return decimal.Zero, err
	}
	return applyDeductionRule(ec.Rule, income), nil
}

// applyDeductionRule computes min(clamp(income - floor, 0, ceiling) * rate, cap)
func applyDeductionRule(rule domain.DeductionRule, income decimal.Decimal) decimal.Decimal {
	earnings := income.Sub(rule.ExemptionFloor)
	if earnings.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	earnings = decimal.Min(earnings, rule.EarningsCeiling)

	contribution := earnings.Mul(rule.Rate)
	if rule.MaxContribution != nil {
		contribution = decimal.Min(contribution, *rule.MaxContribution)
	}
	return contribution
}
