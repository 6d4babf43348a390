package compare

import (
	"fmt"

	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents one income's breakdown with metrics relative to the base
type ComparisonResult struct {
	Label     string               `json:"label"`
	Breakdown *domain.TaxBreakdown `json:"-"`

	// Key Metrics
	Income          decimal.Decimal  `json:"income"`
	TotalTax        decimal.Decimal  `json:"totalTax"`
	TotalDeductions decimal.Decimal  `json:"totalDeductions"`
	NetPay          decimal.Decimal  `json:"netPay"`
	TaxRate         *decimal.Decimal `json:"taxRate,omitempty"`

	// Comparison to Base
	IncomeDiffFromBase     decimal.Decimal  `json:"incomeDiffFromBase"`
	TaxDiffFromBase        decimal.Decimal  `json:"taxDiffFromBase"`
	DeductionsDiffFromBase decimal.Decimal  `json:"deductionsDiffFromBase"`
	NetPayDiffFromBase     decimal.Decimal  `json:"netPayDiffFromBase"`
	KeptRate               *decimal.Decimal `json:"keptRate,omitempty"` // share of the income change kept as net pay
}

// ComparisonSet represents a base income and its alternatives
type ComparisonSet struct {
	BaseIncome         decimal.Decimal    `json:"baseIncome"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	DataYear           int                `json:"dataYear"`
}

// MetricsCalculator extracts comparison metrics from breakdowns
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics copies the headline figures out of a breakdown
func (mc *MetricsCalculator) CalculateMetrics(b *domain.TaxBreakdown) ComparisonResult {
	return ComparisonResult{
		Label:           "$" + b.Income.StringFixed(2),
		Breakdown:       b,
		Income:          b.Income,
		TotalTax:        b.TotalTax,
		TotalDeductions: b.TotalDeductions,
		NetPay:          b.NetPay,
		TaxRate:         b.TaxRate,
	}
}

// CalculateComparison computes the deltas between an alternative and the base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.IncomeDiffFromBase = alt.Income.Sub(base.Income)
	alt.TaxDiffFromBase = alt.TotalTax.Sub(base.TotalTax)
	alt.DeductionsDiffFromBase = alt.TotalDeductions.Sub(base.TotalDeductions)
	alt.NetPayDiffFromBase = alt.NetPay.Sub(base.NetPay)

	alt.KeptRate = nil
	if !alt.IncomeDiffFromBase.IsZero() {
		kept := alt.NetPayDiffFromBase.Div(alt.IncomeDiffFromBase)
		alt.KeptRate = &kept
	}

	return alt
}

// GenerateRecommendations summarizes how much of each income change is kept
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	// Highest net pay
	best := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].NetPay.GreaterThan(best.NetPay) {
			best = &compSet.AlternativeResults[i]
		}
	}
	if best != compSet.BaseResult {
		recommendations = append(recommendations,
			"Highest Net Pay: "+best.Label+" takes home $"+best.NetPayDiffFromBase.StringFixed(2)+
				" more than the base income")
	}

	// Least of the change kept
	var worst *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.KeptRate == nil || !alt.IncomeDiffFromBase.IsPositive() {
			continue
		}
		if worst == nil || alt.KeptRate.LessThan(*worst.KeptRate) {
			worst = alt
		}
	}
	if worst != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Kept Share: moving to %s keeps %s of the extra income",
				worst.Label, formatPercent(*worst.KeptRate)))
	}

	return recommendations
}

func formatPercent(ratio decimal.Decimal) string {
	return ratio.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
