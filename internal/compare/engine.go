package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/ontax/internal/calculation"
	"github.com/shopspring/decimal"
)

// CompareEngine orchestrates income comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// Compare computes the breakdown for base and every alternative income
func (ce *CompareEngine) Compare(ctx context.Context, base decimal.Decimal, alternatives []decimal.Decimal) (*ComparisonSet, error) {
	baseBreakdown, err := ce.CalcEngine.Breakdown(base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base income: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseBreakdown)

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, income := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		b, err := ce.CalcEngine.Breakdown(income)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate income %s: %w", income, err)
		}
		result := ce.MetricsCalculator.CalculateMetrics(b)
		results = append(results, ce.MetricsCalculator.CalculateComparison(result, baseResult))
	}

	compSet := &ComparisonSet{
		BaseIncome:         base,
		BaseResult:         &baseResult,
		AlternativeResults: results,
		DataYear:           ce.CalcEngine.DataYear,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
