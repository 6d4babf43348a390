package calculation

import (
	"fmt"

	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// EvaluateBrackets returns the progressive tax on income for a validated table.
// Each bracket taxes clamp(income - min, 0, max - min) at its own rate.
func EvaluateBrackets(table domain.BracketTable, income decimal.Decimal) (decimal.Decimal, error) {
	if err := checkIncome(income); err != nil {
		return decimal.Zero, err
	}
	return lo.Reduce(table.Brackets, func(total decimal.Decimal, b domain.TaxBracket, _ int) decimal.Decimal {
		return total.Add(incomeInBracket(b, income).Mul(b.Rate))
	}, decimal.Zero), nil
}

// incomeInBracket returns the slice of income that falls inside b
func incomeInBracket(b domain.TaxBracket, income decimal.Decimal) decimal.Decimal {
	amount := income.Sub(b.Min)
	if width, ok := b.Width(); ok {
		amount = decimal.Min(amount, width)
	}
	return decimal.Max(amount, decimal.Zero)
}

func checkIncome(income decimal.Decimal) error {
	if income.IsNegative() {
		return fmt.Errorf("%w: income %s cannot be negative", domain.ErrInvalidInput, income)
	}
	return domain.CheckAmount("income", income)
}
