package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/ontax/internal/calculation"
	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the gross income that produces a target breakdown value
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

var hundred = decimal.NewFromInt(100)

// Solve returns the lowest income, to the cent, whose field value is at least the target.
// Every amount field is non-decreasing in income, so a binary search over cents converges.
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	minIncome, maxIncome := s.Options.MinIncome, s.Options.MaxIncome
	if req.MinIncome != nil {
		minIncome = *req.MinIncome
	}
	if req.MaxIncome != nil {
		maxIncome = *req.MaxIncome
	}
	for _, bound := range []decimal.Decimal{minIncome, maxIncome} {
		if err := domain.CheckAmount("search bound", bound); err != nil {
			return nil, &BreakEvenError{Operation: "solve", Message: "search bound out of range", Cause: err}
		}
	}
	lo := minIncome.Mul(hundred).Ceil().IntPart()
	hi := maxIncome.Mul(hundred).Floor().IntPart()
	if lo > hi {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("no whole cent between %s and %s", minIncome, maxIncome),
			Cause:     domain.ErrInvalidInput,
		}
	}

	top, err := s.valueAt(hi, req.Field)
	if err != nil {
		return nil, err
	}
	if top.LessThan(req.Target) {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message: fmt.Sprintf("%s reaches only %s at the maximum income %s",
				req.Field, top.StringFixed(2), centsToIncome(hi).StringFixed(2)),
			Cause: domain.ErrDomain,
		}
	}

	iterations := 0
	for lo < hi {
		if iterations >= s.Options.MaxIterations {
			return nil, &BreakEvenError{
				Operation: "solve",
				Message:   fmt.Sprintf("search did not converge after %d iterations", iterations),
			}
		}
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo + (hi-lo)/2
		v, err := s.valueAt(mid, req.Field)
		if err != nil {
			return nil, err
		}
		if v.GreaterThanOrEqual(req.Target) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	income := centsToIncome(lo)
	b, err := s.CalcEngine.Breakdown(income)
	if err != nil {
		return nil, err
	}
	achieved, err := b.Value(req.Field)
	if err != nil {
		return nil, err
	}

	return &SolveResult{
		Request:         req,
		Success:         true,
		Iterations:      iterations,
		ConvergenceInfo: fmt.Sprintf("Binary search converged to the cent in %d iterations", iterations),
		Income:          income,
		Achieved:        achieved,
		Breakdown:       b,
	}, nil
}

func (s *Solver) valueAt(cents int64, field domain.Field) (decimal.Decimal, error) {
	v, err := s.CalcEngine.TaxBreakdown(centsToIncome(cents), field)
	if err != nil {
		return decimal.Zero, &BreakEvenError{
			Operation: "solve",
			Message:   "failed to calculate breakdown",
			Cause:     err,
		}
	}
	return v, nil
}

func centsToIncome(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
