package breakeven

import (
	"context"

	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveMany solves for each target in turn. A target that cannot be reached is
// reported as an unsuccessful result rather than aborting the run.
func (s *Solver) SolveMany(ctx context.Context, field domain.Field, targets []decimal.Decimal) (*MultiResult, error) {
	result := &MultiResult{Field: field}

	for _, target := range targets {
		req := SolveRequest{Field: field, Target: target}
		res, err := s.Solve(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			result.Results = append(result.Results, SolveResult{
				Request:         req,
				Success:         false,
				ConvergenceInfo: err.Error(),
			})
			continue
		}
		result.Results = append(result.Results, *res)
	}

	if len(result.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_many",
			Message:   "no targets given",
			Cause:     domain.ErrInvalidInput,
		}
	}

	return result, nil
}
