package breakeven

import (
	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveRequest asks for the lowest income at which Field reaches Target
type SolveRequest struct {
	Field  domain.Field    `json:"field"`
	Target decimal.Decimal `json:"target"`

	// Search bounds; nil uses the solver defaults
	MinIncome *decimal.Decimal `json:"min_income,omitempty"`
	MaxIncome *decimal.Decimal `json:"max_income,omitempty"`
}

// SolveResult contains the outcome of a solve
type SolveResult struct {
	Request         SolveRequest `json:"request"`
	Success         bool         `json:"success"`
	Iterations      int          `json:"iterations"`
	ConvergenceInfo string       `json:"convergence_info"`

	Income    decimal.Decimal      `json:"income"`
	Achieved  decimal.Decimal      `json:"achieved"`
	Breakdown *domain.TaxBreakdown `json:"breakdown,omitempty"`
}

// MultiResult contains one result per requested target
type MultiResult struct {
	Field   domain.Field  `json:"field"`
	Results []SolveResult `json:"results"`
}

// SolverOptions configures the search
type SolverOptions struct {
	MinIncome     decimal.Decimal
	MaxIncome     decimal.Decimal
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MinIncome:     decimal.Zero,
		MaxIncome:     decimal.NewFromInt(10_000_000),
		MaxIterations: 64,
	}
}

// Validate checks the request before any search runs
func (r *SolveRequest) Validate() error {
	if r.Field.IsRate() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "rate fields cannot be solved for, pick an amount field",
			Cause:     domain.ErrInvalidArgument,
		}
	}
	if r.Target.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "target must not be negative",
			Cause:     domain.ErrInvalidInput,
		}
	}
	if err := domain.CheckAmount("target", r.Target); err != nil {
		return &BreakEvenError{Operation: "validate_request", Message: "target out of range", Cause: err}
	}
	if r.MinIncome != nil && r.MinIncome.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "min_income must not be negative",
			Cause:     domain.ErrInvalidInput,
		}
	}
	// Bounds are searched in whole cents, so they must stay well inside int64
	bounds := []struct {
		name  string
		value *decimal.Decimal
	}{{"min_income", r.MinIncome}, {"max_income", r.MaxIncome}}
	for _, b := range bounds {
		if b.value == nil {
			continue
		}
		if err := domain.CheckAmount(b.name, *b.value); err != nil {
			return &BreakEvenError{Operation: "validate_request", Message: b.name + " out of range", Cause: err}
		}
	}
	if r.MinIncome != nil && r.MaxIncome != nil && r.MinIncome.GreaterThan(*r.MaxIncome) {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "min_income cannot be greater than max_income",
			Cause:     domain.ErrInvalidInput,
		}
	}
	return nil
}

// BreakEvenError represents errors from the solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
