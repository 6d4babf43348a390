package tui

import (
	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
)

// Message types for the Bubble Tea update cycle

// BreakdownMsg carries the result of a breakdown calculation
type BreakdownMsg struct {
	Income    decimal.Decimal
	Breakdown *domain.TaxBreakdown
	Err       error
}
