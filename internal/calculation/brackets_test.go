package calculation

import (
	"testing"

	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimalEqual(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), append([]interface{}{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

func TestEvaluateBrackets_Federal(t *testing.T) {
	tests := []struct {
		name     string
		income   string
		expected string
	}{
		{"zero income", "0", "0"},
		{"below first bracket", "13000", "0"},
		{"first bracket edge", "13808", "0"},
		{"inside first bracket", "20000", "928.8"},
		{"top of first bracket", "49020", "5281.8"},
		{"third bracket", "113000", "19220.5"},
		{"top of fourth bracket", "216511", "48069.35"},
		{"unbounded bracket", "300000", "75620.72"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateBrackets(FederalBrackets2021(), dec(tt.income))
			require.NoError(t, err)
			assertDecimalEqual(t, tt.expected, got)
		})
	}
}

func TestEvaluateBrackets_Ontario(t *testing.T) {
	tests := []struct {
		name     string
		income   string
		expected string
	}{
		{"zero income", "0", "0"},
		{"below first bracket", "10000", "0"},
		{"top of first bracket", "45142", "1730.231"},
		{"second bracket", "50000", "2174.738"},
		{"third bracket", "113000", "8395.7693"},
		{"top of fourth bracket", "220000", "21036.9693"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateBrackets(OntarioBrackets2021(), dec(tt.income))
			require.NoError(t, err)
			assertDecimalEqual(t, tt.expected, got)
		})
	}
}

func TestEvaluateBrackets_NegativeIncome(t *testing.T) {
	_, err := EvaluateBrackets(FederalBrackets2021(), dec("-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEvaluateBrackets_Monotonic(t *testing.T) {
	for _, table := range []domain.BracketTable{FederalBrackets2021(), OntarioBrackets2021()} {
		prev := decimal.Zero
		for income := int64(0); income <= 400000; income += 1750 {
			got, err := EvaluateBrackets(table, decimal.NewFromInt(income))
			require.NoError(t, err)
			assert.True(t, got.GreaterThanOrEqual(prev), "%s tax fell at income %d", table.Name, income)
			prev = got
		}
	}
}

func TestEvaluateBrackets_ContinuousAtBoundaries(t *testing.T) {
	step := dec("0.01")
	for _, table := range []domain.BracketTable{FederalBrackets2021(), OntarioBrackets2021()} {
		for i, b := range table.Brackets {
			if b.Max == nil {
				continue
			}
			atEdge, err := EvaluateBrackets(table, *b.Max)
			require.NoError(t, err)
			justAbove, err := EvaluateBrackets(table, b.Max.Add(step))
			require.NoError(t, err)
			justBelow, err := EvaluateBrackets(table, b.Max.Sub(step))
			require.NoError(t, err)

			next := table.Brackets[i+1]
			assert.True(t, justAbove.Sub(atEdge).Equal(step.Mul(next.Rate)),
				"%s bracket %d: jump above edge", table.Name, i)
			assert.True(t, atEdge.Sub(justBelow).Equal(step.Mul(b.Rate)),
				"%s bracket %d: jump below edge", table.Name, i)
		}
	}
}

func TestBracketTable_Validate(t *testing.T) {
	upTo := func(v int64) *decimal.Decimal { return decimalPtr(decimal.NewFromInt(v)) }

	tests := []struct {
		name    string
		table   domain.BracketTable
		wantErr string
	}{
		{
			name:  "valid built-in federal",
			table: FederalBrackets2021(),
		},
		{
			name:    "empty",
			table:   domain.BracketTable{Name: "empty"},
			wantErr: "is empty",
		},
		{
			name: "gap between brackets",
			table: domain.BracketTable{Name: "gap", Brackets: []domain.TaxBracket{
				{Min: decimal.Zero, Max: upTo(100), Rate: dec("0.1")},
				{Min: decimal.NewFromInt(200), Rate: dec("0.2")},
			}},
			wantErr: "ends at 100 but bracket 1 starts at 200",
		},
		{
			name: "last bracket bounded",
			table: domain.BracketTable{Name: "capped", Brackets: []domain.TaxBracket{
				{Min: decimal.Zero, Max: upTo(100), Rate: dec("0.1")},
			}},
			wantErr: "must be unbounded",
		},
		{
			name: "unbounded in the middle",
			table: domain.BracketTable{Name: "middle", Brackets: []domain.TaxBracket{
				{Min: decimal.Zero, Rate: dec("0.1")},
				{Min: decimal.NewFromInt(100), Rate: dec("0.2")},
			}},
			wantErr: "unbounded but not last",
		},
		{
			name: "descending",
			table: domain.BracketTable{Name: "desc", Brackets: []domain.TaxBracket{
				{Min: decimal.NewFromInt(100), Max: upTo(50), Rate: dec("0.1")},
				{Min: decimal.NewFromInt(50), Rate: dec("0.2")},
			}},
			wantErr: "<= min",
		},
		{
			name: "rate above one",
			table: domain.BracketTable{Name: "rate", Brackets: []domain.TaxBracket{
				{Min: decimal.Zero, Rate: dec("1.5")},
			}},
			wantErr: "must be between 0 and 1",
		},
		{
			name: "negative start",
			table: domain.BracketTable{Name: "neg", Brackets: []domain.TaxBracket{
				{Min: decimal.NewFromInt(-1), Rate: dec("0.1")},
			}},
			wantErr: "starts below zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
