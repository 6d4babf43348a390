package calculation

import (
	"testing"

	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvincialSurtaxCalculator_CalculateSurtax(t *testing.T) {
	calc, err := NewProvincialSurtaxCalculator(OntarioSurtax2021())
	require.NoError(t, err)

	tests := []struct {
		name       string
		taxPayable string
		expected   string
	}{
		{"no tax payable", "0", "0"},
		{"below first threshold", "4874", "0"},
		{"between thresholds", "5000", "25.2"},
		// both tiers apply to their full excess: 2126*0.20 + 763*0.36
		{"above second threshold", "7000", "699.88"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.CalculateSurtax(dec(tt.taxPayable))
			require.NoError(t, err)
			assertDecimalEqual(t, tt.expected, got)
		})
	}
}

func TestProvincialSurtaxCalculator_NegativeTaxPayable(t *testing.T) {
	calc, err := NewProvincialSurtaxCalculator(OntarioSurtax2021())
	require.NoError(t, err)

	_, err = calc.CalculateSurtax(dec("-10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewProvincialSurtaxCalculator_RejectsUnsortedThresholds(t *testing.T) {
	_, err := NewProvincialSurtaxCalculator(domain.SurtaxTable{
		Name: "unsorted",
		Brackets: []domain.SurtaxBracket{
			{Threshold: decimal.NewFromInt(6237), Rate: dec("0.36")},
			{Threshold: decimal.NewFromInt(4874), Rate: dec("0.20")},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestNewFederalTaxCalculator_RejectsMalformedTable(t *testing.T) {
	table := FederalBrackets2021()
	table.Brackets = table.Brackets[:len(table.Brackets)-1]

	calc, err := NewFederalTaxCalculator(table)
	assert.Nil(t, calc)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestNewProvincialTaxCalculator(t *testing.T) {
	calc, err := NewProvincialTaxCalculator(OntarioBrackets2021())
	require.NoError(t, err)

	got, err := calc.CalculateTax(decimal.NewFromInt(113000))
	require.NoError(t, err)
	assertDecimalEqual(t, "8395.7693", got)
}
