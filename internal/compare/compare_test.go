package compare

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/ontax/internal/calculation"
	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compareIncomes(t *testing.T, base int64, alts ...int64) *ComparisonSet {
	t.Helper()
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	incomes := make([]decimal.Decimal, 0, len(alts))
	for _, a := range alts {
		incomes = append(incomes, decimal.NewFromInt(a))
	}
	compSet, err := engine.Compare(context.Background(), decimal.NewFromInt(base), incomes)
	require.NoError(t, err)
	return compSet
}

func TestCompareEngine_Compare(t *testing.T) {
	compSet := compareIncomes(t, 50000, 113000)

	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, 2021, compSet.DataYear)
	assert.Equal(t, "$50000.00", compSet.BaseResult.Label)
	assert.Equal(t, "39018.312", compSet.BaseResult.NetPay.String())

	require.Len(t, compSet.AlternativeResults, 1)
	alt := compSet.AlternativeResults[0]
	assert.Equal(t, "63000", alt.IncomeDiffFromBase.String())
	assert.Equal(t, "21440.342108", alt.TaxDiffFromBase.String())
	assert.Equal(t, "40827.917892", alt.NetPayDiffFromBase.String())
	require.NotNil(t, alt.KeptRate)
	assert.Equal(t, "0.6481", alt.KeptRate.StringFixed(4))

	// net pay delta must equal income delta minus tax and deduction deltas
	assert.True(t, alt.NetPayDiffFromBase.Equal(
		alt.IncomeDiffFromBase.Sub(alt.TaxDiffFromBase).Sub(alt.DeductionsDiffFromBase)))
}

func TestCompareEngine_SameIncomeHasNoKeptRate(t *testing.T) {
	compSet := compareIncomes(t, 50000, 50000)
	alt := compSet.AlternativeResults[0]
	assert.Nil(t, alt.KeptRate)
	assert.True(t, alt.NetPayDiffFromBase.IsZero())
}

func TestCompareEngine_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	_, err := engine.Compare(context.Background(), decimal.NewFromInt(-1), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = engine.Compare(context.Background(), decimal.NewFromInt(1000), []decimal.Decimal{decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Compare(ctx, decimal.NewFromInt(1000), []decimal.Decimal{decimal.NewFromInt(2000)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateRecommendations(t *testing.T) {
	compSet := compareIncomes(t, 50000, 60000, 113000, 40000)

	require.Len(t, compSet.Recommendations, 2)
	assert.Contains(t, compSet.Recommendations[0], "Highest Net Pay: $113000.00")
	assert.Contains(t, compSet.Recommendations[1], "Lowest Kept Share")

	assert.Empty(t, GenerateRecommendations(&ComparisonSet{}))
}

func TestTableFormatter_Format(t *testing.T) {
	compSet := compareIncomes(t, 50000, 113000)
	result := (&TableFormatter{}).Format(compSet)

	assert.Contains(t, result, "INCOME COMPARISON (2021)")
	assert.Contains(t, result, "Base Income: $50000.00")
	assert.Contains(t, result, "$50000.00 *")
	assert.Contains(t, result, "Net Pay:     +$40827.92")
	assert.Contains(t, result, "Kept Share:  64.8%")
	assert.Contains(t, result, "SUMMARY")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	compSet := compareIncomes(t, 50000, 113000, 40000)
	result := (&TableFormatter{}).FormatCompact(compSet)

	assert.True(t, strings.HasPrefix(result, "Base: $50000.00 | "))
	assert.Contains(t, result, "$113000.00: net +$40827.92")
	assert.Contains(t, result, "$40000.00: net -$")
}

func TestCSVFormatter_Format(t *testing.T) {
	compSet := compareIncomes(t, 0, 113000)
	out, err := (&CSVFormatter{}).Format(compSet)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Income", records[0][0])

	base := records[1]
	assert.Equal(t, "base", base[1])
	assert.Equal(t, "", base[5], "rate undefined at zero income")

	alt := records[2]
	assert.Equal(t, "113000.00", alt[0])
	assert.Equal(t, "alternative", alt[1])
	assert.Equal(t, "79846.23", alt[9])
}

func TestJSONFormatter_Format(t *testing.T) {
	compSet := compareIncomes(t, 50000, 113000)

	for _, pretty := range []bool{true, false} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(compSet)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "50000", decoded["baseIncome"])
		assert.Len(t, decoded["alternativeResults"], 1)
		assert.Equal(t, pretty, strings.Contains(out, "\n  "))
	}
}
