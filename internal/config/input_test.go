package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/ontax/internal/calculation"
	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadDefault(t *testing.T) {
	rules, err := NewInputParser().LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, 2021, rules.Metadata.DataYear)
	assert.Equal(t, "ON", rules.Metadata.Province)
	assert.Len(t, rules.Federal.Brackets, 5)
	assert.Len(t, rules.Provincial.Brackets, 5)
	assert.Len(t, rules.ProvincialSurtax.Brackets, 2)
	assert.True(t, rules.Federal.Brackets[4].IsUnbounded())
	require.NotNil(t, rules.PensionPlan.MaxContribution)
	assert.Equal(t, "3166.45", rules.PensionPlan.MaxContribution.StringFixed(2))
	assert.Nil(t, rules.EmploymentInsurance.MaxContribution)
}

func TestInputParser_LoadDefault_MatchesBuiltInTables(t *testing.T) {
	rules, err := NewInputParser().LoadDefault()
	require.NoError(t, err)

	fromFile, err := calculation.NewCalculationEngineWithRules(*rules)
	require.NoError(t, err)
	builtIn := calculation.NewCalculationEngine()

	for _, income := range []int64{0, 9000, 45142, 61600, 113000, 250000, 1000000} {
		x := decimal.NewFromInt(income)
		a, err := fromFile.Breakdown(x)
		require.NoError(t, err)
		b, err := builtIn.Breakdown(x)
		require.NoError(t, err)

		for _, f := range domain.AllFields() {
			if f.IsRate() && income == 0 {
				continue
			}
			av, err := a.Value(f)
			require.NoError(t, err)
			bv, err := b.Value(f)
			require.NoError(t, err)
			assert.True(t, av.Equal(bv), "%s differs at income %d: %s vs %s", f, income, av, bv)
		}
	}
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	rules, err := NewInputParser().LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, rules, "Should return nil rules")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	path := writeRules(t, "invalid: yaml: content: [unclosed")

	rules, err := NewInputParser().LoadFromFile(path)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, rules, "Should return nil rules")
	assert.Contains(t, err.Error(), "failed to parse YAML", "Should have specific error message")
}

func TestInputParser_LoadFromFile_UnknownField(t *testing.T) {
	path := writeRules(t, `
federal:
  name: federal
  bracket:
    - { min: 0, rate: 0.1 }
`)
	_, err := NewInputParser().LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadFromFile_Empty(t *testing.T) {
	path := writeRules(t, "")
	_, err := NewInputParser().LoadFromFile(path)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestInputParser_LoadFromFile_MalformedTable(t *testing.T) {
	path := writeRules(t, `
metadata:
  data_year: 2021
federal:
  name: federal
  brackets:
    - { min: 0, max: 100, rate: 0.1 }
    - { min: 150, rate: 0.2 }
provincial:
  name: ontario
  brackets:
    - { min: 0, rate: 0.05 }
pension_plan:
  name: cpp
  earnings_ceiling: 100
  rate: 0.05
employment_insurance:
  name: ei
  earnings_ceiling: 100
  rate: 0.01
`)
	rules, err := NewInputParser().LoadFromFile(path)
	assert.Nil(t, rules)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "rules validation failed")
}

func TestInputParser_LoadFromFile_Valid(t *testing.T) {
	path := writeRules(t, `
metadata:
  data_year: 2022
  province: "ON"
federal:
  name: federal
  brackets:
    - { min: 0, max: 100, rate: 0.1 }
    - { min: 100, rate: 0.2 }
provincial:
  name: ontario
  brackets:
    - { min: 0, rate: 0.05 }
pension_plan:
  name: cpp
  earnings_ceiling: 100
  rate: 0.05
employment_insurance:
  name: ei
  earnings_ceiling: 100
  rate: 0.01
`)
	rules, err := NewInputParser().Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2022, rules.Metadata.DataYear)
	assert.Empty(t, rules.ProvincialSurtax.Brackets)

	engine, err := calculation.NewCalculationEngineWithRules(*rules)
	require.NoError(t, err)
	tax, err := engine.FederalTax(decimal.NewFromInt(150))
	require.NoError(t, err)
	assert.True(t, tax.Equal(decimal.NewFromInt(20)), "got %s", tax)
}

func TestInputParser_ValidateRules_DataYear(t *testing.T) {
	rules := calculation.DefaultRules2021()
	rules.Metadata.DataYear = 1800

	err := NewInputParser().ValidateRules(&rules)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
