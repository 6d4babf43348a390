package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/ontax/internal/calculation"
	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeIncome(t *testing.T, m Model, s string) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	next, ok := updated.(Model)
	require.True(t, ok)
	return next
}

func pressEnter(t *testing.T, m Model) Model {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	result, ok := msg.(BreakdownMsg)
	require.True(t, ok, "enter should produce a BreakdownMsg, got %T", msg)

	updated, _ = updated.Update(result)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next
}

func TestModel_ComputesBreakdown(t *testing.T) {
	m := NewModel(calculation.NewCalculationEngine())
	m = typeIncome(t, m, "113000")
	assert.Equal(t, "113000", m.input.Value())

	m = pressEnter(t, m)
	require.NoError(t, m.err)
	require.NotNil(t, m.breakdown)
	assert.Equal(t, "19220.5", m.breakdown.FederalTax.String())

	view := m.View()
	assert.Contains(t, view, "$19220.50")
	assert.Contains(t, view, "$113000.00")
}

func TestModel_AcceptsThousandsSeparators(t *testing.T) {
	m := NewModel(calculation.NewCalculationEngine())
	m = typeIncome(t, m, "113,000")
	m = pressEnter(t, m)

	require.NoError(t, m.err)
	require.NotNil(t, m.breakdown)
	assert.Equal(t, "113000", m.breakdown.Income.String())
}

func TestModel_InvalidIncome(t *testing.T) {
	m := NewModel(calculation.NewCalculationEngine())
	m = typeIncome(t, m, "abc")
	m = pressEnter(t, m)

	assert.ErrorIs(t, m.err, domain.ErrInvalidInput)
	assert.Nil(t, m.breakdown)
	assert.Contains(t, m.View(), "Error:")
}

func TestModel_IncomeOutOfRange(t *testing.T) {
	m := NewModel(calculation.NewCalculationEngine())
	m = typeIncome(t, m, "1e1000000")
	m = pressEnter(t, m)

	assert.ErrorIs(t, m.err, domain.ErrInvalidInput)
	assert.Nil(t, m.breakdown)
}

func TestModel_NegativeIncome(t *testing.T) {
	m := NewModel(calculation.NewCalculationEngine())
	m = typeIncome(t, m, "-5")
	m = pressEnter(t, m)

	assert.ErrorIs(t, m.err, domain.ErrInvalidInput)
}

func TestModel_ErrorClearedOnSuccess(t *testing.T) {
	m := NewModel(calculation.NewCalculationEngine())
	m = typeIncome(t, m, "x")
	m = pressEnter(t, m)
	require.Error(t, m.err)

	m.input.SetValue("50000")
	m = pressEnter(t, m)
	assert.NoError(t, m.err)
	assert.NotNil(t, m.breakdown)
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(calculation.NewCalculationEngine())

	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := m.Update(tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_WindowSize(t *testing.T) {
	m := NewModel(calculation.NewCalculationEngine())
	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)

	next := updated.(Model)
	assert.Equal(t, 120, next.width)
	assert.Equal(t, 40, next.height)
}

func TestModel_InitialView(t *testing.T) {
	m := NewModel(calculation.NewCalculationEngine())
	view := m.View()
	assert.Contains(t, view, "Ontario Income Tax")
	assert.Contains(t, view, "press enter")
	assert.NotNil(t, m.Init())
}
