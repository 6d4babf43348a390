package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/ontax/internal/calculation"
	"github.com/rgehrsitz/ontax/internal/domain"
)

type keyMap struct {
	Compute key.Binding
	Quit    key.Binding
}

var defaultKeys = keyMap{
	Compute: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calculate")),
	Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

// Model is the interactive breakdown screen
type Model struct {
	engine *calculation.CalculationEngine
	input  textinput.Model
	keys   keyMap

	breakdown *domain.TaxBreakdown
	err       error

	width  int
	height int
}

// NewModel creates a model that calculates with engine
func NewModel(engine *calculation.CalculationEngine) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g., 113000"
	ti.Prompt = "Annual income: $"
	ti.CharLimit = 15
	ti.Width = 20
	ti.Focus()

	return Model{
		engine: engine,
		input:  ti,
		keys:   defaultKeys,
		width:  80,
		height: 24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// calculateCmd returns a command that computes the breakdown for raw
func calculateCmd(engine *calculation.CalculationEngine, raw string) tea.Cmd {
	return func() tea.Msg {
		raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
		income, err := domain.ParseAmount("income", raw)
		if err != nil {
			return BreakdownMsg{Err: err}
		}

		b, err := engine.Breakdown(income)
		return BreakdownMsg{Income: income, Breakdown: b, Err: err}
	}
}
