package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ontax/internal/domain"
	"github.com/rgehrsitz/ontax/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	sections := []string{
		TitleStyle.Render("Ontario Income Tax"),
		m.input.View(),
	}

	switch {
	case m.err != nil:
		sections = append(sections, ErrorStyle.Render("Error: "+m.err.Error()))
	case m.breakdown != nil:
		sections = append(sections, BorderStyle.Render(m.renderBreakdown()))
	default:
		sections = append(sections, SubtitleStyle.Render("Enter an income and press enter."))
	}

	sections = append(sections, m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderBreakdown() string {
	b := m.breakdown
	var rows []string
	rows = append(rows, m.row("Income", output.FormatCurrency(b.Income), false))
	for _, f := range output.DisplayOrder() {
		rows = append(rows, m.row(output.FieldLabel(f), output.FormatFieldValue(b, f), f == domain.FieldNetPay))
	}
	return strings.Join(rows, "\n")
}

func (m Model) row(label, value string, highlight bool) string {
	style := MetricValueStyle
	if highlight {
		style = HighlightValueStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, MetricLabelStyle.Render(label), style.Render(value))
}

func (m Model) renderHelp() string {
	parts := []string{
		m.keys.Compute.Help().Key + " " + m.keys.Compute.Help().Desc,
		m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc,
	}
	return HelpStyle.Render(strings.Join(parts, " • "))
}
