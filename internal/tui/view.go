package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"firesim/internal/output"
)

// View renders the current scene.
func (m Model) View() string {
	var content string
	switch m.scene {
	case sceneLoading:
		content = subtitleStyle.Render("Loading " + m.inputPath + "...")
	case sceneRunning:
		content = m.viewRunning()
	case sceneResults:
		content = m.viewResults()
	case sceneError:
		content = errorStyle.Render("Error: " + m.err.Error())
	}

	title := titleStyle.Render("firesim")
	status := statusBarStyle.Render(m.statusLine())
	return lipgloss.JoinVertical(lipgloss.Left, title, "", content, "", status)
}

func (m Model) statusLine() string {
	switch m.scene {
	case sceneResults:
		return "up/down scroll table  r rerun  q quit"
	case sceneError:
		return "r retry  q quit"
	default:
		return "q quit"
	}
}

func (m Model) viewRunning() string {
	header := fmt.Sprintf("Running %d %s simulations (seed %d)", m.numSimulations, m.mode, m.baseSeed)
	return lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render(header),
		"",
		m.progress.ViewAs(m.percent),
	)
}

func (m Model) viewResults() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewMetrics(),
		"",
		m.years.View(),
	)
}

func (m Model) viewMetrics() string {
	var b strings.Builder

	rate := output.FormatPercentage(m.ensemble.SuccessRate)
	style := successStyle
	if m.ensemble.SuccessRate.InexactFloat64() < 0.8 {
		style = dangerStyle
	}
	b.WriteString(metricLabelStyle.Render("Success rate"))
	b.WriteString(style.Render(rate))
	b.WriteString("\n")

	write := func(label, value string) {
		b.WriteString(metricLabelStyle.Render(label))
		b.WriteString(metricValueStyle.Render(value))
		b.WriteString("\n")
	}
	if m.metrics.RetirementAge != nil {
		write("Retirement age", fmt.Sprintf("%d", *m.metrics.RetirementAge))
	}
	if m.metrics.PortfolioAtRetirement != nil {
		write("Portfolio at retirement", output.FormatCurrency(*m.metrics.PortfolioAtRetirement))
	}
	if m.metrics.BankruptcyAge != nil {
		write("Depleted at age", fmt.Sprintf("%d", *m.metrics.BankruptcyAge))
	}
	write("Median final balance", output.FormatCurrency(m.ensemble.FinalBalances.Median))
	write("Lifetime taxes", output.FormatCurrency(m.metrics.LifetimeTaxes))

	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}
