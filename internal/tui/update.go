package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"firesim/internal/analysis"
	"firesim/internal/simulation"
)

// Update handles every message. State moves loading -> running -> results,
// or to the error scene from anywhere.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.scene == sceneResults || m.scene == sceneError {
				m.scene = sceneLoading
				m.err = nil
				return m, loadInputsCmd(m.inputPath)
			}
		}
		if m.scene == sceneResults {
			var cmd tea.Cmd
			m.years, cmd = m.years.Update(msg)
			return m, cmd
		}
		return m, nil

	case inputsLoadedMsg:
		if msg.err != nil {
			m.scene = sceneError
			m.err = msg.err
			return m, nil
		}
		m.inputs = msg.inputs
		m.scene = sceneRunning
		m.percent = 0
		return m, tea.Batch(
			runEnsembleCmd(m.inputs, simulation.MultiConfig{
				NumSimulations: m.numSimulations,
				BaseSeed:       m.baseSeed,
				Mode:           m.mode,
			}),
			tickCmd(),
		)

	case tickMsg:
		if m.scene != sceneRunning {
			return m, nil
		}
		// Ease toward full; the done message snaps it there.
		m.percent += (1 - m.percent) * 0.12
		return m, tickCmd()

	case ensembleDoneMsg:
		if msg.err != nil {
			m.scene = sceneError
			m.err = msg.err
			return m, nil
		}
		m.ensemble = msg.ensemble
		m.percent = 1
		sorted := analysis.SortResults(m.ensemble.Results, analysis.SortFinalPortfolio)
		median := sorted[len(sorted)/2]
		m.metrics = analysis.ComputeKeyMetrics(median)
		m.years = newYearTable(median, tableHeight(m.height))
		m.scene = sceneResults
		return m, nil
	}
	return m, nil
}

// tableHeight keeps the year table inside the terminal alongside the
// metrics panel and status bar.
func tableHeight(terminal int) int {
	h := terminal - 16
	if h < 5 {
		h = 5
	}
	return h
}

// tickMsg drives the progress animation while the ensemble runs.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
