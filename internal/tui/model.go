// Package tui is an interactive terminal frontend: load an input file, run
// the ensemble, browse key metrics and the year-by-year table.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"firesim/internal/analysis"
	"firesim/internal/config"
	"firesim/internal/domain"
	"firesim/internal/simulation"
)

type scene int

const (
	sceneLoading scene = iota
	sceneRunning
	sceneResults
	sceneError
)

// Model is the complete TUI state.
type Model struct {
	scene  scene
	width  int
	height int

	inputPath      string
	numSimulations int
	mode           simulation.Mode
	baseSeed       int64

	inputs   *domain.SimulatorInputs
	ensemble *simulation.MultiResult
	metrics  analysis.KeyMetrics

	progress progress.Model
	percent  float64
	years    table.Model

	err error
}

// NewModel builds the initial TUI state for an input file.
func NewModel(inputPath string, numSimulations int, mode simulation.Mode, baseSeed int64) Model {
	return Model{
		scene:          sceneLoading,
		inputPath:      inputPath,
		numSimulations: numSimulations,
		mode:           mode,
		baseSeed:       baseSeed,
		progress:       progress.New(progress.WithDefaultGradient()),
		width:          80,
		height:         24,
	}
}

// Init kicks off loading the input file.
func (m Model) Init() tea.Cmd {
	return loadInputsCmd(m.inputPath)
}

// inputsLoadedMsg delivers parsed inputs or the parse failure.
type inputsLoadedMsg struct {
	inputs *domain.SimulatorInputs
	err    error
}

// ensembleDoneMsg delivers the finished ensemble.
type ensembleDoneMsg struct {
	ensemble *simulation.MultiResult
	err      error
}

func loadInputsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		inputs, err := config.NewInputParser().LoadFromFile(path)
		return inputsLoadedMsg{inputs: inputs, err: err}
	}
}

func runEnsembleCmd(inputs *domain.SimulatorInputs, cfg simulation.MultiConfig) tea.Cmd {
	return func() tea.Msg {
		engine, err := simulation.NewMultiEngine(inputs, cfg)
		if err != nil {
			return ensembleDoneMsg{err: err}
		}
		ensemble, err := engine.Run(context.Background())
		return ensembleDoneMsg{ensemble: ensemble, err: err}
	}
}

// newYearTable builds the year-by-year table from the median trace.
func newYearTable(r *simulation.Result, height int) table.Model {
	columns := []table.Column{
		{Title: "Age", Width: 5},
		{Title: "Year", Width: 6},
		{Title: "Phase", Width: 13},
		{Title: "Income", Width: 12},
		{Title: "Expenses", Width: 12},
		{Title: "Taxes", Width: 10},
		{Title: "Balance", Width: 14},
	}
	var rows []table.Row
	for _, row := range analysis.YearlyTable(r) {
		rows = append(rows, table.Row{
			strconv.Itoa(row.Age),
			strconv.Itoa(row.Year),
			string(row.Phase),
			row.Income.StringFixed(0),
			row.Expenses.StringFixed(0),
			row.Taxes.StringFixed(0),
			row.Balance.StringFixed(0),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	return t
}
