// Package output renders simulation results for humans: console text,
// CSV, JSON, and a PDF report.
package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"firesim/internal/analysis"
	"firesim/internal/simulation"
)

// Report bundles everything a formatter needs. Either Result or Ensemble
// is set; Metrics is always derived from the representative trace.
type Report struct {
	Result      *simulation.Result      `json:"result,omitempty"`
	Ensemble    *simulation.MultiResult `json:"ensemble,omitempty"`
	Metrics     analysis.KeyMetrics     `json:"metrics"`
	GeneratedAt time.Time               `json:"generatedAt"`
}

// NewReport wraps a single simulation trace for rendering.
func NewReport(r *simulation.Result) *Report {
	return &Report{
		Result:      r,
		Metrics:     analysis.ComputeKeyMetrics(r),
		GeneratedAt: time.Now(),
	}
}

// NewEnsembleReport wraps a Monte Carlo ensemble. The median-sorted middle
// member supplies the key metrics.
func NewEnsembleReport(m *simulation.MultiResult) *Report {
	rep := &Report{
		Ensemble:    m,
		GeneratedAt: time.Now(),
	}
	if m != nil && len(m.Results) > 0 {
		sorted := analysis.SortResults(m.Results, analysis.SortFinalPortfolio)
		rep.Metrics = analysis.ComputeKeyMetrics(sorted[len(sorted)/2])
	}
	return rep
}

// Formatter renders a report into one output format.
type Formatter interface {
	Name() string
	Format(rep *Report) ([]byte, error)
}

// Formatters lists the available formatters by name.
func Formatters() map[string]Formatter {
	out := map[string]Formatter{}
	for _, f := range []Formatter{ConsoleFormatter{}, CSVFormatter{}, JSONFormatter{}, PDFFormatter{}} {
		out[f.Name()] = f
	}
	return out
}

// Render renders the report in the named format.
func Render(rep *Report, format string) ([]byte, error) {
	f, ok := Formatters()[format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return f.Format(rep)
}

// JSONFormatter emits the full report as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(rep *Report) ([]byte, error) {
	return json.MarshalIndent(rep, "", "  ")
}

// FormatCurrency formats a decimal as currency.
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal fraction as a percentage.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
