package output

import (
	"bytes"
	"fmt"
	"strings"

	"firesim/internal/analysis"
)

// ConsoleFormatter renders a plain-text report for terminal display.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(rep *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 78))
	fmt.Fprintln(&buf, "RETIREMENT SIMULATION REPORT")
	fmt.Fprintln(&buf, strings.Repeat("=", 78))
	fmt.Fprintln(&buf)

	writeKeyMetrics(&buf, rep.Metrics)

	if rep.Ensemble != nil {
		writeEnsembleSummary(&buf, rep)
	}
	if rep.Result != nil {
		writeYearlyTable(&buf, rep)
	}
	return buf.Bytes(), nil
}

func writeKeyMetrics(buf *bytes.Buffer, m analysis.KeyMetrics) {
	fmt.Fprintln(buf, "KEY METRICS")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	if m.RetirementAge != nil {
		fmt.Fprintf(buf, "Retirement Age:        %d\n", *m.RetirementAge)
	}
	if m.YearsToRetirement != nil {
		fmt.Fprintf(buf, "Years to Retirement:   %d\n", *m.YearsToRetirement)
	}
	if m.PortfolioAtRetirement != nil {
		fmt.Fprintf(buf, "Portfolio at Retire:   %s\n", FormatCurrency(*m.PortfolioAtRetirement))
	}
	if m.RequiredPortfolio != nil {
		fmt.Fprintf(buf, "Required Portfolio:    %s\n", FormatCurrency(*m.RequiredPortfolio))
	}
	if m.ProgressToRetirement != nil {
		fmt.Fprintf(buf, "Progress to Target:    %s\n", FormatPercentage(*m.ProgressToRetirement))
	}
	if m.BankruptcyAge != nil {
		fmt.Fprintf(buf, "Portfolio Depleted At: %d\n", *m.BankruptcyAge)
	}
	fmt.Fprintf(buf, "Final Portfolio:       %s\n", FormatCurrency(m.FinalPortfolio))
	fmt.Fprintf(buf, "Lifetime Taxes:        %s\n", FormatCurrency(m.LifetimeTaxes))
	if m.LifetimePenalties.IsPositive() {
		fmt.Fprintf(buf, "Lifetime Penalties:    %s\n", FormatCurrency(m.LifetimePenalties))
	}
	fmt.Fprintf(buf, "Plan Succeeds:         %t\n", m.Success)
	fmt.Fprintln(buf)
}

func writeEnsembleSummary(buf *bytes.Buffer, rep *Report) {
	e := rep.Ensemble
	fmt.Fprintln(buf, "MONTE CARLO SUMMARY")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	fmt.Fprintf(buf, "Simulations:    %d (%s mode, base seed %d)\n", e.NumSimulations, e.Mode, e.BaseSeed)
	fmt.Fprintf(buf, "Success Rate:   %s\n", FormatPercentage(e.SuccessRate))
	fmt.Fprintf(buf, "Final Median:   %s\n", FormatCurrency(e.FinalBalances.Median))
	fmt.Fprintf(buf, "Final Mean:     %s\n", FormatCurrency(e.FinalBalances.Mean))
	fmt.Fprintf(buf, "Final Range:    %s to %s\n", FormatCurrency(e.FinalBalances.Min), FormatCurrency(e.FinalBalances.Max))
	fmt.Fprintln(buf)

	if len(e.Bands) > 0 {
		fmt.Fprintln(buf, "PORTFOLIO PERCENTILES")
		fmt.Fprintf(buf, "%-5s %14s %14s %14s %14s %14s\n", "Age", "P10", "P25", "P50", "P75", "P90")
		for _, b := range e.Bands {
			fmt.Fprintf(buf, "%-5d %14s %14s %14s %14s %14s\n",
				b.Age,
				b.P10.StringFixed(0), b.P25.StringFixed(0), b.P50.StringFixed(0),
				b.P75.StringFixed(0), b.P90.StringFixed(0))
		}
		fmt.Fprintln(buf)
	}
}

func writeYearlyTable(buf *bytes.Buffer, rep *Report) {
	rows := analysis.YearlyTable(rep.Result)
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(buf, "YEAR BY YEAR")
	fmt.Fprintf(buf, "%-5s %-6s %-13s %12s %12s %12s %12s %14s\n",
		"Age", "Year", "Phase", "Income", "Expenses", "Taxes", "Withdrawn", "Balance")
	for _, row := range rows {
		fmt.Fprintf(buf, "%-5d %-6d %-13s %12s %12s %12s %12s %14s\n",
			row.Age, row.Year, row.Phase,
			row.Income.StringFixed(0), row.Expenses.StringFixed(0),
			row.Taxes.StringFixed(0), row.Withdrawals.StringFixed(0),
			row.Balance.StringFixed(0))
	}
	fmt.Fprintln(buf)
}
