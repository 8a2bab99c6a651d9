package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"firesim/internal/analysis"
)

// CSVFormatter emits the year-by-year table (single run) or the ensemble
// member table (Monte Carlo), one row per record.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(rep *Report) ([]byte, error) {
	if rep.Result != nil {
		return yearlyCSV(rep)
	}
	if rep.Ensemble != nil {
		return ensembleCSV(rep)
	}
	return nil, fmt.Errorf("report has no data")
}

func yearlyCSV(rep *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Age", "Year", "Phase", "Income", "Expenses", "Taxes", "Contributions", "Withdrawals", "Balance", "NetWorth"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range analysis.YearlyTable(rep.Result) {
		record := []string{
			strconv.Itoa(row.Age),
			strconv.Itoa(row.Year),
			string(row.Phase),
			row.Income.StringFixed(2),
			row.Expenses.StringFixed(2),
			row.Taxes.StringFixed(2),
			row.Contributions.StringFixed(2),
			row.Withdrawals.StringFixed(2),
			row.Balance.StringFixed(2),
			row.NetWorth.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func ensembleCSV(rep *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Seed", "Success", "FinalBalance", "RetirementAge", "BankruptcyAge", "AvgStockReturn"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range analysis.EnsembleTable(rep.Ensemble, analysis.SortFinalPortfolio) {
		record := []string{
			strconv.FormatInt(row.Seed, 10),
			strconv.FormatBool(row.Success),
			row.FinalBalance.StringFixed(2),
			optionalInt(row.RetirementAge),
			optionalInt(row.BankruptcyAge),
			"",
		}
		if row.AvgStockReturn != nil {
			record[5] = row.AvgStockReturn.StringFixed(4)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
