package analysis

import (
	"github.com/shopspring/decimal"

	"firesim/internal/domain"
	"firesim/internal/simulation"
)

// YearRow is one row of the year-by-year breakdown table.
type YearRow struct {
	Age           int             `json:"age"`
	Year          int             `json:"year"`
	Phase         domain.Phase    `json:"phase"`
	Income        decimal.Decimal `json:"income"`
	Expenses      decimal.Decimal `json:"expenses"`
	Taxes         decimal.Decimal `json:"taxes"`
	Contributions decimal.Decimal `json:"contributions"`
	Withdrawals   decimal.Decimal `json:"withdrawals"`
	Balance       decimal.Decimal `json:"balance"`
	NetWorth      decimal.Decimal `json:"netWorth"`
}

// YearlyTable flattens a trace into table rows, skipping the initial
// snapshot row since it has no flows.
func YearlyTable(r *simulation.Result) []YearRow {
	if r == nil || len(r.Data) < 2 {
		return nil
	}
	rows := make([]YearRow, 0, len(r.Data)-1)
	for _, dp := range r.Data[1:] {
		rows = append(rows, YearRow{
			Age:           dp.Age,
			Year:          dp.Year,
			Phase:         dp.Phase,
			Income:        dp.GrossIncome,
			Expenses:      dp.Expenses,
			Taxes:         dp.Taxes,
			Contributions: dp.Contributions,
			Withdrawals:   dp.Withdrawals,
			Balance:       dp.TotalBalance,
			NetWorth:      dp.NetWorth,
		})
	}
	return rows
}

// EnsembleRow summarizes one ensemble member for the drill-down table.
type EnsembleRow struct {
	Seed           int64            `json:"seed"`
	Success        bool             `json:"success"`
	FinalBalance   decimal.Decimal  `json:"finalBalance"`
	RetirementAge  *int             `json:"retirementAge,omitempty"`
	BankruptcyAge  *int             `json:"bankruptcyAge,omitempty"`
	AvgStockReturn *decimal.Decimal `json:"avgStockReturn,omitempty"`
}

// EnsembleTable lists every member of an ensemble ordered by the sort
// mode, worst first.
func EnsembleTable(m *simulation.MultiResult, mode SortMode) []EnsembleRow {
	if m == nil {
		return nil
	}
	rows := make([]EnsembleRow, 0, len(m.Results))
	for _, r := range SortResults(m.Results, mode) {
		if r == nil {
			continue
		}
		row := EnsembleRow{
			Seed:          r.Context.Seed,
			Success:       r.Context.Success,
			FinalBalance:  r.FinalBalance(),
			RetirementAge: r.Context.RetirementAge,
			BankruptcyAge: r.Context.BankruptcyAge,
		}
		if avg, ok := averageStockReturn(r); ok {
			row.AvgStockReturn = &avg
		}
		rows = append(rows, row)
	}
	return rows
}
