// Package analysis derives presentation-ready metrics, chart series, and
// table rows from simulation traces. Everything here is a pure function of
// recorded results; re-deriving from the same trace is idempotent.
package analysis

import (
	"github.com/shopspring/decimal"

	"firesim/internal/domain"
	"firesim/internal/simulation"
)

// KeyMetrics summarizes one simulation trace. Pointer fields are nil when
// the underlying milestone never happened.
type KeyMetrics struct {
	RetirementAge         *int             `json:"retirementAge,omitempty"`
	YearsToRetirement     *int             `json:"yearsToRetirement,omitempty"`
	BankruptcyAge         *int             `json:"bankruptcyAge,omitempty"`
	PortfolioAtRetirement *decimal.Decimal `json:"portfolioAtRetirement,omitempty"`
	FinalPortfolio        decimal.Decimal  `json:"finalPortfolio"`
	LifetimeTaxes         decimal.Decimal  `json:"lifetimeTaxes"`
	LifetimePenalties     decimal.Decimal  `json:"lifetimePenalties"`
	RequiredPortfolio     *decimal.Decimal `json:"requiredPortfolio,omitempty"`
	ProgressToRetirement  *decimal.Decimal `json:"progressToRetirement,omitempty"`
	Success               bool             `json:"success"`
}

// ComputeKeyMetrics derives the headline numbers from one trace. An empty
// trace yields zero values, never a panic.
func ComputeKeyMetrics(r *simulation.Result) KeyMetrics {
	m := KeyMetrics{}
	if r == nil || len(r.Data) == 0 {
		return m
	}

	m.Success = r.Context.Success
	m.BankruptcyAge = r.Context.BankruptcyAge
	m.FinalPortfolio = r.FinalBalance()

	for _, dp := range r.Data {
		m.LifetimeTaxes = m.LifetimeTaxes.Add(dp.Taxes)
		m.LifetimePenalties = m.LifetimePenalties.Add(dp.Penalties)
	}

	if ra := r.Context.RetirementAge; ra != nil {
		m.RetirementAge = ra
		years := *ra - r.Context.StartAge
		m.YearsToRetirement = &years
		for _, dp := range r.Data {
			if dp.Age == *ra {
				balance := dp.TotalBalance
				m.PortfolioAtRetirement = &balance
				break
			}
		}
	}

	if required := requiredPortfolio(r); required != nil {
		m.RequiredPortfolio = required
		if required.IsPositive() {
			progress := r.Data[0].TotalBalance.Div(*required)
			m.ProgressToRetirement = &progress
		}
	}
	return m
}

// requiredPortfolio is annual expenses over the safe withdrawal rate,
// using the first simulated year's expenses as the spending level. Nil
// when no SWR is configured or the trace has no simulated years.
func requiredPortfolio(r *simulation.Result) *decimal.Decimal {
	if r.Context.Inputs == nil || len(r.Data) < 2 {
		return nil
	}
	swr := r.Context.Inputs.Timeline.Retirement.SafeWithdrawalRate
	if !swr.IsPositive() {
		return nil
	}
	required := simulation.RequiredPortfolio(r.Data[1].Expenses, swr)
	return &required
}

// averageStockReturn is the mean sampled stock return across the simulated
// years of a trace, skipping the initial snapshot. False when the trace
// has no simulated years.
func averageStockReturn(r *simulation.Result) (decimal.Decimal, bool) {
	if r == nil || len(r.Data) < 2 {
		return decimal.Zero, false
	}
	sum := decimal.Zero
	for _, dp := range r.Data[1:] {
		sum = sum.Add(dp.Rates.Stocks)
	}
	return sum.Div(decimal.NewFromInt(int64(len(r.Data) - 1))), true
}

// earlyRetirementWindow is how many years of returns after retirement feed
// the sequence-risk sort.
const earlyRetirementWindow = 5

// earlyRetirementStockReturn is the mean stock return over the first years
// of retirement, where sequence risk bites. False when the household never
// retires in the trace.
func earlyRetirementStockReturn(r *simulation.Result) (decimal.Decimal, bool) {
	if r == nil || r.Context.RetirementAge == nil {
		return decimal.Zero, false
	}
	sum := decimal.Zero
	count := 0
	for _, dp := range r.Data {
		if dp.Period == 0 || dp.Age < *r.Context.RetirementAge {
			continue
		}
		sum = sum.Add(dp.Rates.Stocks)
		count++
		if count == earlyRetirementWindow {
			break
		}
	}
	if count == 0 {
		return decimal.Zero, false
	}
	return sum.Div(decimal.NewFromInt(int64(count))), true
}

// phaseAges maps each phase to the first age it was recorded at.
func phaseAges(r *simulation.Result) map[domain.Phase]int {
	out := map[domain.Phase]int{}
	for _, dp := range r.Data {
		if _, seen := out[dp.Phase]; !seen {
			out[dp.Phase] = dp.Age
		}
	}
	return out
}
