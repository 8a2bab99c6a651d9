// Package returns generates per-year market return sequences for the
// simulation engine. Four providers share one interface: fixed expected
// values, seeded stochastic draws, deterministic historical replay, and
// seeded historical backtest with wraparound.
package returns

import (
	"github.com/shopspring/decimal"

	"firesim/internal/domain"
)

// Rates is one year of market rates, all annual fractions. Returns are
// real (inflation-adjusted); yields are nominal cash payouts.
type Rates struct {
	Stocks     decimal.Decimal `json:"stocks"`
	Bonds      decimal.Decimal `json:"bonds"`
	Cash       decimal.Decimal `json:"cash"`
	Inflation  decimal.Decimal `json:"inflation"`
	StockYield decimal.Decimal `json:"stockYield"`
	BondYield  decimal.Decimal `json:"bondYield"`
}

// Provider yields a lazy, finite sequence of annual rates. Implementations
// are single-use per simulation run: constructing a new provider with the
// same configuration and seed reproduces the identical sequence, which is
// what makes ensemble runs replayable seed by seed.
//
// The current phase is passed so providers that key behavior off the
// retirement transition (backtest re-splicing) can observe it; most
// providers ignore it.
type Provider interface {
	Returns(phase domain.Phase) (Rates, error)
}

// HistoricalRange is a contiguous run of calendar years spliced into a
// backtest return sequence. A sequence that wraps around the dataset is
// described by multiple ranges in splice order.
type HistoricalRange struct {
	StartYear int `json:"startYear"`
	EndYear   int `json:"endYear"`
}

// Len is the number of years the range covers, inclusive of both ends.
func (r HistoricalRange) Len() int {
	return r.EndYear - r.StartYear + 1
}

// RangeReporter is implemented by providers that splice historical years
// together and can report which ones they used.
type RangeReporter interface {
	HistoricalRanges() []HistoricalRange
}

// HistoricalYear maps a period index to the calendar year it was simulated
// with, by walking the spliced ranges in order. An index past the end of
// all ranges clamps to the final range's end year. Returns false when no
// ranges are available.
func HistoricalYear(ranges []HistoricalRange, index int) (int, bool) {
	if len(ranges) == 0 || index < 0 {
		return 0, false
	}

	offset := 0
	for _, r := range ranges {
		if index < offset+r.Len() {
			return r.StartYear + (index - offset), true
		}
		offset += r.Len()
	}

	return ranges[len(ranges)-1].EndYear, true
}
