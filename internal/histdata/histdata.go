// Package histdata provides the read-only historical market dataset used
// by the historical replay and backtest returns providers. The data is
// compiled in and never mutated, so it is safe for unsynchronized
// concurrent reads from any number of simulation workers.
package histdata

import (
	"fmt"
	"math"
)

// YearData holds one calendar year of market history. Returns are real
// (inflation-adjusted) annual rates expressed as fractions.
type YearData struct {
	Year          int
	StockReturn   float64
	BondReturn    float64
	CashReturn    float64
	InflationRate float64
	StockYield    float64
	BondYield     float64
}

// Range reports the first and last calendar years covered by the dataset.
func Range() (startYear, endYear int) {
	return years[0].Year, years[len(years)-1].Year
}

// NumYears reports how many calendar years the dataset covers.
func NumYears() int {
	return len(years)
}

// Get returns the market data for a calendar year.
func Get(year int) (YearData, error) {
	start, end := Range()
	if year < start || year > end {
		return YearData{}, fmt.Errorf("no historical data for year %d (have %d-%d)", year, start, end)
	}
	return years[year-start], nil
}

// Stats summarizes one series of the dataset.
type Stats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// SeriesStats computes summary statistics over the full dataset for the
// series selected by pick. Used for calibrating stochastic volatility
// defaults and for reporting.
func SeriesStats(pick func(YearData) float64) Stats {
	var sum float64
	min := pick(years[0])
	max := min
	for _, y := range years {
		v := pick(y)
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(len(years))

	var sq float64
	for _, y := range years {
		d := pick(y) - mean
		sq += d * d
	}
	variance := sq / float64(len(years)-1)

	return Stats{Mean: mean, StdDev: math.Sqrt(variance), Min: min, Max: max}
}
