package returns

import (
	"fmt"

	"github.com/shopspring/decimal"

	"firesim/internal/domain"
	"firesim/internal/histdata"
)

// HistoricalProvider replays actual annual market data starting from a
// chosen calendar year, wrapping to the earliest available year when the
// simulation horizon outruns the dataset. Deterministic: same start year,
// same path.
type HistoricalProvider struct {
	walker *historicalWalker
}

func NewHistoricalProvider(startYear int) (*HistoricalProvider, error) {
	first, last := histdata.Range()
	if startYear < first || startYear > last {
		return nil, fmt.Errorf("historical start year %d outside dataset range %d-%d", startYear, first, last)
	}
	return &HistoricalProvider{walker: newHistoricalWalker(startYear)}, nil
}

func (p *HistoricalProvider) Returns(_ domain.Phase) (Rates, error) {
	return p.walker.next()
}

// HistoricalRanges reports the calendar-year splices the replay walked.
func (p *HistoricalProvider) HistoricalRanges() []HistoricalRange {
	return p.walker.ranges()
}

// BacktestProvider walks historical data from a seeded pseudo-random start
// year, for Monte Carlo style analysis over real market sequences. The
// per-simulation seed picks the start year via the shared LCG, so a seed
// identifies its historical window exactly.
//
// RetirementStartYear, when set, re-splices the walk to that calendar year
// at the moment the simulation enters the retirement phase; this lets a
// caller stress a specific drawdown sequence at the point of retirement.
type BacktestProvider struct {
	walker              *historicalWalker
	retirementStartYear int
	lastPhase           domain.Phase
}

// BacktestOption tweaks backtest construction.
type BacktestOption func(*BacktestProvider)

// WithStartYear pins the initial start year instead of drawing one from
// the seed.
func WithStartYear(year int) BacktestOption {
	return func(p *BacktestProvider) {
		p.walker = newHistoricalWalker(year)
	}
}

// WithRetirementStartYear re-splices the walk to the given year when the
// retirement phase begins.
func WithRetirementStartYear(year int) BacktestOption {
	return func(p *BacktestProvider) {
		p.retirementStartYear = year
	}
}

func NewBacktestProvider(seed int64, opts ...BacktestOption) *BacktestProvider {
	first, _ := histdata.Range()
	rng := NewRand(seed)
	start := first + rng.IntN(histdata.NumYears())

	p := &BacktestProvider{walker: newHistoricalWalker(start)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *BacktestProvider) Returns(phase domain.Phase) (Rates, error) {
	if p.retirementStartYear != 0 && phase.AtLeast(domain.PhaseRetirement) && !p.lastPhase.AtLeast(domain.PhaseRetirement) {
		p.walker.spliceTo(p.retirementStartYear)
	}
	p.lastPhase = phase

	return p.walker.next()
}

// HistoricalRanges reports the calendar-year splices the backtest walked,
// in order, including wraparounds.
func (p *BacktestProvider) HistoricalRanges() []HistoricalRange {
	return p.walker.ranges()
}

// historicalWalker advances one calendar year per call over the dataset,
// wrapping at the end and tracking the spliced ranges it has covered.
type historicalWalker struct {
	current int
	spliced []HistoricalRange
}

func newHistoricalWalker(startYear int) *historicalWalker {
	return &historicalWalker{
		current: startYear,
		spliced: []HistoricalRange{{StartYear: startYear, EndYear: startYear}},
	}
}

func (w *historicalWalker) spliceTo(year int) {
	w.current = year
	w.spliced = append(w.spliced, HistoricalRange{StartYear: year, EndYear: year})
}

func (w *historicalWalker) next() (Rates, error) {
	first, last := histdata.Range()
	if w.current > last {
		w.spliceTo(first)
	} else {
		w.spliced[len(w.spliced)-1].EndYear = w.current
	}

	data, err := histdata.Get(w.current)
	if err != nil {
		return Rates{}, err
	}
	w.current++

	return Rates{
		Stocks:     decimal.NewFromFloat(data.StockReturn),
		Bonds:      decimal.NewFromFloat(data.BondReturn),
		Cash:       decimal.NewFromFloat(data.CashReturn),
		Inflation:  decimal.NewFromFloat(data.InflationRate),
		StockYield: decimal.NewFromFloat(data.StockYield),
		BondYield:  decimal.NewFromFloat(data.BondYield),
	}, nil
}

func (w *historicalWalker) ranges() []HistoricalRange {
	out := make([]HistoricalRange, len(w.spliced))
	copy(out, w.spliced)
	return out
}
