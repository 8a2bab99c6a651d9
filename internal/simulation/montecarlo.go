package simulation

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"firesim/internal/domain"
	"firesim/internal/returns"
)

// Mode selects how the ensemble generates market returns.
type Mode string

const (
	// ModeStochastic draws correlated random returns per simulation seed.
	ModeStochastic Mode = "stochastic"
	// ModeBacktest replays historical sequences from seeded start years.
	ModeBacktest Mode = "backtest"
)

// seedStride spaces per-simulation seeds so neighbouring simulations don't
// walk overlapping LCG state.
const seedStride = 1009

// SeedForSimulation derives the seed for simulation i from the base seed.
// Deterministic, so any single ensemble member can be replayed alone.
func SeedForSimulation(baseSeed int64, i int) int64 {
	return baseSeed + int64(i)*seedStride
}

// MultiConfig configures an ensemble run.
type MultiConfig struct {
	NumSimulations int
	BaseSeed       int64
	Mode           Mode
	// RetirementStartYear re-splices backtest walks to this calendar year
	// at the retirement transition. Zero disables it.
	RetirementStartYear int
	StartYear           int
	Logger              Logger
}

// PercentileBand is the portfolio balance distribution for one simulated
// year across the ensemble.
type PercentileBand struct {
	Period int             `json:"period"`
	Age    int             `json:"age"`
	P10    decimal.Decimal `json:"p10"`
	P25    decimal.Decimal `json:"p25"`
	P50    decimal.Decimal `json:"p50"`
	P75    decimal.Decimal `json:"p75"`
	P90    decimal.Decimal `json:"p90"`
}

// BalanceStats summarizes final balances across the ensemble.
type BalanceStats struct {
	Mean   decimal.Decimal `json:"mean"`
	Median decimal.Decimal `json:"median"`
	StdDev decimal.Decimal `json:"stdDev"`
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
}

// MultiResult is a complete ensemble outcome. Results keeps every member
// trace so analyzers can drill into individual simulations by seed.
type MultiResult struct {
	NumSimulations int             `json:"numSimulations"`
	BaseSeed       int64           `json:"baseSeed"`
	Mode           Mode            `json:"mode"`
	SuccessRate    decimal.Decimal `json:"successRate"`
	Bands          []PercentileBand `json:"bands"`
	FinalBalances  BalanceStats    `json:"finalBalances"`
	Results        []*Result       `json:"-"`
}

// MultiEngine runs N independent simulations over a shared input set and
// aggregates them. Each simulation gets a fresh portfolio and provider;
// nothing mutable is shared between workers.
type MultiEngine struct {
	inputs *domain.SimulatorInputs
	config MultiConfig
}

func NewMultiEngine(inputs *domain.SimulatorInputs, config MultiConfig) (*MultiEngine, error) {
	if inputs == nil {
		return nil, fmt.Errorf("inputs are required")
	}
	if config.NumSimulations <= 0 {
		return nil, fmt.Errorf("numSimulations must be positive, got %d", config.NumSimulations)
	}
	switch config.Mode {
	case ModeStochastic, ModeBacktest:
	default:
		return nil, fmt.Errorf("unknown simulation mode %q", config.Mode)
	}
	if config.Logger == nil {
		config.Logger = nopLogger{}
	}
	return &MultiEngine{inputs: inputs, config: config}, nil
}

func (me *MultiEngine) providerFor(seed int64) returns.Provider {
	if me.config.Mode == ModeBacktest {
		var opts []returns.BacktestOption
		if me.config.RetirementStartYear != 0 {
			opts = append(opts, returns.WithRetirementStartYear(me.config.RetirementStartYear))
		}
		return returns.NewBacktestProvider(seed, opts...)
	}
	return returns.NewStochasticProvider(me.inputs.Market, seed)
}

// Run executes the ensemble on a bounded worker pool and aggregates the
// traces. Aggregation is order-independent: results land in their slot by
// simulation index regardless of completion order.
func (me *MultiEngine) Run(ctx context.Context) (*MultiResult, error) {
	n := me.config.NumSimulations
	results := make([]*Result, n)
	errCh := make(chan error, n)
	jobs := make(chan int)

	workers := runtime.GOMAXPROCS(0) - 1
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	me.config.Logger.Debugf("running %d simulations on %d workers", n, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				seed := SeedForSimulation(me.config.BaseSeed, i)
				opts := []Option{
					WithSeed(seed),
					WithMode(string(me.config.Mode)),
					WithLogger(me.config.Logger),
				}
				if me.config.StartYear != 0 {
					opts = append(opts, WithStartYear(me.config.StartYear))
				}
				engine, err := NewEngine(me.inputs, me.providerFor(seed), opts...)
				if err != nil {
					errCh <- fmt.Errorf("simulation %d: %w", i, err)
					continue
				}
				result, err := engine.Run(ctx)
				if err != nil {
					errCh <- fmt.Errorf("simulation %d: %w", i, err)
					continue
				}
				results[i] = result
			}
		}()
	}

	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	select {
	case err := <-errCh:
		return nil, err
	default:
	}

	return me.aggregate(results), nil
}

func (me *MultiEngine) aggregate(results []*Result) *MultiResult {
	out := &MultiResult{
		NumSimulations: len(results),
		BaseSeed:       me.config.BaseSeed,
		Mode:           me.config.Mode,
		Results:        results,
	}
	if len(results) == 0 {
		return out
	}

	successes := 0
	finals := make([]decimal.Decimal, 0, len(results))
	for _, r := range results {
		if r.Context.Success {
			successes++
		}
		finals = append(finals, r.FinalBalance())
	}
	out.SuccessRate = decimal.NewFromInt(int64(successes)).Div(decimal.NewFromInt(int64(len(results))))
	out.FinalBalances = balanceStats(finals)

	periods := len(results[0].Data)
	out.Bands = make([]PercentileBand, 0, periods)
	balances := make([]decimal.Decimal, len(results))
	for p := 0; p < periods; p++ {
		for i, r := range results {
			balances[i] = r.Data[p].TotalBalance
		}
		sortDecimals(balances)
		out.Bands = append(out.Bands, PercentileBand{
			Period: p,
			Age:    results[0].Data[p].Age,
			P10:    percentile(balances, 0.10),
			P25:    percentile(balances, 0.25),
			P50:    percentile(balances, 0.50),
			P75:    percentile(balances, 0.75),
			P90:    percentile(balances, 0.90),
		})
	}
	return out
}

func sortDecimals(values []decimal.Decimal) {
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
}

// percentile reads from a sorted slice using the nearest-rank position.
func percentile(sorted []decimal.Decimal, p float64) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}
	idx := int(p*float64(len(sorted)-1) + 0.5)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func balanceStats(values []decimal.Decimal) BalanceStats {
	if len(values) == 0 {
		return BalanceStats{}
	}
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sortDecimals(sorted)

	sum := decimal.Zero
	for _, v := range sorted {
		sum = sum.Add(v)
	}
	n := decimal.NewFromInt(int64(len(sorted)))
	mean := sum.Div(n)

	sq := decimal.Zero
	for _, v := range sorted {
		d := v.Sub(mean)
		sq = sq.Add(d.Mul(d))
	}
	variance := sq.Div(n)

	stats := BalanceStats{
		Mean:   mean,
		Median: percentile(sorted, 0.50),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
	// decimal has no square root; variance is converted at the float edge.
	f, _ := variance.Float64()
	if f > 0 {
		stats.StdDev = decimal.NewFromFloat(math.Sqrt(f))
	}
	return stats
}
