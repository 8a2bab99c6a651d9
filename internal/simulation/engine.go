// Package simulation runs year-by-year household finance projections:
// market growth, scheduled cash flows, contributions, withdrawal
// sequencing, required distributions, and federal taxes.
package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"firesim/internal/domain"
	"firesim/internal/returns"
	"firesim/internal/sequencing"
)

// Logger receives debug output from the engine. The CLI wires a std-log
// implementation in when the debug flag is set.
type Logger interface {
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}

// RunContext describes how one simulation was produced and what it
// concluded. Serializable alongside the data points.
type RunContext struct {
	Seed             int64                      `json:"seed"`
	Mode             string                     `json:"mode"`
	StartAge         int                        `json:"startAge"`
	StartYear        int                        `json:"startYear"`
	RetirementAge    *int                       `json:"retirementAge,omitempty"`
	BankruptcyAge    *int                       `json:"bankruptcyAge,omitempty"`
	Success          bool                       `json:"success"`
	HistoricalRanges []returns.HistoricalRange  `json:"historicalRanges,omitempty"`
	Inputs           *domain.SimulatorInputs    `json:"-"`
}

// DataPoint is one recorded year. Index 0 is the initial snapshot at the
// current age; every later point is the state after simulating that year.
type DataPoint struct {
	Period int          `json:"period"`
	Age    int          `json:"age"`
	Year   int          `json:"year"`
	Phase  domain.Phase `json:"phase"`

	Rates returns.Rates `json:"rates"`

	TotalBalance decimal.Decimal `json:"totalBalance"`
	CashBalance  decimal.Decimal `json:"cashBalance"`
	Taxable      decimal.Decimal `json:"taxableBalance"`
	TaxDeferred  decimal.Decimal `json:"taxDeferredBalance"`
	TaxFree      decimal.Decimal `json:"taxFreeBalance"`
	NetWorth     decimal.Decimal `json:"netWorth"`

	GrossIncome           decimal.Decimal `json:"grossIncome"`
	Expenses              decimal.Decimal `json:"expenses"`
	Contributions         decimal.Decimal `json:"contributions"`
	Withdrawals           decimal.Decimal `json:"withdrawals"`
	Taxes                 decimal.Decimal `json:"taxes"`
	Penalties             decimal.Decimal `json:"penalties"`
	DiscretionarySpending decimal.Decimal `json:"discretionarySpending"`
	Shortfall             decimal.Decimal `json:"shortfall"`
}

// Result is one complete simulation trace.
type Result struct {
	Context RunContext  `json:"context"`
	Data    []DataPoint `json:"data"`
}

// FinalBalance is the portfolio value at the end of the trace.
func (r *Result) FinalBalance() decimal.Decimal {
	if len(r.Data) == 0 {
		return decimal.Zero
	}
	return r.Data[len(r.Data)-1].TotalBalance
}

// Engine runs one simulation. Engines are single-use: the returns provider
// they hold is a stateful sequence, so Run may be called once.
type Engine struct {
	inputs   *domain.SimulatorInputs
	provider returns.Provider
	taxes    *TaxCalculator
	strategy sequencing.Strategy
	logger   Logger

	seed      int64
	mode      string
	startYear int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a debug logger.
func WithLogger(l Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSeed records the seed the provider was built from, for the trace
// context and ensemble drill-down.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithMode records the simulation mode (fixed, stochastic, historical,
// backtest) in the trace context.
func WithMode(mode string) Option {
	return func(e *Engine) { e.mode = mode }
}

// WithStartYear anchors calendar-year schedule boundaries. Defaults to the
// current wall-clock year.
func WithStartYear(year int) Option {
	return func(e *Engine) { e.startYear = year }
}

// NewEngine validates the minimal invariants the loop depends on. Full
// input validation belongs to the config parser; the engine trusts
// validated inputs beyond these checks.
func NewEngine(inputs *domain.SimulatorInputs, provider returns.Provider, opts ...Option) (*Engine, error) {
	if inputs == nil {
		return nil, fmt.Errorf("inputs are required")
	}
	if provider == nil {
		return nil, fmt.Errorf("returns provider is required")
	}
	if inputs.YearsToSimulate() <= 0 {
		return nil, fmt.Errorf("life expectancy %d must be after current age %d",
			inputs.Timeline.LifeExpectancy, inputs.Timeline.CurrentAge)
	}

	e := &Engine{
		inputs:    inputs,
		provider:  provider,
		taxes:     NewTaxCalculator(),
		strategy:  sequencing.CreateStrategy(inputs.Withdrawal),
		logger:    nopLogger{},
		mode:      "fixed",
		startYear: time.Now().Year(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run executes the annual loop from the current age through life
// expectancy inclusive. The trace always has YearsToSimulate()+1 points.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	inputs := e.inputs
	tl := inputs.Timeline

	portfolio, err := NewPortfolio(inputs)
	if err != nil {
		return nil, fmt.Errorf("building portfolio: %w", err)
	}
	flows := newCashflows(inputs)
	phases := &phaseState{timeline: tl}

	n := inputs.YearsToSimulate()
	data := make([]DataPoint, 0, n+1)
	data = append(data, e.snapshot(0, tl.CurrentAge, domain.PhaseAccumulation, returns.Rates{}, portfolio, flows))

	// Expenses entering the first year, for the SWR retirement check.
	prevExpenses := estimateAnnualExpenses(inputs, e.startYear)

	bankruptcyAge := (*int)(nil)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		age := tl.CurrentAge + i

		phase := phases.identify(age, portfolio.TotalBalance(), prevExpenses)
		rates, err := e.provider.Returns(phase)
		if err != nil {
			return nil, fmt.Errorf("year %d returns: %w", age, err)
		}
		yields := portfolio.ApplyReturns(rates)

		clock := scheduleClock{
			Age:            age,
			Year:           e.startYear + i,
			YearIndex:      i,
			Retired:        phase.Retired(),
			LifeExpectancy: tl.LifeExpectancy,
		}
		grossIncome, withheld, expenses := flows.year(clock)
		prevExpenses = expenses

		cash := grossIncome.Sub(withheld).Sub(expenses)
		ordinaryIncome := grossIncome.Add(yields.Interest)
		capitalGains := yields.Dividends

		var contributed, deferred, spent, withdrawn, penalties, shortfall decimal.Decimal
		if cash.IsPositive() {
			contributed, deferred, spent = applyContributionRules(portfolio, inputs, cash, grossIncome, age)
			// Pre-tax deferrals come off this year's ordinary income.
			ordinaryIncome = ordinaryIncome.Sub(deferred)
		}

		need := decimal.Zero
		if cash.IsNegative() {
			need = cash.Neg()
		}
		sources := portfolio.Sources(age, true)
		if need.IsPositive() || pendingRMDs(sources) {
			plan := e.strategy.Plan(sources, sequencing.Context{NeedAmount: need, Age: age})
			if err := portfolio.ApplyPlan(plan, sources, age); err != nil {
				return nil, fmt.Errorf("year %d withdrawals: %w", age, err)
			}
			withdrawn = plan.TotalSourced
			penalties = plan.EstimatedPenalties
			ordinaryIncome = ordinaryIncome.Add(plan.EstimatedOrdinaryIncome)
			capitalGains = capitalGains.Add(plan.EstimatedCapitalGains)
			shortfall = plan.RemainingNeed

			// Forced distributions beyond the spending need land in the
			// RMD cash account instead of being consumed.
			excess := plan.TotalSourced.Sub(need.Sub(plan.RemainingNeed))
			if excess.IsPositive() {
				if rmdCash, ok := portfolio.Account(RMDAccountID); ok {
					rmdCash.Deposit(excess, age)
				}
			}
		}

		taxResult := e.taxes.Compute(ordinaryIncome, capitalGains, inputs.Taxes.FilingStatus)
		totalTax := taxResult.Total.Add(penalties)

		// Settle against withholding. Tax generated by the settlement
		// withdrawal itself is not re-levied; it is small and the annual
		// model absorbs it the way the withholding cycle does.
		due := totalTax.Sub(withheld)
		if due.IsPositive() {
			settleSources := portfolio.Sources(age, false)
			settle := e.strategy.Plan(settleSources, sequencing.Context{NeedAmount: due, Age: age})
			if err := portfolio.ApplyPlan(settle, settleSources, age); err != nil {
				return nil, fmt.Errorf("year %d tax settlement: %w", age, err)
			}
			withdrawn = withdrawn.Add(settle.TotalSourced)
			shortfall = shortfall.Add(settle.RemainingNeed)
		} else if due.IsNegative() {
			// Deferrals routed from a refund do not re-open the settled year.
			refundContributed, _, refundSpent := applyContributionRules(portfolio, inputs, due.Neg(), grossIncome, age)
			contributed = contributed.Add(refundContributed)
			spent = spent.Add(refundSpent)
		}

		if bankruptcyAge == nil && shortfall.IsPositive() && !portfolio.TotalBalance().IsPositive() {
			a := age
			bankruptcyAge = &a
			e.logger.Debugf("portfolio exhausted at age %d (shortfall %s)", age, shortfall)
		}

		dp := e.snapshot(i, age, phase, rates, portfolio, flows)
		dp.GrossIncome = grossIncome
		dp.Expenses = expenses
		dp.Contributions = contributed
		dp.Withdrawals = withdrawn
		dp.Taxes = totalTax
		dp.Penalties = penalties
		dp.DiscretionarySpending = spent
		dp.Shortfall = shortfall
		data = append(data, dp)
	}

	result := &Result{
		Context: RunContext{
			Seed:          e.seed,
			Mode:          e.mode,
			StartAge:      tl.CurrentAge,
			StartYear:     e.startYear,
			BankruptcyAge: bankruptcyAge,
			Success:       phases.retired && portfolio.TotalBalance().IsPositive(),
			Inputs:        inputs,
		},
		Data: data,
	}
	if phases.retirementAge > 0 {
		ra := phases.retirementAge
		result.Context.RetirementAge = &ra
	}
	if reporter, ok := e.provider.(returns.RangeReporter); ok {
		result.Context.HistoricalRanges = reporter.HistoricalRanges()
	}
	return result, nil
}

func (e *Engine) snapshot(period, age int, phase domain.Phase, rates returns.Rates, p *Portfolio, cf *cashflows) DataPoint {
	byCat := p.BalanceByCategory()
	total := p.TotalBalance()
	return DataPoint{
		Period:       period,
		Age:          age,
		Year:         e.startYear + period,
		Phase:        phase,
		Rates:        rates,
		TotalBalance: total,
		CashBalance:  byCat[domain.CategoryCash],
		Taxable:      byCat[domain.CategoryTaxable],
		TaxDeferred:  byCat[domain.CategoryTaxDeferred],
		TaxFree:      byCat[domain.CategoryTaxFree],
		NetWorth:     total.Add(cf.assetValue()).Sub(cf.debtBalance()),
	}
}

func pendingRMDs(sources []sequencing.Source) bool {
	for _, s := range sources {
		if s.PendingRMD.IsPositive() {
			return true
		}
	}
	return false
}

// estimateAnnualExpenses sums the recurring expenses active in the first
// year, without consuming one-time schedule state. Used only to seed the
// SWR retirement check before the first simulated year.
func estimateAnnualExpenses(inputs *domain.SimulatorInputs, startYear int) decimal.Decimal {
	clock := scheduleClock{
		Age:            inputs.Timeline.CurrentAge,
		Year:           startYear,
		YearIndex:      0,
		Retired:        false,
		LifeExpectancy: inputs.Timeline.LifeExpectancy,
	}
	total := decimal.Zero
	for _, in := range inputs.Expenses {
		if in.Frequency == domain.FrequencyOneTime || !windowActive(in.Timeframe, clock) {
			continue
		}
		total = total.Add(in.Amount.Mul(decimal.NewFromInt(int64(in.Frequency.TimesPerYear()))))
	}
	for _, d := range inputs.Debts {
		if d.Balance.IsPositive() {
			total = total.Add(d.AnnualPayment)
		}
	}
	return total
}
