// Package solve answers planning questions by bisection over full
// simulation ensembles: how much can the household spend, and how early
// can it retire, while keeping the ensemble success rate at target.
package solve

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"firesim/internal/domain"
	"firesim/internal/simulation"
)

// Options bound the search.
type Options struct {
	// TargetSuccessRate is the minimum acceptable fraction of successful
	// ensemble members.
	TargetSuccessRate decimal.Decimal
	// Tolerance stops the spending search once the bracket is this narrow,
	// in spending dollars per year.
	Tolerance decimal.Decimal
	// MaxIterations caps bisection steps.
	MaxIterations int
}

// DefaultOptions targets a 90% success rate.
func DefaultOptions() Options {
	return Options{
		TargetSuccessRate: decimal.NewFromFloat(0.90),
		Tolerance:         decimal.NewFromInt(500),
		MaxIterations:     32,
	}
}

// Solver runs repeated ensembles against modified copies of one input set.
// Every evaluation reuses the same base seed, so the search is
// deterministic and comparisons between iterations are apples to apples.
type Solver struct {
	inputs  *domain.SimulatorInputs
	config  simulation.MultiConfig
	options Options
}

func NewSolver(inputs *domain.SimulatorInputs, config simulation.MultiConfig, options Options) (*Solver, error) {
	if inputs == nil {
		return nil, fmt.Errorf("inputs are required")
	}
	if options.MaxIterations <= 0 {
		options.MaxIterations = DefaultOptions().MaxIterations
	}
	if options.Tolerance.IsZero() {
		options.Tolerance = DefaultOptions().Tolerance
	}
	if options.TargetSuccessRate.IsZero() {
		options.TargetSuccessRate = DefaultOptions().TargetSuccessRate
	}
	return &Solver{inputs: inputs, config: config, options: options}, nil
}

// SpendingResult is the outcome of a max-spending search.
type SpendingResult struct {
	// AnnualSpending is the sustainable annualized recurring spending.
	AnnualSpending decimal.Decimal `json:"annualSpending"`
	// ScaleFactor is the multiplier applied to every configured expense.
	ScaleFactor decimal.Decimal `json:"scaleFactor"`
	// SuccessRate is the ensemble success rate at the returned level.
	SuccessRate decimal.Decimal `json:"successRate"`
	Iterations  int             `json:"iterations"`
}

// MaxSpending finds the largest uniform expense scale that keeps the
// ensemble success rate at or above target. Success is monotone in
// spending, so the scale brackets a single crossing point.
func (s *Solver) MaxSpending(ctx context.Context) (*SpendingResult, error) {
	if len(s.inputs.Expenses) == 0 {
		return nil, fmt.Errorf("inputs have no expenses to scale")
	}

	one := decimal.NewFromInt(1)
	baseline := annualizedSpending(s.inputs)
	if !baseline.IsPositive() {
		return nil, fmt.Errorf("configured expenses annualize to zero")
	}
	tolerance := s.options.Tolerance.Div(baseline)

	iterations := 0
	evaluate := func(factor decimal.Decimal) (decimal.Decimal, error) {
		iterations++
		return s.successRate(ctx, scaleExpenses(s.inputs, factor))
	}

	// Establish a failing upper bound. If even 16x spending survives, the
	// portfolio dwarfs the expenses and 16x is reported as the floor.
	lo, hi := decimal.Zero, one
	loRate := decimal.NewFromInt(1)
	for {
		rate, err := evaluate(hi)
		if err != nil {
			return nil, err
		}
		if rate.LessThan(s.options.TargetSuccessRate) {
			break
		}
		lo, loRate = hi, rate
		if hi.GreaterThanOrEqual(decimal.NewFromInt(16)) {
			return s.spendingResult(baseline, lo, loRate, iterations), nil
		}
		hi = hi.Mul(decimal.NewFromInt(2))
	}

	for i := 0; i < s.options.MaxIterations && hi.Sub(lo).GreaterThan(tolerance); i++ {
		mid := lo.Add(hi).Div(decimal.NewFromInt(2))
		rate, err := evaluate(mid)
		if err != nil {
			return nil, err
		}
		if rate.GreaterThanOrEqual(s.options.TargetSuccessRate) {
			lo, loRate = mid, rate
		} else {
			hi = mid
		}
	}
	return s.spendingResult(baseline, lo, loRate, iterations), nil
}

func (s *Solver) spendingResult(baseline, factor, rate decimal.Decimal, iterations int) *SpendingResult {
	return &SpendingResult{
		AnnualSpending: baseline.Mul(factor),
		ScaleFactor:    factor,
		SuccessRate:    rate,
		Iterations:     iterations,
	}
}

// RetirementAgeResult is the outcome of an earliest-retirement search.
type RetirementAgeResult struct {
	// Age is the earliest retirement age meeting the target. Meaningful
	// only when Achievable.
	Age         int             `json:"age"`
	SuccessRate decimal.Decimal `json:"successRate"`
	Achievable  bool            `json:"achievable"`
	Iterations  int             `json:"iterations"`
}

// EarliestRetirement finds the lowest fixed retirement age whose ensemble
// success rate meets the target. Requires the fixed_age strategy; retiring
// later never lowers the success rate, so the ages bracket one crossing.
func (s *Solver) EarliestRetirement(ctx context.Context) (*RetirementAgeResult, error) {
	if s.inputs.Timeline.Retirement.Type != domain.RetireAtFixedAge {
		return nil, fmt.Errorf("earliest retirement search requires the fixed_age strategy")
	}

	iterations := 0
	evaluate := func(age int) (decimal.Decimal, error) {
		iterations++
		modified := *s.inputs
		modified.Timeline.Retirement.RetirementAge = age
		return s.successRate(ctx, &modified)
	}

	lo := s.inputs.Timeline.CurrentAge + 1
	hi := s.inputs.Timeline.LifeExpectancy

	rate, err := evaluate(hi)
	if err != nil {
		return nil, err
	}
	if rate.LessThan(s.options.TargetSuccessRate) {
		return &RetirementAgeResult{SuccessRate: rate, Iterations: iterations}, nil
	}
	best, bestRate := hi, rate

	for lo < hi {
		mid := (lo + hi) / 2
		rate, err := evaluate(mid)
		if err != nil {
			return nil, err
		}
		if rate.GreaterThanOrEqual(s.options.TargetSuccessRate) {
			best, bestRate = mid, rate
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return &RetirementAgeResult{Age: best, SuccessRate: bestRate, Achievable: true, Iterations: iterations}, nil
}

func (s *Solver) successRate(ctx context.Context, inputs *domain.SimulatorInputs) (decimal.Decimal, error) {
	engine, err := simulation.NewMultiEngine(inputs, s.config)
	if err != nil {
		return decimal.Zero, err
	}
	result, err := engine.Run(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return result.SuccessRate, nil
}

// scaleExpenses copies the inputs with every expense amount multiplied by
// factor. The copy shares everything except the expense slice.
func scaleExpenses(inputs *domain.SimulatorInputs, factor decimal.Decimal) *domain.SimulatorInputs {
	out := *inputs
	out.Expenses = make([]domain.ExpenseInput, len(inputs.Expenses))
	for i, e := range inputs.Expenses {
		e.Amount = e.Amount.Mul(factor)
		out.Expenses[i] = e
	}
	return &out
}

// annualizedSpending is the full-schedule yearly total of all recurring
// expenses, the denominator the scale factor is reported against.
func annualizedSpending(inputs *domain.SimulatorInputs) decimal.Decimal {
	total := decimal.Zero
	for _, e := range inputs.Expenses {
		if e.Frequency == domain.FrequencyOneTime {
			continue
		}
		total = total.Add(e.Amount.Mul(decimal.NewFromInt(int64(e.Frequency.TimesPerYear()))))
	}
	return total
}
