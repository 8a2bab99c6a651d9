package simulation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firesim/internal/domain"
	"firesim/internal/returns"
)

// lifetimeInputs is a full working-to-grave household: salary until
// retirement at 65, steady expenses, surplus saved to cash.
func lifetimeInputs() *domain.SimulatorInputs {
	return &domain.SimulatorInputs{
		Timeline: domain.Timeline{
			CurrentAge:     30,
			LifeExpectancy: 85,
			Retirement: domain.RetirementStrategy{
				Type:          domain.RetireAtFixedAge,
				RetirementAge: 65,
			},
		},
		Taxes: domain.TaxSettings{FilingStatus: domain.FilingSingle},
		Accounts: []domain.AccountInput{
			{ID: "sav", Type: domain.AccountSavings, Balance: decimal.NewFromInt(50000)},
			{ID: "brk", Type: domain.AccountTaxableBrokerage, Balance: decimal.NewFromInt(300000)},
			{ID: "401k", Type: domain.AccountTraditional401k, Balance: decimal.NewFromInt(600000), PercentBonds: decimal.NewFromFloat(0.3)},
			{ID: "roth", Type: domain.AccountRothIRA, Balance: decimal.NewFromInt(100000)},
		},
		Incomes: []domain.IncomeInput{
			{
				ID:          "salary",
				Amount:      decimal.NewFromInt(80000),
				Frequency:   domain.FrequencyYearly,
				Withholding: decimal.NewFromFloat(0.20),
				Timeframe: domain.Timeframe{
					Start: domain.TimePoint{Type: domain.TimeNow},
					End:   &domain.TimePoint{Type: domain.TimeAtRetirement},
				},
			},
		},
		Expenses: []domain.ExpenseInput{
			{
				ID:        "living",
				Amount:    decimal.NewFromInt(40000),
				Frequency: domain.FrequencyYearly,
				Timeframe: domain.Timeframe{Start: domain.TimePoint{Type: domain.TimeNow}},
			},
		},
		BaseRule: domain.BaseRuleSave,
	}
}

func runLifetime(t *testing.T) *Result {
	t.Helper()
	inputs := lifetimeInputs()
	engine, err := NewEngine(inputs, returns.NewFixedProvider(inputs.Market), WithStartYear(2026))
	require.NoError(t, err)
	result, err := engine.Run(context.Background())
	require.NoError(t, err)
	return result
}

func TestEngineTraceShape(t *testing.T) {
	result := runLifetime(t)

	// Ages 30 through 85 inclusive: 56 recorded points.
	require.Len(t, result.Data, 56)
	for i, dp := range result.Data {
		assert.Equal(t, 30+i, dp.Age, "period %d", i)
		assert.Equal(t, i, dp.Period)
	}
	assert.Equal(t, 2026, result.Data[0].Year)
}

func TestEnginePhasesNeverRegress(t *testing.T) {
	result := runLifetime(t)

	rank := map[domain.Phase]int{
		domain.PhaseAccumulation: 0,
		domain.PhaseCoast:        1,
		domain.PhaseBarista:      2,
		domain.PhaseRetirement:   3,
		domain.PhaseTerminal:     4,
	}
	last := -1
	for _, dp := range result.Data {
		r, ok := rank[dp.Phase]
		require.True(t, ok, "unknown phase %q at age %d", dp.Phase, dp.Age)
		assert.GreaterOrEqual(t, r, last, "phase regressed at age %d", dp.Age)
		last = r
	}

	assert.Equal(t, domain.PhaseRetirement, result.Data[35].Phase, "age 65 should be retired")
	assert.Equal(t, domain.PhaseTerminal, result.Data[55].Phase, "age 85 is terminal")
}

func TestEngineRetirementAndSuccess(t *testing.T) {
	result := runLifetime(t)

	require.NotNil(t, result.Context.RetirementAge)
	assert.Equal(t, 65, *result.Context.RetirementAge)
	assert.True(t, result.Context.Success)
	assert.Nil(t, result.Context.BankruptcyAge)
	assert.True(t, result.FinalBalance().IsPositive())
}

func TestEngineBalancesNeverNegative(t *testing.T) {
	result := runLifetime(t)
	for _, dp := range result.Data {
		assert.False(t, dp.TotalBalance.IsNegative(), "negative balance at age %d", dp.Age)
		assert.False(t, dp.CashBalance.IsNegative(), "negative cash at age %d", dp.Age)
	}
}

func TestEngineIncomeStopsAtRetirement(t *testing.T) {
	result := runLifetime(t)
	// Last working year.
	assert.True(t, result.Data[34].GrossIncome.IsPositive(), "age 64 should earn")
	// First retired year onward.
	for _, dp := range result.Data[35:] {
		assert.True(t, dp.GrossIncome.IsZero(), "age %d should have no salary", dp.Age)
	}
}

func TestEngineSurplusSavedToCash(t *testing.T) {
	result := runLifetime(t)
	// Working years bank roughly 24000/year plus the withholding refund;
	// cash must grow during accumulation.
	assert.True(t, result.Data[10].CashBalance.GreaterThan(result.Data[0].CashBalance))
	for _, dp := range result.Data[1:35] {
		assert.True(t, dp.Contributions.IsPositive(), "age %d should contribute surplus", dp.Age)
	}
}

func TestEnginePretaxContributionsReduceTaxes(t *testing.T) {
	inputs := &domain.SimulatorInputs{
		Timeline: domain.Timeline{
			CurrentAge:     40,
			LifeExpectancy: 45,
			Retirement:     domain.RetirementStrategy{Type: domain.RetireAtFixedAge, RetirementAge: 45},
		},
		Taxes: domain.TaxSettings{FilingStatus: domain.FilingSingle},
		Accounts: []domain.AccountInput{
			{ID: "sav", Type: domain.AccountSavings, Balance: decimal.NewFromInt(100000)},
			{ID: "401k", Type: domain.AccountTraditional401k},
		},
		Incomes: []domain.IncomeInput{
			{
				ID:        "salary",
				Amount:    decimal.NewFromInt(100000),
				Frequency: domain.FrequencyYearly,
				Timeframe: domain.Timeframe{Start: domain.TimePoint{Type: domain.TimeNow}},
			},
		},
		ContributionRules: []domain.ContributionRule{
			{ID: "deferral", AccountID: "401k", Kind: domain.ContributeFixedAmount, Amount: decimal.NewFromInt(20000)},
		},
	}
	engine, err := NewEngine(inputs, returns.NewFixedProvider(inputs.Market))
	require.NoError(t, err)
	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	// The 20000 deferral leaves 80000 of the salary taxable; after the
	// 15000 standard deduction the 2025 single brackets owe 9214 on the
	// remaining 65000, not the 13614 due on the full salary.
	year1 := result.Data[1]
	assert.True(t, year1.Taxes.Equal(decimal.NewFromInt(9214)),
		"expected taxes of 9214 after the deferral, got %s", year1.Taxes)
	assert.True(t, year1.Contributions.GreaterThanOrEqual(decimal.NewFromInt(20000)))
	assert.True(t, year1.TaxDeferred.Equal(decimal.NewFromInt(20000)))
}

func TestEngineRMDsForcedAfter73(t *testing.T) {
	inputs := &domain.SimulatorInputs{
		Timeline: domain.Timeline{
			CurrentAge:     70,
			LifeExpectancy: 80,
			Retirement:     domain.RetirementStrategy{Type: domain.RetireAtFixedAge, RetirementAge: 65},
		},
		Taxes: domain.TaxSettings{FilingStatus: domain.FilingSingle},
		Accounts: []domain.AccountInput{
			{ID: "sav", Type: domain.AccountSavings, Balance: decimal.NewFromInt(200000)},
			{ID: "401k", Type: domain.AccountTraditional401k, Balance: decimal.NewFromInt(500000)},
		},
		Expenses: []domain.ExpenseInput{
			{
				ID:        "living",
				Amount:    decimal.NewFromInt(10000),
				Frequency: domain.FrequencyYearly,
				Timeframe: domain.Timeframe{Start: domain.TimePoint{Type: domain.TimeNow}},
			},
		},
	}
	engine, err := NewEngine(inputs, returns.NewFixedProvider(inputs.Market))
	require.NoError(t, err)
	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	var before73, at74 DataPoint
	for _, dp := range result.Data {
		if dp.Age == 72 {
			before73 = dp
		}
		if dp.Age == 74 {
			at74 = dp
		}
	}
	// The forced distribution dwarfs the spending need.
	assert.True(t, at74.Withdrawals.GreaterThan(at74.Expenses),
		"RMD should exceed expenses: withdrew %s for %s", at74.Withdrawals, at74.Expenses)
	assert.True(t, at74.TaxDeferred.LessThan(before73.TaxDeferred),
		"tax-deferred balance should shrink under RMDs")
	// Excess lands in cash rather than vanishing.
	assert.True(t, at74.CashBalance.GreaterThan(before73.CashBalance.Sub(decimal.NewFromInt(30000))),
		"RMD excess should be redeposited to cash")
}

func TestEngineBankruptcy(t *testing.T) {
	inputs := &domain.SimulatorInputs{
		Timeline: domain.Timeline{
			CurrentAge:     60,
			LifeExpectancy: 70,
			Retirement:     domain.RetirementStrategy{Type: domain.RetireAtFixedAge, RetirementAge: 60},
		},
		Taxes: domain.TaxSettings{FilingStatus: domain.FilingSingle},
		Accounts: []domain.AccountInput{
			{ID: "sav", Type: domain.AccountSavings, Balance: decimal.NewFromInt(10000)},
		},
		Expenses: []domain.ExpenseInput{
			{
				ID:        "living",
				Amount:    decimal.NewFromInt(50000),
				Frequency: domain.FrequencyYearly,
				Timeframe: domain.Timeframe{Start: domain.TimePoint{Type: domain.TimeNow}},
			},
		},
	}
	engine, err := NewEngine(inputs, returns.NewFixedProvider(inputs.Market))
	require.NoError(t, err)
	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, result.Context.BankruptcyAge)
	assert.Equal(t, 61, *result.Context.BankruptcyAge)
	assert.False(t, result.Context.Success)

	sawShortfall := false
	for _, dp := range result.Data {
		assert.False(t, dp.TotalBalance.IsNegative(), "balance went negative at age %d", dp.Age)
		if dp.Shortfall.IsPositive() {
			sawShortfall = true
		}
	}
	assert.True(t, sawShortfall, "expected shortfall recorded in the trace")
}

func TestEngineSWRTargetRetirement(t *testing.T) {
	inputs := &domain.SimulatorInputs{
		Timeline: domain.Timeline{
			CurrentAge:     30,
			LifeExpectancy: 40,
			Retirement: domain.RetirementStrategy{
				Type:               domain.RetireAtSWRTarget,
				SafeWithdrawalRate: decimal.NewFromFloat(0.04),
			},
		},
		Taxes: domain.TaxSettings{FilingStatus: domain.FilingSingle},
		Accounts: []domain.AccountInput{
			// 1.2M against a 1.0M requirement (40000 / 0.04).
			{ID: "sav", Type: domain.AccountSavings, Balance: decimal.NewFromInt(1200000)},
		},
		Expenses: []domain.ExpenseInput{
			{
				ID:        "living",
				Amount:    decimal.NewFromInt(40000),
				Frequency: domain.FrequencyYearly,
				Timeframe: domain.Timeframe{Start: domain.TimePoint{Type: domain.TimeNow}},
			},
		},
	}
	engine, err := NewEngine(inputs, returns.NewFixedProvider(inputs.Market))
	require.NoError(t, err)
	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, result.Context.RetirementAge)
	assert.Equal(t, 31, *result.Context.RetirementAge)
	assert.Equal(t, domain.PhaseRetirement, result.Data[1].Phase)
	assert.True(t, result.Context.Success)
}

func TestEngineCoastAndBaristaMilestones(t *testing.T) {
	inputs := lifetimeInputs()
	inputs.Timeline.CoastAge = 45
	inputs.Timeline.BaristaAge = 55

	engine, err := NewEngine(inputs, returns.NewFixedProvider(inputs.Market))
	require.NoError(t, err)
	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	byAge := map[int]domain.Phase{}
	for _, dp := range result.Data {
		byAge[dp.Age] = dp.Phase
	}
	assert.Equal(t, domain.PhaseAccumulation, byAge[44])
	assert.Equal(t, domain.PhaseCoast, byAge[45])
	assert.Equal(t, domain.PhaseBarista, byAge[55])
	assert.Equal(t, domain.PhaseRetirement, byAge[65])
}

func TestEngineStochasticDeterminism(t *testing.T) {
	inputs := lifetimeInputs()
	inputs.Market = domain.MarketAssumptions{
		StockReturn:   decimal.NewFromFloat(0.07),
		BondReturn:    decimal.NewFromFloat(0.03),
		CashReturn:    decimal.NewFromFloat(0.01),
		InflationRate: decimal.NewFromFloat(0.025),
	}

	run := func() *Result {
		engine, err := NewEngine(inputs, returns.NewStochasticProvider(inputs.Market, 99), WithSeed(99), WithMode("stochastic"))
		require.NoError(t, err)
		result, err := engine.Run(context.Background())
		require.NoError(t, err)
		return result
	}

	a, b := run(), run()
	require.Len(t, b.Data, len(a.Data))
	for i := range a.Data {
		assert.True(t, a.Data[i].TotalBalance.Equal(b.Data[i].TotalBalance),
			"trace diverged at period %d", i)
	}
}

func TestEngineRejectsInvalidTimeline(t *testing.T) {
	inputs := lifetimeInputs()
	inputs.Timeline.LifeExpectancy = 30

	_, err := NewEngine(inputs, returns.NewFixedProvider(inputs.Market))
	assert.Error(t, err)
}

func TestEngineContextCancellation(t *testing.T) {
	inputs := lifetimeInputs()
	engine, err := NewEngine(inputs, returns.NewFixedProvider(inputs.Market))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
