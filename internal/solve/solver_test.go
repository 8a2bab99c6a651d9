package solve

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firesim/internal/domain"
	"firesim/internal/simulation"
)

func solverInputs(balance, expenses int64) *domain.SimulatorInputs {
	return &domain.SimulatorInputs{
		Timeline: domain.Timeline{
			CurrentAge:     55,
			LifeExpectancy: 70,
			Retirement: domain.RetirementStrategy{
				Type:          domain.RetireAtFixedAge,
				RetirementAge: 60,
			},
		},
		Market: domain.MarketAssumptions{
			StockReturn:   decimal.NewFromFloat(0.07),
			BondReturn:    decimal.NewFromFloat(0.03),
			CashReturn:    decimal.NewFromFloat(0.01),
			InflationRate: decimal.NewFromFloat(0.025),
			StockYield:    decimal.NewFromFloat(0.018),
			BondYield:     decimal.NewFromFloat(0.04),
		},
		Taxes: domain.TaxSettings{FilingStatus: domain.FilingSingle},
		Accounts: []domain.AccountInput{
			{ID: "brokerage", Name: "Brokerage", Type: domain.AccountTaxableBrokerage, Balance: decimal.NewFromInt(balance)},
		},
		Incomes: []domain.IncomeInput{
			{
				ID: "salary", Name: "Salary",
				Amount:    decimal.NewFromInt(90000),
				Frequency: domain.FrequencyYearly,
				Timeframe: domain.Timeframe{
					Start: domain.TimePoint{Type: domain.TimeNow},
					End:   &domain.TimePoint{Type: domain.TimeAtRetirement},
				},
			},
		},
		Expenses: []domain.ExpenseInput{
			{
				ID: "living", Name: "Living",
				Amount:    decimal.NewFromInt(expenses),
				Frequency: domain.FrequencyYearly,
				Timeframe: domain.Timeframe{Start: domain.TimePoint{Type: domain.TimeNow}},
			},
		},
	}
}

func solverConfig() simulation.MultiConfig {
	return simulation.MultiConfig{
		NumSimulations: 8,
		BaseSeed:       7,
		Mode:           simulation.ModeStochastic,
	}
}

func TestMaxSpendingRichPortfolio(t *testing.T) {
	// A portfolio this large sustains far more than the configured spend.
	s, err := NewSolver(solverInputs(8000000, 40000), solverConfig(), DefaultOptions())
	require.NoError(t, err)

	result, err := s.MaxSpending(context.Background())
	require.NoError(t, err)

	assert.True(t, result.ScaleFactor.GreaterThan(decimal.NewFromInt(1)),
		"expected sustainable spending above the configured level, got factor %s", result.ScaleFactor)
	assert.True(t, result.AnnualSpending.GreaterThan(decimal.NewFromInt(40000)))
	assert.True(t, result.SuccessRate.GreaterThanOrEqual(decimal.NewFromFloat(0.90)))
	assert.Greater(t, result.Iterations, 0)
}

func TestMaxSpendingStretchedPortfolio(t *testing.T) {
	// Spending already exceeds what the portfolio can carry.
	s, err := NewSolver(solverInputs(100000, 200000), solverConfig(), DefaultOptions())
	require.NoError(t, err)

	result, err := s.MaxSpending(context.Background())
	require.NoError(t, err)

	assert.True(t, result.ScaleFactor.LessThan(decimal.NewFromInt(1)),
		"expected a cut below configured spending, got factor %s", result.ScaleFactor)
}

func TestMaxSpendingRequiresExpenses(t *testing.T) {
	inputs := solverInputs(1000000, 40000)
	inputs.Expenses = nil
	s, err := NewSolver(inputs, solverConfig(), DefaultOptions())
	require.NoError(t, err)

	_, err = s.MaxSpending(context.Background())
	assert.Error(t, err)
}

func TestEarliestRetirement(t *testing.T) {
	s, err := NewSolver(solverInputs(3000000, 50000), solverConfig(), DefaultOptions())
	require.NoError(t, err)

	result, err := s.EarliestRetirement(context.Background())
	require.NoError(t, err)

	require.True(t, result.Achievable)
	assert.GreaterOrEqual(t, result.Age, 56)
	assert.LessOrEqual(t, result.Age, 70)
	assert.True(t, result.SuccessRate.GreaterThanOrEqual(decimal.NewFromFloat(0.90)))
}

func TestEarliestRetirementUnachievable(t *testing.T) {
	// Expenses outrun income and portfolio no matter when work stops.
	s, err := NewSolver(solverInputs(10000, 400000), solverConfig(), DefaultOptions())
	require.NoError(t, err)

	result, err := s.EarliestRetirement(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Achievable)
}

func TestEarliestRetirementRequiresFixedAge(t *testing.T) {
	inputs := solverInputs(1000000, 40000)
	inputs.Timeline.Retirement = domain.RetirementStrategy{
		Type:               domain.RetireAtSWRTarget,
		SafeWithdrawalRate: decimal.NewFromFloat(0.04),
	}
	s, err := NewSolver(inputs, solverConfig(), DefaultOptions())
	require.NoError(t, err)

	_, err = s.EarliestRetirement(context.Background())
	assert.Error(t, err)
}

func TestSolverDeterminism(t *testing.T) {
	run := func() *SpendingResult {
		s, err := NewSolver(solverInputs(2000000, 60000), solverConfig(), DefaultOptions())
		require.NoError(t, err)
		result, err := s.MaxSpending(context.Background())
		require.NoError(t, err)
		return result
	}
	a, b := run(), run()
	assert.True(t, a.ScaleFactor.Equal(b.ScaleFactor))
	assert.True(t, a.SuccessRate.Equal(b.SuccessRate))
}
