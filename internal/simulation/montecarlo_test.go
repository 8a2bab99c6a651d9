package simulation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firesim/internal/domain"
)

func ensembleInputs() *domain.SimulatorInputs {
	inputs := lifetimeInputs()
	inputs.Timeline.LifeExpectancy = 50
	inputs.Market = domain.MarketAssumptions{
		StockReturn:   decimal.NewFromFloat(0.07),
		BondReturn:    decimal.NewFromFloat(0.03),
		CashReturn:    decimal.NewFromFloat(0.01),
		InflationRate: decimal.NewFromFloat(0.025),
	}
	inputs.Timeline.Retirement.RetirementAge = 45
	return inputs
}

func TestSeedForSimulation(t *testing.T) {
	assert.Equal(t, int64(42), SeedForSimulation(42, 0))
	assert.Equal(t, int64(42+1009), SeedForSimulation(42, 1))
	assert.Equal(t, int64(42+10*1009), SeedForSimulation(42, 10))
}

func TestMultiEngineValidation(t *testing.T) {
	inputs := ensembleInputs()

	_, err := NewMultiEngine(inputs, MultiConfig{NumSimulations: 0, Mode: ModeStochastic})
	assert.Error(t, err)

	_, err = NewMultiEngine(inputs, MultiConfig{NumSimulations: 10, Mode: "mystery"})
	assert.Error(t, err)

	_, err = NewMultiEngine(nil, MultiConfig{NumSimulations: 10, Mode: ModeStochastic})
	assert.Error(t, err)
}

func runEnsemble(t *testing.T, mode Mode, n int) *MultiResult {
	t.Helper()
	me, err := NewMultiEngine(ensembleInputs(), MultiConfig{
		NumSimulations: n,
		BaseSeed:       42,
		Mode:           mode,
		StartYear:      2026,
	})
	require.NoError(t, err)
	result, err := me.Run(context.Background())
	require.NoError(t, err)
	return result
}

func TestMultiEngineStochastic(t *testing.T) {
	result := runEnsemble(t, ModeStochastic, 16)

	assert.Equal(t, 16, result.NumSimulations)
	require.Len(t, result.Results, 16)
	for i, r := range result.Results {
		require.NotNil(t, r, "missing result %d", i)
		assert.Equal(t, SeedForSimulation(42, i), r.Context.Seed)
		assert.Len(t, r.Data, 21)
	}

	assert.False(t, result.SuccessRate.IsNegative())
	assert.False(t, result.SuccessRate.GreaterThan(decimal.NewFromInt(1)))

	require.Len(t, result.Bands, 21)
	for _, band := range result.Bands {
		assert.True(t, band.P10.LessThanOrEqual(band.P25), "age %d", band.Age)
		assert.True(t, band.P25.LessThanOrEqual(band.P50), "age %d", band.Age)
		assert.True(t, band.P50.LessThanOrEqual(band.P75), "age %d", band.Age)
		assert.True(t, band.P75.LessThanOrEqual(band.P90), "age %d", band.Age)
	}

	assert.True(t, result.FinalBalances.Min.LessThanOrEqual(result.FinalBalances.Median))
	assert.True(t, result.FinalBalances.Median.LessThanOrEqual(result.FinalBalances.Max))
}

func TestMultiEngineReproducible(t *testing.T) {
	a := runEnsemble(t, ModeStochastic, 8)
	b := runEnsemble(t, ModeStochastic, 8)

	assert.True(t, a.SuccessRate.Equal(b.SuccessRate))
	require.Len(t, b.Bands, len(a.Bands))
	for i := range a.Bands {
		assert.True(t, a.Bands[i].P50.Equal(b.Bands[i].P50), "median diverged at period %d", i)
	}
	for i := range a.Results {
		assert.True(t, a.Results[i].FinalBalance().Equal(b.Results[i].FinalBalance()),
			"simulation %d diverged", i)
	}
}

func TestMultiEngineBacktest(t *testing.T) {
	result := runEnsemble(t, ModeBacktest, 8)

	for i, r := range result.Results {
		require.NotNil(t, r, "missing result %d", i)
		assert.NotEmpty(t, r.Context.HistoricalRanges, "backtest %d should record its splices", i)

		total := 0
		for _, hr := range r.Context.HistoricalRanges {
			total += hr.Len()
		}
		assert.Equal(t, 20, total, "splices should cover every simulated year")
	}
}

func TestMultiEngineCancellation(t *testing.T) {
	me, err := NewMultiEngine(ensembleInputs(), MultiConfig{
		NumSimulations: 64,
		BaseSeed:       1,
		Mode:           ModeStochastic,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = me.Run(ctx)
	assert.Error(t, err)
}
