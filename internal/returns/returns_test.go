package returns

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firesim/internal/domain"
	"firesim/internal/histdata"
)

func TestHistoricalYear(t *testing.T) {
	single := []HistoricalRange{{StartYear: 2000, EndYear: 2010}}
	spliced := []HistoricalRange{
		{StartYear: 1990, EndYear: 1994},
		{StartYear: 2000, EndYear: 2004},
	}
	wrapped := []HistoricalRange{
		{StartYear: 2024, EndYear: 2024},
		{StartYear: 1928, EndYear: 2024},
	}

	tests := []struct {
		name   string
		ranges []HistoricalRange
		index  int
		want   int
		ok     bool
	}{
		{"single range start", single, 0, 2000, true},
		{"single range middle", single, 5, 2005, true},
		{"single range end", single, 10, 2010, true},
		{"past end clamps", single, 100, 2010, true},
		{"first splice end", spliced, 4, 1994, true},
		{"second splice start", spliced, 5, 2000, true},
		{"second splice end", spliced, 9, 2004, true},
		{"wrap first year", wrapped, 0, 2024, true},
		{"wrap second year", wrapped, 1, 1928, true},
		{"wrap full circle", wrapped, 97, 2024, true},
		{"empty ranges", nil, 0, 0, false},
		{"negative index", single, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HistoricalYear(tt.ranges, tt.index)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRandDeterminism(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next(), "sequence diverged at draw %d", i)
	}

	c := NewRand(43)
	diverged := false
	d := NewRand(42)
	for i := 0; i < 10; i++ {
		if c.Next() != d.Next() {
			diverged = true
			break
		}
	}
	assert.True(t, diverged, "different seeds produced identical sequences")
}

func TestRandSeedNormalization(t *testing.T) {
	// Zero and negative seeds still produce usable sequences.
	zero := NewRand(0)
	one := NewRand(1)
	assert.Equal(t, one.Next(), zero.Next())

	neg := NewRand(-7)
	pos := NewRand(7)
	assert.Equal(t, pos.Next(), neg.Next())
}

func TestRandRange(t *testing.T) {
	r := NewRand(1)
	for i := 0; i < 1000; i++ {
		v := r.Next()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}

	r = NewRand(99)
	for i := 0; i < 1000; i++ {
		n := r.IntN(10)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 10)
	}
}

func TestFixedProviderReturnsConfiguredRates(t *testing.T) {
	market := domain.MarketAssumptions{
		StockReturn:   decimal.NewFromFloat(0.07),
		BondReturn:    decimal.NewFromFloat(0.03),
		CashReturn:    decimal.NewFromFloat(0.01),
		InflationRate: decimal.NewFromFloat(0.025),
		StockYield:    decimal.NewFromFloat(0.018),
		BondYield:     decimal.NewFromFloat(0.04),
	}
	p := NewFixedProvider(market)

	for i := 0; i < 5; i++ {
		rates, err := p.Returns(domain.PhaseAccumulation)
		require.NoError(t, err)
		assert.True(t, rates.Stocks.Equal(market.StockReturn))
		assert.True(t, rates.Bonds.Equal(market.BondReturn))
		assert.True(t, rates.Inflation.Equal(market.InflationRate))
	}
}

func TestStochasticProviderSeedReproducibility(t *testing.T) {
	market := domain.MarketAssumptions{
		StockReturn:   decimal.NewFromFloat(0.07),
		BondReturn:    decimal.NewFromFloat(0.03),
		CashReturn:    decimal.NewFromFloat(0.01),
		InflationRate: decimal.NewFromFloat(0.025),
		StockYield:    decimal.NewFromFloat(0.018),
		BondYield:     decimal.NewFromFloat(0.04),
	}

	a := NewStochasticProvider(market, 12345)
	b := NewStochasticProvider(market, 12345)
	for i := 0; i < 50; i++ {
		ra, err := a.Returns(domain.PhaseAccumulation)
		require.NoError(t, err)
		rb, err := b.Returns(domain.PhaseAccumulation)
		require.NoError(t, err)
		assert.True(t, ra.Stocks.Equal(rb.Stocks), "stocks diverged at year %d", i)
		assert.True(t, ra.Inflation.Equal(rb.Inflation), "inflation diverged at year %d", i)
	}
}

func TestStochasticProviderBounds(t *testing.T) {
	market := domain.MarketAssumptions{
		StockReturn:   decimal.NewFromFloat(0.07),
		BondReturn:    decimal.NewFromFloat(0.03),
		CashReturn:    decimal.NewFromFloat(0.01),
		InflationRate: decimal.NewFromFloat(0.025),
		StockYield:    decimal.NewFromFloat(0.018),
		BondYield:     decimal.NewFromFloat(0.04),
	}
	p := NewStochasticProvider(market, 7)
	negOne := decimal.NewFromInt(-1)

	for i := 0; i < 500; i++ {
		rates, err := p.Returns(domain.PhaseAccumulation)
		require.NoError(t, err)
		assert.True(t, rates.Stocks.GreaterThan(negOne), "stock return at or below -100%% in year %d", i)
		assert.False(t, rates.StockYield.IsNegative(), "negative stock yield in year %d", i)
		assert.False(t, rates.BondYield.IsNegative(), "negative bond yield in year %d", i)
	}
}

func TestHistoricalProviderReplay(t *testing.T) {
	p, err := NewHistoricalProvider(2000)
	require.NoError(t, err)

	rates, err := p.Returns(domain.PhaseAccumulation)
	require.NoError(t, err)

	want, err := histdata.Get(2000)
	require.NoError(t, err)
	assert.True(t, rates.Stocks.Equal(decimal.NewFromFloat(want.StockReturn)))
	assert.True(t, rates.Inflation.Equal(decimal.NewFromFloat(want.InflationRate)))

	ranges := p.HistoricalRanges()
	require.Len(t, ranges, 1)
	assert.Equal(t, 2000, ranges[0].StartYear)
	assert.Equal(t, 2000, ranges[0].EndYear)
}

func TestHistoricalProviderRejectsOutOfRangeStart(t *testing.T) {
	_, err := NewHistoricalProvider(1800)
	assert.Error(t, err)
	_, err = NewHistoricalProvider(3000)
	assert.Error(t, err)
}

func TestHistoricalProviderWraparound(t *testing.T) {
	first, last := histdata.Range()
	p, err := NewHistoricalProvider(last)
	require.NoError(t, err)

	_, err = p.Returns(domain.PhaseAccumulation)
	require.NoError(t, err)
	_, err = p.Returns(domain.PhaseAccumulation)
	require.NoError(t, err)

	ranges := p.HistoricalRanges()
	require.Len(t, ranges, 2)
	assert.Equal(t, last, ranges[0].StartYear)
	assert.Equal(t, last, ranges[0].EndYear)
	assert.Equal(t, first, ranges[1].StartYear)
	assert.Equal(t, first, ranges[1].EndYear)
}

func TestBacktestProviderSeedDeterminism(t *testing.T) {
	a := NewBacktestProvider(555)
	b := NewBacktestProvider(555)

	for i := 0; i < 120; i++ {
		ra, err := a.Returns(domain.PhaseAccumulation)
		require.NoError(t, err)
		rb, err := b.Returns(domain.PhaseAccumulation)
		require.NoError(t, err)
		assert.True(t, ra.Stocks.Equal(rb.Stocks), "diverged at year %d", i)
	}
	assert.Equal(t, a.HistoricalRanges(), b.HistoricalRanges())
}

func TestBacktestProviderRangesCoverEveryPeriod(t *testing.T) {
	p := NewBacktestProvider(9)
	const periods = 120 // longer than the dataset, forces a wrap

	for i := 0; i < periods; i++ {
		_, err := p.Returns(domain.PhaseAccumulation)
		require.NoError(t, err)
	}

	total := 0
	for _, r := range p.HistoricalRanges() {
		total += r.Len()
	}
	assert.Equal(t, periods, total)

	// Every period index maps back to a calendar year.
	for i := 0; i < periods; i++ {
		_, ok := HistoricalYear(p.HistoricalRanges(), i)
		assert.True(t, ok)
	}
}

func TestBacktestProviderRetirementOverride(t *testing.T) {
	p := NewBacktestProvider(1, WithStartYear(1990), WithRetirementStartYear(1966))

	for i := 0; i < 5; i++ {
		_, err := p.Returns(domain.PhaseAccumulation)
		require.NoError(t, err)
	}
	for i := 0; i < 5; i++ {
		_, err := p.Returns(domain.PhaseRetirement)
		require.NoError(t, err)
	}

	ranges := p.HistoricalRanges()
	require.Len(t, ranges, 2)
	assert.Equal(t, HistoricalRange{StartYear: 1990, EndYear: 1994}, ranges[0])
	assert.Equal(t, HistoricalRange{StartYear: 1966, EndYear: 1970}, ranges[1])

	// The re-splice happens once, on the phase transition only.
	year, ok := HistoricalYear(ranges, 5)
	require.True(t, ok)
	assert.Equal(t, 1966, year)
}
