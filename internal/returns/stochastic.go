package returns

import (
	"math"

	"github.com/shopspring/decimal"

	"firesim/internal/domain"
)

// Volatility holds the annual standard deviations used when drawing
// stochastic rates. Defaults come from the long-run historical series.
type Volatility struct {
	StockReturn float64
	BondReturn  float64
	CashReturn  float64
	Inflation   float64
	StockYield  float64
	BondYield   float64
}

// DefaultVolatility reflects roughly a century of US market history.
var DefaultVolatility = Volatility{
	StockReturn: 0.18,
	BondReturn:  0.06,
	CashReturn:  0.03,
	Inflation:   0.04,
	StockYield:  0.01,
	BondYield:   0.015,
}

// correlationMatrix captures co-movement of the six sampled series, in
// order: stock return, bond return, cash return, inflation, bond yield,
// stock yield. Estimated over data since 1990.
var correlationMatrix = [6][6]float64{
	{1.00, -0.10, 0.07, -0.02, 0.02, -0.27},
	{-0.10, 1.00, 0.21, -0.33, 0.04, 0.23},
	{0.07, 0.21, 1.00, 0.31, 0.81, 0.14},
	{-0.02, -0.33, 0.31, 1.00, 0.26, 0.01},
	{0.02, 0.04, 0.81, 0.26, 1.00, 0.36},
	{-0.27, 0.23, 0.14, 0.01, 0.36, 1.00},
}

// choleskyFactor is the lower-triangular decomposition of the correlation
// matrix, computed once at startup.
var choleskyFactor = cholesky(correlationMatrix)

func cholesky(m [6][6]float64) [6][6]float64 {
	var l [6][6]float64
	for i := 0; i < 6; i++ {
		for j := 0; j <= i; j++ {
			sum := 0.0
			for k := 0; k < j; k++ {
				sum += l[i][k] * l[j][k]
			}
			if i == j {
				l[i][j] = math.Sqrt(m[i][i] - sum)
			} else {
				l[i][j] = (m[i][j] - sum) / l[j][j]
			}
		}
	}
	return l
}

// StochasticProvider draws correlated random rates around the configured
// expectations. Stock returns and yields use a log-normal distribution
// (returns are bounded below by -100%, yields by zero); bonds, cash, and
// inflation use a normal distribution. A given seed always reproduces the
// identical path.
type StochasticProvider struct {
	market     domain.MarketAssumptions
	volatility Volatility
	rng        *Rand
}

func NewStochasticProvider(market domain.MarketAssumptions, seed int64) *StochasticProvider {
	return &StochasticProvider{
		market:     market,
		volatility: DefaultVolatility,
		rng:        NewRand(seed),
	}
}

func (p *StochasticProvider) Returns(_ domain.Phase) (Rates, error) {
	var z [6]float64
	for i := range z {
		z[i] = p.rng.NormFloat64()
	}
	corr := correlate(z)

	nominalStocks := logNormalReturn(f(p.market.StockReturn), p.volatility.StockReturn, corr[0])
	nominalBonds := normalReturn(f(p.market.BondReturn), p.volatility.BondReturn, corr[1])
	nominalCash := normalReturn(f(p.market.CashReturn), p.volatility.CashReturn, corr[2])
	inflation := normalReturn(f(p.market.InflationRate), p.volatility.Inflation, corr[3])
	bondYield := logNormalYield(f(p.market.BondYield), p.volatility.BondYield, corr[4])
	stockYield := logNormalYield(f(p.market.StockYield), p.volatility.StockYield, corr[5])

	// Fisher equation: deflate nominal returns to real.
	return Rates{
		Stocks:     d(realRate(nominalStocks, inflation)),
		Bonds:      d(realRate(nominalBonds, inflation)),
		Cash:       d(realRate(nominalCash, inflation)),
		Inflation:  d(inflation),
		StockYield: d(stockYield),
		BondYield:  d(bondYield),
	}, nil
}

func correlate(z [6]float64) [6]float64 {
	var out [6]float64
	for i := 0; i < 6; i++ {
		for j := 0; j <= i; j++ {
			out[i] += choleskyFactor[i][j] * z[j]
		}
	}
	return out
}

// logNormalReturn converts the arithmetic mean and standard deviation of
// the gross return (1+R) to log-space parameters, then exponentiates a
// normal draw. Keeps sampled returns above -100%.
func logNormalReturn(expected, volatility, z float64) float64 {
	mean := 1 + expected
	variance := volatility * volatility

	sigma := math.Sqrt(math.Log(1 + variance/(mean*mean)))
	mu := math.Log(mean) - 0.5*sigma*sigma

	return math.Exp(mu+sigma*z) - 1
}

// logNormalYield is the same moment conversion applied to the yield
// itself, which keeps sampled yields non-negative.
func logNormalYield(expected, volatility, z float64) float64 {
	if expected <= 0 {
		return 0
	}
	variance := volatility * volatility

	sigma := math.Sqrt(math.Log(1 + variance/(expected*expected)))
	mu := math.Log(expected) - 0.5*sigma*sigma

	return math.Exp(mu + sigma*z)
}

func normalReturn(expected, volatility, z float64) float64 {
	return expected + volatility*z
}

func realRate(nominal, inflation float64) float64 {
	return (1+nominal)/(1+inflation) - 1
}

func f(v decimal.Decimal) float64 {
	out, _ := v.Float64()
	return out
}

func d(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}
