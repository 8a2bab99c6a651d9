package returns

import "firesim/internal/domain"

// FixedProvider returns the configured expected rates every year. Used for
// the deterministic single-path projection.
type FixedProvider struct {
	market domain.MarketAssumptions
}

func NewFixedProvider(market domain.MarketAssumptions) *FixedProvider {
	return &FixedProvider{market: market}
}

func (p *FixedProvider) Returns(_ domain.Phase) (Rates, error) {
	return Rates{
		Stocks:     p.market.StockReturn,
		Bonds:      p.market.BondReturn,
		Cash:       p.market.CashReturn,
		Inflation:  p.market.InflationRate,
		StockYield: p.market.StockYield,
		BondYield:  p.market.BondYield,
	}, nil
}
