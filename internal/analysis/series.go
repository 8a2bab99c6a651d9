package analysis

import (
	"github.com/shopspring/decimal"

	"firesim/internal/domain"
	"firesim/internal/simulation"
)

// Point is one chart sample, denominated by age.
type Point struct {
	Age   int             `json:"age"`
	Value decimal.Decimal `json:"value"`
}

// Series is one named chart line.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// PortfolioSeries is the total balance line for one trace.
func PortfolioSeries(r *simulation.Result) Series {
	s := Series{Name: "portfolio"}
	if r == nil {
		return s
	}
	for _, dp := range r.Data {
		s.Points = append(s.Points, Point{Age: dp.Age, Value: dp.TotalBalance})
	}
	return s
}

// CategorySeries breaks the balance into one line per tax category.
func CategorySeries(r *simulation.Result) []Series {
	if r == nil {
		return nil
	}
	cash := Series{Name: "cash"}
	taxable := Series{Name: "taxable"}
	deferred := Series{Name: "taxDeferred"}
	free := Series{Name: "taxFree"}
	for _, dp := range r.Data {
		cash.Points = append(cash.Points, Point{Age: dp.Age, Value: dp.CashBalance})
		taxable.Points = append(taxable.Points, Point{Age: dp.Age, Value: dp.Taxable})
		deferred.Points = append(deferred.Points, Point{Age: dp.Age, Value: dp.TaxDeferred})
		free.Points = append(free.Points, Point{Age: dp.Age, Value: dp.TaxFree})
	}
	return []Series{cash, taxable, deferred, free}
}

// BandSeries turns ensemble percentile bands into chart lines, p10 first.
func BandSeries(m *simulation.MultiResult) []Series {
	if m == nil || len(m.Bands) == 0 {
		return nil
	}
	names := []string{"p10", "p25", "p50", "p75", "p90"}
	pick := []func(simulation.PercentileBand) decimal.Decimal{
		func(b simulation.PercentileBand) decimal.Decimal { return b.P10 },
		func(b simulation.PercentileBand) decimal.Decimal { return b.P25 },
		func(b simulation.PercentileBand) decimal.Decimal { return b.P50 },
		func(b simulation.PercentileBand) decimal.Decimal { return b.P75 },
		func(b simulation.PercentileBand) decimal.Decimal { return b.P90 },
	}
	out := make([]Series, len(names))
	for i, name := range names {
		s := Series{Name: name}
		for _, band := range m.Bands {
			s.Points = append(s.Points, Point{Age: band.Age, Value: pick[i](band)})
		}
		out[i] = s
	}
	return out
}

// PhaseMarker flags the first age each lifecycle phase was recorded at,
// for chart annotations.
type PhaseMarker struct {
	Phase domain.Phase `json:"phase"`
	Age   int          `json:"age"`
}

// PhaseMarkers lists the phase transitions of one trace in age order.
func PhaseMarkers(r *simulation.Result) []PhaseMarker {
	if r == nil {
		return nil
	}
	ages := phaseAges(r)
	var out []PhaseMarker
	for _, phase := range []domain.Phase{
		domain.PhaseAccumulation,
		domain.PhaseCoast,
		domain.PhaseBarista,
		domain.PhaseRetirement,
		domain.PhaseTerminal,
	} {
		if age, ok := ages[phase]; ok {
			out = append(out, PhaseMarker{Phase: phase, Age: age})
		}
	}
	return out
}
