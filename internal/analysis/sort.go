package analysis

import (
	"sort"

	"firesim/internal/simulation"
)

// SortMode orders ensemble members for drill-down views.
type SortMode string

const (
	SortFinalPortfolio        SortMode = "finalPortfolioValue"
	SortRetirementAge         SortMode = "retirementAge"
	SortBankruptcyAge         SortMode = "bankruptcyAge"
	SortAverageStockReturn    SortMode = "averageStockReturn"
	SortEarlyRetirementReturn SortMode = "earlyRetirementStockReturn"
)

// ValidSortMode reports whether the mode is one of the known orderings.
func ValidSortMode(m SortMode) bool {
	switch m {
	case SortFinalPortfolio, SortRetirementAge, SortBankruptcyAge,
		SortAverageStockReturn, SortEarlyRetirementReturn:
		return true
	}
	return false
}

// SortResults returns the ensemble members ordered ascending by the given
// mode. Members missing the sorted attribute (never retired, never
// bankrupt) sort after everyone that has it. The input slice is not
// modified.
func SortResults(results []*simulation.Result, mode SortMode) []*simulation.Result {
	sorted := make([]*simulation.Result, len(results))
	copy(sorted, results)

	less := func(a, b *simulation.Result) bool {
		switch mode {
		case SortRetirementAge:
			return lessIntPtr(a.Context.RetirementAge, b.Context.RetirementAge)
		case SortBankruptcyAge:
			return lessIntPtr(a.Context.BankruptcyAge, b.Context.BankruptcyAge)
		case SortAverageStockReturn:
			av, aok := averageStockReturn(a)
			bv, bok := averageStockReturn(b)
			if aok != bok {
				return aok
			}
			return av.LessThan(bv)
		case SortEarlyRetirementReturn:
			av, aok := earlyRetirementStockReturn(a)
			bv, bok := earlyRetirementStockReturn(b)
			if aok != bok {
				return aok
			}
			return av.LessThan(bv)
		default:
			return a.FinalBalance().LessThan(b.FinalBalance())
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

func lessIntPtr(a, b *int) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a < *b
	}
}
