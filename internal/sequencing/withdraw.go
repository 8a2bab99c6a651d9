package sequencing

import (
	"github.com/shopspring/decimal"

	"firesim/internal/domain"
)

// step selects which sources the next drain pass may touch and how much
// of each balance is available to it.
type step struct {
	match func(Source) bool
	cap   func(Source) decimal.Decimal // nil means the full balance
}

func matchCategory(cat domain.TaxCategory) func(Source) bool {
	return func(s Source) bool { return s.Type.TaxCategory() == cat }
}

func matchDeferredNonHSA(s Source) bool {
	return s.Type.TaxCategory() == domain.CategoryTaxDeferred && s.Type != domain.AccountHSA
}

func matchHSA(s Source) bool {
	return s.Type == domain.AccountHSA
}

// satisfyRMDs withdraws every pending required distribution before any
// discretionary ordering, crediting the amounts against the remaining
// need. A distribution larger than the need still comes out in full; the
// engine redirects the excess to cash.
func satisfyRMDs(plan *Plan, sources []Source, remaining decimal.Decimal, ctx Context) decimal.Decimal {
	plan.RMDSatisfied = true
	for i := range sources {
		src := &sources[i]
		if !src.PendingRMD.IsPositive() {
			continue
		}
		amount := src.PendingRMD
		if amount.GreaterThan(src.Balance) {
			amount = src.Balance
			plan.RMDSatisfied = false
		}
		if !amount.IsPositive() {
			continue
		}
		apply(plan, src, amount, ctx)
		remaining = remaining.Sub(amount)
	}
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return remaining
}

// drain runs the ordered steps until the need is met or sources run dry.
func drain(plan *Plan, sources []Source, remaining decimal.Decimal, ctx Context, steps []step) decimal.Decimal {
	for _, st := range steps {
		if !remaining.IsPositive() {
			break
		}
		for i := range sources {
			if !remaining.IsPositive() {
				break
			}
			src := &sources[i]
			if !st.match(*src) {
				continue
			}
			available := src.Balance
			if st.cap != nil {
				if c := st.cap(*src); c.LessThan(available) {
					available = c
				}
			}
			if !available.IsPositive() {
				continue
			}
			amount := available
			if amount.GreaterThan(remaining) {
				amount = remaining
			}
			apply(plan, src, amount, ctx)
			remaining = remaining.Sub(amount)
		}
	}
	return remaining
}

// apply withdraws amount from src, decomposes it for tax purposes, and
// records it on the plan. Callers guarantee amount <= src.Balance.
func apply(plan *Plan, src *Source, amount decimal.Decimal, ctx Context) {
	alloc := Allocation{AccountID: src.AccountID, Gross: amount}

	switch src.Type.TaxCategory() {
	case domain.CategoryCash:
		alloc.TaxFreePortion = amount

	case domain.CategoryTaxable:
		// Gains approximation: withdrawn dollars carry the account's
		// overall gain ratio, and the basis shrinks by the recovered part.
		unrealized := src.Balance.Sub(src.CostBasis)
		if unrealized.IsNegative() {
			unrealized = decimal.Zero
		}
		gains := decimal.Zero
		if src.Balance.IsPositive() {
			gains = amount.Mul(unrealized).Div(src.Balance)
		}
		alloc.CapitalGainsPortion = gains
		alloc.TaxFreePortion = amount.Sub(gains)
		src.CostBasis = src.CostBasis.Sub(alloc.TaxFreePortion)
		if src.CostBasis.IsNegative() {
			src.CostBasis = decimal.Zero
		}

	case domain.CategoryTaxDeferred:
		alloc.OrdinaryPortion = amount
		if src.Type == domain.AccountHSA {
			if ctx.Age < hsaPenaltyEndAge {
				alloc.Penalty = amount.Mul(hsaPenaltyRate)
			}
		} else if ctx.EarlyWithdrawal() {
			alloc.Penalty = amount.Mul(earlyPenaltyRate)
		}

	case domain.CategoryTaxFree:
		// Contributions come out first, always tax and penalty free.
		fromContributions := amount
		if fromContributions.GreaterThan(src.ContributionBasis) {
			fromContributions = src.ContributionBasis
		}
		if fromContributions.IsNegative() {
			fromContributions = decimal.Zero
		}
		earnings := amount.Sub(fromContributions)
		alloc.TaxFreePortion = fromContributions
		src.ContributionBasis = src.ContributionBasis.Sub(fromContributions)
		if earnings.IsPositive() {
			if ctx.EarlyWithdrawal() {
				alloc.OrdinaryPortion = earnings
				alloc.Penalty = earnings.Mul(earlyPenaltyRate)
			} else {
				alloc.TaxFreePortion = alloc.TaxFreePortion.Add(earnings)
			}
		}
	}

	src.Balance = src.Balance.Sub(amount)
	if src.PendingRMD.IsPositive() {
		src.PendingRMD = src.PendingRMD.Sub(amount)
		if src.PendingRMD.IsNegative() {
			src.PendingRMD = decimal.Zero
		}
	}

	plan.Allocations = append(plan.Allocations, alloc)
	plan.TotalSourced = plan.TotalSourced.Add(amount)
	plan.EstimatedOrdinaryIncome = plan.EstimatedOrdinaryIncome.Add(alloc.OrdinaryPortion)
	plan.EstimatedCapitalGains = plan.EstimatedCapitalGains.Add(alloc.CapitalGainsPortion)
	plan.EstimatedPenalties = plan.EstimatedPenalties.Add(alloc.Penalty)
}

func finish(plan *Plan, remaining decimal.Decimal) Plan {
	plan.RemainingNeed = remaining
	if remaining.IsPositive() {
		plan.Notes = append(plan.Notes, "insufficient balances to meet withdrawal need")
	}
	return *plan
}
