package sequencing

import (
	"github.com/shopspring/decimal"

	"firesim/internal/domain"
)

// StandardStrategy drains cash first, then taxable, keeping tax-advantaged
// money invested longest. Before age 59 1/2 it prefers penalty-free Roth
// contributions over penalized tax-deferred dollars; Roth earnings and the
// HSA come out last.
type StandardStrategy struct{}

func NewStandardStrategy() *StandardStrategy { return &StandardStrategy{} }

func (s *StandardStrategy) Name() string { return "standard" }

func (s *StandardStrategy) Plan(sources []Source, ctx Context) Plan {
	plan := Plan{Requested: ctx.NeedAmount, StrategyUsed: s.Name()}
	remaining := satisfyRMDs(&plan, sources, ctx.NeedAmount, ctx)
	remaining = drain(&plan, sources, remaining, ctx, s.steps(ctx))
	return finish(&plan, remaining)
}

func (s *StandardStrategy) steps(ctx Context) []step {
	if ctx.EarlyWithdrawal() {
		return []step{
			{match: matchCategory(domain.CategoryCash)},
			{match: matchCategory(domain.CategoryTaxable)},
			{match: matchCategory(domain.CategoryTaxFree), cap: func(s Source) decimal.Decimal { return s.ContributionBasis }},
			{match: matchDeferredNonHSA},
			{match: matchCategory(domain.CategoryTaxFree)},
			{match: matchHSA},
		}
	}
	return []step{
		{match: matchCategory(domain.CategoryCash)},
		{match: matchCategory(domain.CategoryTaxable)},
		{match: matchDeferredNonHSA},
		{match: matchCategory(domain.CategoryTaxFree)},
		{match: matchHSA},
	}
}
