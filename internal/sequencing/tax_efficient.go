package sequencing

import "firesim/internal/domain"

// TaxEfficientStrategy spends tax-deferred dollars before touching Roth,
// trading ordinary income today for decades of tax-free growth. Order is
// the same at every age; early-withdrawal penalties are still reported
// when the plan dips into penalized money.
type TaxEfficientStrategy struct{}

func NewTaxEfficientStrategy() *TaxEfficientStrategy { return &TaxEfficientStrategy{} }

func (s *TaxEfficientStrategy) Name() string { return "tax_efficient" }

func (s *TaxEfficientStrategy) Plan(sources []Source, ctx Context) Plan {
	plan := Plan{Requested: ctx.NeedAmount, StrategyUsed: s.Name()}
	remaining := satisfyRMDs(&plan, sources, ctx.NeedAmount, ctx)
	remaining = drain(&plan, sources, remaining, ctx, []step{
		{match: matchCategory(domain.CategoryCash)},
		{match: matchCategory(domain.CategoryTaxable)},
		{match: matchDeferredNonHSA},
		{match: matchHSA},
		{match: matchCategory(domain.CategoryTaxFree)},
	})
	return finish(&plan, remaining)
}
