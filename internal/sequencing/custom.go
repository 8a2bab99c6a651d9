package sequencing

import "firesim/internal/domain"

// CustomStrategy withdraws by an explicit tax-category order. Categories
// the caller omits are appended afterwards in the standard order, so a
// partial sequence can never strand reachable money.
type CustomStrategy struct {
	sequence []domain.TaxCategory
}

func NewCustomStrategy(sequence []domain.TaxCategory) *CustomStrategy {
	return &CustomStrategy{sequence: sequence}
}

func (s *CustomStrategy) Name() string { return "custom" }

func (s *CustomStrategy) Plan(sources []Source, ctx Context) Plan {
	plan := Plan{Requested: ctx.NeedAmount, StrategyUsed: s.Name()}
	remaining := satisfyRMDs(&plan, sources, ctx.NeedAmount, ctx)

	seen := map[domain.TaxCategory]bool{}
	var steps []step
	for _, cat := range s.sequence {
		if seen[cat] {
			continue
		}
		seen[cat] = true
		steps = append(steps, step{match: matchCategory(cat)})
	}
	for _, cat := range []domain.TaxCategory{
		domain.CategoryCash,
		domain.CategoryTaxable,
		domain.CategoryTaxDeferred,
		domain.CategoryTaxFree,
	} {
		if !seen[cat] {
			steps = append(steps, step{match: matchCategory(cat)})
		}
	}

	remaining = drain(&plan, sources, remaining, ctx, steps)
	return finish(&plan, remaining)
}
