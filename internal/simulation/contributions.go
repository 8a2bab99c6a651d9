package simulation

import (
	"sort"

	"github.com/shopspring/decimal"

	"firesim/internal/domain"
)

// deferralLimit holds the annual contribution cap for fill-to-limit rules,
// with the catch-up addition once the holder reaches CatchUpAge.
type deferralLimit struct {
	Base       decimal.Decimal
	CatchUp    decimal.Decimal
	CatchUpAge int
}

// deferralLimits2025 are the IRS employee contribution caps used when a
// fill-to-limit rule does not carry its own limit.
var deferralLimits2025 = map[domain.AccountType]deferralLimit{
	domain.AccountTraditional401k: {Base: decimal.NewFromInt(23500), CatchUp: decimal.NewFromInt(7500), CatchUpAge: 50},
	domain.AccountRoth401k:        {Base: decimal.NewFromInt(23500), CatchUp: decimal.NewFromInt(7500), CatchUpAge: 50},
	domain.AccountTraditionalIRA:  {Base: decimal.NewFromInt(7000), CatchUp: decimal.NewFromInt(1000), CatchUpAge: 50},
	domain.AccountRothIRA:         {Base: decimal.NewFromInt(7000), CatchUp: decimal.NewFromInt(1000), CatchUpAge: 50},
	domain.AccountHSA:             {Base: decimal.NewFromInt(4300), CatchUp: decimal.NewFromInt(1000), CatchUpAge: 55},
}

func annualLimit(rule domain.ContributionRule, accountType domain.AccountType, age int) decimal.Decimal {
	if rule.AnnualLimit != nil {
		return *rule.AnnualLimit
	}
	lim, ok := deferralLimits2025[accountType]
	if !ok {
		return decimal.Zero
	}
	limit := lim.Base
	if age >= lim.CatchUpAge {
		limit = limit.Add(lim.CatchUp)
	}
	return limit
}

// applyContributionRules routes surplus cash into accounts by ascending
// rule rank, then settles the leftover per the base rule: spend discards
// it as discretionary spending, save deposits it into overflow savings.
// Returns the total contributed (including overflow), the portion that
// went into tax-deferred accounts, and the amount spent.
func applyContributionRules(
	p *Portfolio,
	inputs *domain.SimulatorInputs,
	surplus decimal.Decimal,
	grossIncome decimal.Decimal,
	age int,
) (contributed, deferred, spent decimal.Decimal) {
	if !surplus.IsPositive() {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}

	rules := make([]domain.ContributionRule, len(inputs.ContributionRules))
	copy(rules, inputs.ContributionRules)
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Rank < rules[j].Rank })

	remaining := surplus
	for _, rule := range rules {
		if !remaining.IsPositive() {
			break
		}
		account, ok := p.Account(rule.AccountID)
		if !ok {
			continue
		}

		var want decimal.Decimal
		switch rule.Kind {
		case domain.ContributeFixedAmount:
			want = rule.Amount
		case domain.ContributePercentOfIncome:
			want = grossIncome.Mul(rule.Percent)
		case domain.ContributeFillToLimit:
			want = annualLimit(rule, account.Type, age)
		}
		if want.GreaterThan(remaining) {
			want = remaining
		}
		if !want.IsPositive() {
			continue
		}

		account.Deposit(want, age)
		contributed = contributed.Add(want)
		if account.Type.TaxCategory() == domain.CategoryTaxDeferred {
			deferred = deferred.Add(want)
		}
		remaining = remaining.Sub(want)
	}

	if remaining.IsPositive() {
		if inputs.BaseRule == domain.BaseRuleSave {
			if overflow, ok := p.Account(OverflowAccountID); ok {
				overflow.Deposit(remaining, age)
				contributed = contributed.Add(remaining)
			}
		} else {
			spent = remaining
		}
	}
	return contributed, deferred, spent
}
