package simulation

import (
	"testing"

	"github.com/shopspring/decimal"

	"firesim/internal/domain"
)

func contributionInputs(rules []domain.ContributionRule, base domain.BaseContributionRule) *domain.SimulatorInputs {
	return &domain.SimulatorInputs{
		Timeline: domain.Timeline{CurrentAge: 40, LifeExpectancy: 90},
		Accounts: []domain.AccountInput{
			{ID: "401k", Type: domain.AccountTraditional401k, Balance: decimal.Zero},
			{ID: "roth", Type: domain.AccountRothIRA, Balance: decimal.Zero},
		},
		ContributionRules: rules,
		BaseRule:          base,
	}
}

func TestContributionRulesApplyByRank(t *testing.T) {
	inputs := contributionInputs([]domain.ContributionRule{
		{ID: "b", AccountID: "roth", Rank: 2, Kind: domain.ContributeFixedAmount, Amount: decimal.NewFromInt(5000)},
		{ID: "a", AccountID: "401k", Rank: 1, Kind: domain.ContributeFixedAmount, Amount: decimal.NewFromInt(3000)},
	}, domain.BaseRuleSpend)
	p, err := NewPortfolio(inputs)
	if err != nil {
		t.Fatal(err)
	}

	contributed, deferred, spent := applyContributionRules(p, inputs, decimal.NewFromInt(6000), decimal.NewFromInt(80000), 40)

	if !contributed.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("expected all 6000 contributed, got %s", contributed)
	}
	if !deferred.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected only the 401k portion deferred, got %s", deferred)
	}
	if !spent.IsZero() {
		t.Errorf("expected nothing spent, got %s", spent)
	}
	k, _ := p.Account("401k")
	if !k.Balance().Equal(decimal.NewFromInt(3000)) {
		t.Errorf("rank 1 rule should fill first: got %s", k.Balance())
	}
	r, _ := p.Account("roth")
	if !r.Balance().Equal(decimal.NewFromInt(3000)) {
		t.Errorf("rank 2 rule takes the remainder: got %s", r.Balance())
	}
}

func TestContributionPercentOfIncome(t *testing.T) {
	inputs := contributionInputs([]domain.ContributionRule{
		{ID: "a", AccountID: "401k", Rank: 1, Kind: domain.ContributePercentOfIncome, Percent: decimal.NewFromFloat(0.10)},
	}, domain.BaseRuleSpend)
	p, _ := NewPortfolio(inputs)

	_, deferred, _ := applyContributionRules(p, inputs, decimal.NewFromInt(50000), decimal.NewFromInt(80000), 40)

	k, _ := p.Account("401k")
	if !k.Balance().Equal(decimal.NewFromInt(8000)) {
		t.Errorf("expected 10%% of income, got %s", k.Balance())
	}
	if !deferred.Equal(decimal.NewFromInt(8000)) {
		t.Errorf("expected the full pre-tax contribution deferred, got %s", deferred)
	}
}

func TestContributionFillToLimitWithCatchUp(t *testing.T) {
	inputs := contributionInputs([]domain.ContributionRule{
		{ID: "a", AccountID: "401k", Rank: 1, Kind: domain.ContributeFillToLimit},
	}, domain.BaseRuleSpend)

	p, _ := NewPortfolio(inputs)
	applyContributionRules(p, inputs, decimal.NewFromInt(50000), decimal.NewFromInt(200000), 40)
	k, _ := p.Account("401k")
	if !k.Balance().Equal(decimal.NewFromInt(23500)) {
		t.Errorf("expected base deferral limit, got %s", k.Balance())
	}

	p, _ = NewPortfolio(inputs)
	applyContributionRules(p, inputs, decimal.NewFromInt(50000), decimal.NewFromInt(200000), 55)
	k, _ = p.Account("401k")
	if !k.Balance().Equal(decimal.NewFromInt(31000)) {
		t.Errorf("expected limit plus catch-up at 55, got %s", k.Balance())
	}
}

func TestBaseRuleSaveRoutesToOverflow(t *testing.T) {
	inputs := contributionInputs(nil, domain.BaseRuleSave)
	p, _ := NewPortfolio(inputs)

	contributed, deferred, spent := applyContributionRules(p, inputs, decimal.NewFromInt(9000), decimal.Zero, 40)

	if !deferred.IsZero() {
		t.Errorf("overflow savings is not a deferral, got %s", deferred)
	}
	if !spent.IsZero() {
		t.Errorf("save rule should not spend, got %s", spent)
	}
	if !contributed.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("expected full surplus saved, got %s", contributed)
	}
	overflow, _ := p.Account(OverflowAccountID)
	if !overflow.Balance().Equal(decimal.NewFromInt(9000)) {
		t.Errorf("expected surplus in overflow savings, got %s", overflow.Balance())
	}
}

func TestBaseRuleSpendDiscards(t *testing.T) {
	inputs := contributionInputs(nil, domain.BaseRuleSpend)
	p, _ := NewPortfolio(inputs)

	contributed, _, spent := applyContributionRules(p, inputs, decimal.NewFromInt(9000), decimal.Zero, 40)

	if !contributed.IsZero() {
		t.Errorf("spend rule contributes nothing, got %s", contributed)
	}
	if !spent.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("expected full surplus spent, got %s", spent)
	}
}
