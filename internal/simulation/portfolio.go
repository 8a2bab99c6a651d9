package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"firesim/internal/domain"
	"firesim/internal/returns"
	"firesim/internal/sequencing"
)

// Reserved IDs for the engine-owned cash accounts surplus and RMD excess
// flow into.
const (
	OverflowAccountID = "overflow_savings"
	RMDAccountID      = "rmd_savings"
)

// Portfolio holds every account in one simulation run, including the two
// synthetic cash accounts the engine deposits into.
type Portfolio struct {
	accounts []*Account
	byID     map[string]*Account
	startAge int
}

// NewPortfolio builds fresh account state from validated inputs. Each
// simulation run gets its own portfolio; nothing is shared between runs.
func NewPortfolio(inputs *domain.SimulatorInputs) (*Portfolio, error) {
	p := &Portfolio{
		byID:     make(map[string]*Account),
		startAge: inputs.Timeline.CurrentAge,
	}
	for _, in := range inputs.Accounts {
		if _, dup := p.byID[in.ID]; dup {
			return nil, fmt.Errorf("duplicate account id %q", in.ID)
		}
		a := NewAccount(in, p.startAge)
		p.accounts = append(p.accounts, a)
		p.byID[a.ID] = a
	}
	for _, syn := range []struct{ id, name string }{
		{OverflowAccountID, "Overflow Savings"},
		{RMDAccountID, "RMD Proceeds"},
	} {
		if _, taken := p.byID[syn.id]; taken {
			return nil, fmt.Errorf("account id %q is reserved", syn.id)
		}
		a := newSyntheticSavings(syn.id, syn.name, p.startAge)
		p.accounts = append(p.accounts, a)
		p.byID[a.ID] = a
	}
	return p, nil
}

// Account looks up an account by ID.
func (p *Portfolio) Account(id string) (*Account, bool) {
	a, ok := p.byID[id]
	return a, ok
}

// Accounts returns the accounts in input order, synthetic ones last.
func (p *Portfolio) Accounts() []*Account {
	return p.accounts
}

// TotalBalance is the withdrawable portfolio value across all accounts.
func (p *Portfolio) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.accounts {
		total = total.Add(a.Balance())
	}
	return total
}

// BalanceByCategory sums balances per tax category for reporting.
func (p *Portfolio) BalanceByCategory() map[domain.TaxCategory]decimal.Decimal {
	out := make(map[domain.TaxCategory]decimal.Decimal, 4)
	for _, a := range p.accounts {
		cat := a.Type.TaxCategory()
		out[cat] = out[cat].Add(a.Balance())
	}
	return out
}

// ApplyReturns compounds every account and aggregates the taxable yields.
func (p *Portfolio) ApplyReturns(r returns.Rates) Yields {
	var total Yields
	for _, a := range p.accounts {
		y := a.ApplyReturns(r)
		total.Interest = total.Interest.Add(y.Interest)
		total.Dividends = total.Dividends.Add(y.Dividends)
	}
	return total
}

// Sources snapshots every funded account as a withdrawal source. With
// withRMD set, the year's required minimum distribution is attached; the
// engine sets it on the first plan of the year only, so settlement
// withdrawals don't force a second distribution.
func (p *Portfolio) Sources(age int, withRMD bool) []sequencing.Source {
	var sources []sequencing.Source
	for _, a := range p.accounts {
		if !a.Balance().IsPositive() {
			continue
		}
		src := sequencing.Source{
			AccountID:         a.ID,
			Name:              a.Name,
			Type:              a.Type,
			Balance:           a.Balance(),
			CostBasis:         a.CostBasis,
			ContributionBasis: a.ContributionBasis,
		}
		if withRMD {
			src.PendingRMD = sequencing.RequiredMinimumDistribution(a.Type, a.Balance(), age)
		}
		sources = append(sources, src)
	}
	return sources
}

// ApplyPlan executes a withdrawal plan against the real accounts and syncs
// the basis values the planner consumed.
func (p *Portfolio) ApplyPlan(plan sequencing.Plan, sources []sequencing.Source, age int) error {
	for _, alloc := range plan.Allocations {
		a, ok := p.byID[alloc.AccountID]
		if !ok {
			return fmt.Errorf("plan references unknown account %q", alloc.AccountID)
		}
		if err := a.Withdraw(alloc.Gross, age); err != nil {
			return err
		}
	}
	for _, src := range sources {
		if a, ok := p.byID[src.AccountID]; ok {
			a.CostBasis = src.CostBasis
			a.ContributionBasis = src.ContributionBasis
		}
	}
	return nil
}
