// Package sequencing plans which accounts fund a withdrawal need and in
// what order, decomposing each withdrawal into its ordinary-income,
// capital-gains, tax-free, and penalty components for the tax engine.
package sequencing

import (
	"github.com/shopspring/decimal"

	"firesim/internal/domain"
)

// Source is one account available for withdrawals this year.
// CostBasis applies to taxable brokerage accounts (gains approximation);
// ContributionBasis applies to Roth accounts (contributions come out
// first, tax and penalty free). PendingRMD is a forced distribution that
// must be satisfied before any discretionary ordering.
type Source struct {
	AccountID         string
	Name              string
	Type              domain.AccountType
	Balance           decimal.Decimal
	CostBasis         decimal.Decimal
	ContributionBasis decimal.Decimal
	PendingRMD        decimal.Decimal
}

// Allocation is the actual withdrawal taken from one source, with its tax
// decomposition. Gross = OrdinaryPortion + CapitalGainsPortion +
// TaxFreePortion. Penalty is the early/non-qualified withdrawal penalty
// owed on this allocation, already computed at the applicable rate.
type Allocation struct {
	AccountID           string
	Gross               decimal.Decimal
	OrdinaryPortion     decimal.Decimal
	CapitalGainsPortion decimal.Decimal
	TaxFreePortion      decimal.Decimal
	Penalty             decimal.Decimal
}

// Plan aggregates the allocations chosen to meet a withdrawal need.
// RemainingNeed is the unmet portion when balances run out; a shortfall
// is reported here, never as an error. TotalSourced can exceed Requested
// when forced distributions are larger than the need.
type Plan struct {
	Requested               decimal.Decimal
	Allocations             []Allocation
	TotalSourced            decimal.Decimal
	RemainingNeed           decimal.Decimal
	EstimatedOrdinaryIncome decimal.Decimal
	EstimatedCapitalGains   decimal.Decimal
	EstimatedPenalties      decimal.Decimal
	RMDSatisfied            bool
	StrategyUsed            string
	Notes                   []string
}

// Context carries the per-year state a strategy needs.
type Context struct {
	NeedAmount decimal.Decimal
	Age        int
}

// EarlyWithdrawal reports whether the 59 1/2 rule applies. Ages advance
// in whole years, so age 59 is before the threshold and age 60 past it.
func (c Context) EarlyWithdrawal() bool {
	return c.Age < 60
}

// Strategy is implemented by all withdrawal sequencing algorithms. Plan
// may mutate the sources' balances and bases while planning.
type Strategy interface {
	Name() string
	Plan(sources []Source, ctx Context) Plan
}

var (
	// earlyPenaltyRate applies to tax-deferred withdrawals and Roth
	// earnings taken before age 59 1/2.
	earlyPenaltyRate = decimal.NewFromFloat(0.10)
	// hsaPenaltyRate applies to non-qualified HSA withdrawals before 65.
	hsaPenaltyRate = decimal.NewFromFloat(0.20)
)

const hsaPenaltyEndAge = 65
