package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"firesim/internal/domain"
	"firesim/internal/returns"
)

// Account is the mutable simulation state for one input account. Invested
// accounts track stock and bond sleeves separately so glide-path steering
// can work through deposits and withdrawals; savings accounts hold a
// single cash balance.
type Account struct {
	ID   string
	Name string
	Type domain.AccountType

	CashBalance  decimal.Decimal
	StockBalance decimal.Decimal
	BondBalance  decimal.Decimal

	// CostBasis tracks dollars already taxed in taxable accounts.
	// ContributionBasis tracks direct contributions to Roth accounts.
	CostBasis         decimal.Decimal
	ContributionBasis decimal.Decimal

	glidePath        *domain.GlidePath
	basePercentBonds decimal.Decimal
	startAge         int
}

// NewAccount builds simulation state from a validated input record.
// startAge anchors glide-path interpolation.
func NewAccount(input domain.AccountInput, startAge int) *Account {
	a := &Account{
		ID:               input.ID,
		Name:             input.Name,
		Type:             input.Type,
		glidePath:        input.GlidePath,
		basePercentBonds: input.PercentBonds,
		startAge:         startAge,
	}
	if input.CostBasis != nil {
		a.CostBasis = *input.CostBasis
	} else if input.Type.TaxCategory() == domain.CategoryTaxable {
		// Untracked basis defaults to the full balance: no unrealized gains.
		a.CostBasis = input.Balance
	}
	if input.ContributionBasis != nil {
		a.ContributionBasis = *input.ContributionBasis
	}

	if input.Type == domain.AccountSavings {
		a.CashBalance = input.Balance
	} else {
		bonds := input.Balance.Mul(input.PercentBonds)
		a.BondBalance = bonds
		a.StockBalance = input.Balance.Sub(bonds)
	}
	return a
}

// newSyntheticSavings creates an engine-owned cash account (overflow or
// RMD proceeds). It participates in growth and withdrawals like any other
// savings account.
func newSyntheticSavings(id, name string, startAge int) *Account {
	return &Account{ID: id, Name: name, Type: domain.AccountSavings, startAge: startAge}
}

// Balance is the account's total value.
func (a *Account) Balance() decimal.Decimal {
	return a.CashBalance.Add(a.StockBalance).Add(a.BondBalance)
}

// TargetPercentBonds is the bond allocation the account steers toward at
// the given age, interpolated linearly along the glide path.
func (a *Account) TargetPercentBonds(age int) decimal.Decimal {
	if a.glidePath == nil {
		return a.basePercentBonds
	}
	if age >= a.glidePath.EndAge {
		return a.glidePath.TargetPercentBonds
	}
	if age <= a.startAge || a.glidePath.EndAge <= a.startAge {
		return a.basePercentBonds
	}
	span := decimal.NewFromInt(int64(a.glidePath.EndAge - a.startAge))
	progress := decimal.NewFromInt(int64(age - a.startAge)).Div(span)
	return a.basePercentBonds.Add(a.glidePath.TargetPercentBonds.Sub(a.basePercentBonds).Mul(progress))
}

// Yields is the cash thrown off by one year of holdings, reported only for
// accounts where it is taxable in the year received. Interest is ordinary
// income; dividends are qualified and taxed as capital gains.
type Yields struct {
	Interest  decimal.Decimal
	Dividends decimal.Decimal
}

// ApplyReturns compounds the start-of-year balances. Yields are reinvested
// in all accounts; for savings and taxable accounts they are also reported
// for taxation, and reinvested taxable yields raise the cost basis.
func (a *Account) ApplyReturns(r returns.Rates) Yields {
	if a.Type == domain.AccountSavings {
		interest := a.CashBalance.Mul(r.Cash)
		a.CashBalance = a.CashBalance.Add(interest)
		if interest.IsNegative() {
			interest = decimal.Zero
		}
		return Yields{Interest: interest}
	}

	dividends := a.StockBalance.Mul(r.StockYield)
	interest := a.BondBalance.Mul(r.BondYield)

	a.StockBalance = a.StockBalance.Mul(decimal.NewFromInt(1).Add(r.Stocks)).Add(dividends)
	a.BondBalance = a.BondBalance.Mul(decimal.NewFromInt(1).Add(r.Bonds)).Add(interest)
	if a.StockBalance.IsNegative() {
		a.StockBalance = decimal.Zero
	}
	if a.BondBalance.IsNegative() {
		a.BondBalance = decimal.Zero
	}

	if a.Type.TaxCategory() == domain.CategoryTaxable {
		a.CostBasis = a.CostBasis.Add(dividends).Add(interest)
		return Yields{Interest: interest, Dividends: dividends}
	}
	return Yields{}
}

// Deposit adds money, steering the invested split toward the glide-path
// target for the given age. Taxable deposits raise the cost basis; Roth
// deposits raise the contribution basis.
func (a *Account) Deposit(amount decimal.Decimal, age int) {
	if !amount.IsPositive() {
		return
	}
	switch a.Type.TaxCategory() {
	case domain.CategoryTaxable:
		a.CostBasis = a.CostBasis.Add(amount)
	case domain.CategoryTaxFree:
		a.ContributionBasis = a.ContributionBasis.Add(amount)
	}

	if a.Type == domain.AccountSavings {
		a.CashBalance = a.CashBalance.Add(amount)
		return
	}

	target := a.TargetPercentBonds(age)
	desiredBonds := a.Balance().Add(amount).Mul(target)
	toBonds := desiredBonds.Sub(a.BondBalance)
	if toBonds.IsNegative() {
		toBonds = decimal.Zero
	}
	if toBonds.GreaterThan(amount) {
		toBonds = amount
	}
	a.BondBalance = a.BondBalance.Add(toBonds)
	a.StockBalance = a.StockBalance.Add(amount.Sub(toBonds))
}

// Withdraw removes money, taking from the overweight sleeve first so the
// remaining split moves toward the glide-path target. Errors on overdraw;
// callers size requests from the reported balance.
func (a *Account) Withdraw(amount decimal.Decimal, age int) error {
	if amount.IsNegative() {
		return fmt.Errorf("withdraw amount must be non-negative, got %s", amount)
	}
	if amount.GreaterThan(a.Balance()) {
		return fmt.Errorf("withdraw %s exceeds balance %s of account %s", amount, a.Balance(), a.ID)
	}

	if a.Type == domain.AccountSavings {
		a.CashBalance = a.CashBalance.Sub(amount)
		return nil
	}

	target := a.TargetPercentBonds(age)
	desiredBonds := a.Balance().Sub(amount).Mul(target)
	fromBonds := a.BondBalance.Sub(desiredBonds)
	if fromBonds.IsNegative() {
		fromBonds = decimal.Zero
	}
	if fromBonds.GreaterThan(amount) {
		fromBonds = amount
	}
	if fromBonds.GreaterThan(a.BondBalance) {
		fromBonds = a.BondBalance
	}
	fromStocks := amount.Sub(fromBonds)
	if fromStocks.GreaterThan(a.StockBalance) {
		// Stock sleeve can't cover the rest; take the difference from bonds.
		fromBonds = fromBonds.Add(fromStocks.Sub(a.StockBalance))
		fromStocks = a.StockBalance
	}
	a.BondBalance = a.BondBalance.Sub(fromBonds)
	a.StockBalance = a.StockBalance.Sub(fromStocks)
	return nil
}
