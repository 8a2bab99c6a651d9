package domain

import (
	"github.com/shopspring/decimal"
)

// FilingStatus selects which tax bracket tables apply.
type FilingStatus string

const (
	FilingSingle       FilingStatus = "single"
	FilingMarriedJoint FilingStatus = "married_joint"
)

// AccountType identifies the kind of account a household holds.
type AccountType string

const (
	AccountSavings          AccountType = "savings"
	AccountTaxableBrokerage AccountType = "taxable_brokerage"
	AccountTraditional401k  AccountType = "401k"
	AccountTraditionalIRA   AccountType = "ira"
	AccountHSA              AccountType = "hsa"
	AccountRoth401k         AccountType = "roth_401k"
	AccountRothIRA          AccountType = "roth_ira"
)

// TaxCategory groups account types by how withdrawals and growth are taxed.
type TaxCategory string

const (
	CategoryCash        TaxCategory = "cash"
	CategoryTaxable     TaxCategory = "taxable"
	CategoryTaxDeferred TaxCategory = "tax_deferred"
	CategoryTaxFree     TaxCategory = "tax_free"
)

// TaxCategory maps an account type to its tax treatment.
func (t AccountType) TaxCategory() TaxCategory {
	switch t {
	case AccountSavings:
		return CategoryCash
	case AccountTaxableBrokerage:
		return CategoryTaxable
	case AccountTraditional401k, AccountTraditionalIRA, AccountHSA:
		return CategoryTaxDeferred
	case AccountRoth401k, AccountRothIRA:
		return CategoryTaxFree
	default:
		return CategoryCash
	}
}

// HasRMDs reports whether the account type is subject to required minimum
// distributions. HSAs are tax-deferred but have no RMDs.
func (t AccountType) HasRMDs() bool {
	return t == AccountTraditional401k || t == AccountTraditionalIRA
}

// Valid reports whether the account type is one of the known kinds.
func (t AccountType) Valid() bool {
	switch t {
	case AccountSavings, AccountTaxableBrokerage, AccountTraditional401k,
		AccountTraditionalIRA, AccountHSA, AccountRoth401k, AccountRothIRA:
		return true
	}
	return false
}

// RetirementStrategyType selects how the retirement milestone is determined.
type RetirementStrategyType string

const (
	RetireAtFixedAge  RetirementStrategyType = "fixed_age"
	RetireAtSWRTarget RetirementStrategyType = "swr_target"
)

// RetirementStrategy configures when the simulated household retires:
// either at a fixed age, or once the portfolio can sustain average annual
// expenses at the configured safe withdrawal rate.
type RetirementStrategy struct {
	Type               RetirementStrategyType `yaml:"type" json:"type"`
	RetirementAge      int                    `yaml:"retirement_age,omitempty" json:"retirementAge,omitempty"`
	SafeWithdrawalRate decimal.Decimal        `yaml:"safe_withdrawal_rate,omitempty" json:"safeWithdrawalRate,omitempty"`
}

// Timeline describes the household's simulation horizon and milestones.
// CoastAge and BaristaAge are optional intermediate milestones; zero means
// the phase is skipped entirely.
type Timeline struct {
	CurrentAge     int                `yaml:"current_age" json:"currentAge"`
	LifeExpectancy int                `yaml:"life_expectancy" json:"lifeExpectancy"`
	Retirement     RetirementStrategy `yaml:"retirement" json:"retirement"`
	CoastAge       int                `yaml:"coast_age,omitempty" json:"coastAge,omitempty"`
	BaristaAge     int                `yaml:"barista_age,omitempty" json:"baristaAge,omitempty"`
}

// MarketAssumptions holds expected annual rates, all as fractions
// (0.07 = 7%). Yields are paid out as cash flows on top of price returns.
type MarketAssumptions struct {
	StockReturn   decimal.Decimal `yaml:"stock_return" json:"stockReturn"`
	BondReturn    decimal.Decimal `yaml:"bond_return" json:"bondReturn"`
	CashReturn    decimal.Decimal `yaml:"cash_return" json:"cashReturn"`
	InflationRate decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	StockYield    decimal.Decimal `yaml:"stock_yield,omitempty" json:"stockYield,omitempty"`
	BondYield     decimal.Decimal `yaml:"bond_yield,omitempty" json:"bondYield,omitempty"`
}

// GlidePath shifts an account's bond allocation linearly toward
// TargetPercentBonds as EndAge approaches; past EndAge the allocation is
// held at the target.
type GlidePath struct {
	TargetPercentBonds decimal.Decimal `yaml:"target_percent_bonds" json:"targetPercentBonds"`
	EndAge             int             `yaml:"end_age" json:"endAge"`
}

// AccountInput is one validated account record as provided by the caller.
// CostBasis applies to taxable brokerage accounts (realized gain tracking);
// ContributionBasis applies to Roth accounts (pre-59.5 access limit).
// Nil means the basis is not tracked for this account.
type AccountInput struct {
	ID                string           `yaml:"id" json:"id"`
	Name              string           `yaml:"name" json:"name"`
	Type              AccountType      `yaml:"type" json:"type"`
	Balance           decimal.Decimal  `yaml:"balance" json:"balance"`
	PercentBonds      decimal.Decimal  `yaml:"percent_bonds,omitempty" json:"percentBonds,omitempty"`
	CostBasis         *decimal.Decimal `yaml:"cost_basis,omitempty" json:"costBasis,omitempty"`
	ContributionBasis *decimal.Decimal `yaml:"contribution_basis,omitempty" json:"contributionBasis,omitempty"`
	GlidePath         *GlidePath       `yaml:"glide_path,omitempty" json:"glidePath,omitempty"`
}

// Frequency is how often a scheduled income or expense recurs.
type Frequency string

const (
	FrequencyOneTime   Frequency = "one_time"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// TimesPerYear returns how many times the amount applies in a full year.
// One-time items are handled separately by the schedule logic.
func (f Frequency) TimesPerYear() int {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyBiweekly:
		return 26
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	default:
		return 1
	}
}

// TimePointType anchors a timeframe boundary.
type TimePointType string

const (
	TimeNow              TimePointType = "now"
	TimeCustomAge        TimePointType = "custom_age"
	TimeCustomYear       TimePointType = "custom_year"
	TimeAtRetirement     TimePointType = "at_retirement"
	TimeAtLifeExpectancy TimePointType = "at_life_expectancy"
)

// TimePoint is one boundary of a schedule window. Age is used for
// custom_age, Year (calendar) for custom_year; both are ignored otherwise.
type TimePoint struct {
	Type TimePointType `yaml:"type" json:"type"`
	Age  int           `yaml:"age,omitempty" json:"age,omitempty"`
	Year int           `yaml:"year,omitempty" json:"year,omitempty"`
}

// Timeframe bounds when a scheduled item is active. A nil End means the
// item runs to the end of the simulation.
type Timeframe struct {
	Start TimePoint  `yaml:"start" json:"start"`
	End   *TimePoint `yaml:"end,omitempty" json:"end,omitempty"`
}

// Growth configures nominal annual growth of a scheduled amount, with an
// optional absolute limit the amount grows (or shrinks) toward.
type Growth struct {
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
	Limit *decimal.Decimal `yaml:"limit,omitempty" json:"limit,omitempty"`
}

// IncomeInput is one validated income stream. Withholding is the fraction
// of gross income withheld toward taxes each year.
type IncomeInput struct {
	ID          string          `yaml:"id" json:"id"`
	Name        string          `yaml:"name" json:"name"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency   Frequency       `yaml:"frequency" json:"frequency"`
	Withholding decimal.Decimal `yaml:"withholding,omitempty" json:"withholding,omitempty"`
	Growth      *Growth         `yaml:"growth,omitempty" json:"growth,omitempty"`
	Timeframe   Timeframe       `yaml:"timeframe" json:"timeframe"`
}

// ExpenseInput is one validated expense stream.
type ExpenseInput struct {
	ID        string          `yaml:"id" json:"id"`
	Name      string          `yaml:"name" json:"name"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency Frequency       `yaml:"frequency" json:"frequency"`
	Growth    *Growth         `yaml:"growth,omitempty" json:"growth,omitempty"`
	Timeframe Timeframe       `yaml:"timeframe" json:"timeframe"`
}

// DebtInput is an amortizing liability. The annual payment is treated as a
// mandatory expense until the balance reaches zero.
type DebtInput struct {
	ID            string          `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	Balance       decimal.Decimal `yaml:"balance" json:"balance"`
	InterestRate  decimal.Decimal `yaml:"interest_rate" json:"interestRate"`
	AnnualPayment decimal.Decimal `yaml:"annual_payment" json:"annualPayment"`
}

// PhysicalAssetInput is a non-withdrawable asset (house, vehicle) tracked
// for net worth. It appreciates at its own rate and never funds cash needs.
type PhysicalAssetInput struct {
	ID               string          `yaml:"id" json:"id"`
	Name             string          `yaml:"name" json:"name"`
	Value            decimal.Decimal `yaml:"value" json:"value"`
	AppreciationRate decimal.Decimal `yaml:"appreciation_rate,omitempty" json:"appreciationRate,omitempty"`
}

// ContributionRuleKind selects how a contribution rule sizes its claim on
// surplus cash.
type ContributionRuleKind string

const (
	ContributeFixedAmount     ContributionRuleKind = "fixed_amount"
	ContributePercentOfIncome ContributionRuleKind = "percent_of_income"
	ContributeFillToLimit     ContributionRuleKind = "fill_to_limit"
)

// ContributionRule routes surplus cash into an account. Rules are applied
// in ascending Rank order, each consuming from the remaining surplus.
type ContributionRule struct {
	ID          string               `yaml:"id" json:"id"`
	AccountID   string               `yaml:"account_id" json:"accountId"`
	Rank        int                  `yaml:"rank" json:"rank"`
	Kind        ContributionRuleKind `yaml:"kind" json:"kind"`
	Amount      decimal.Decimal      `yaml:"amount,omitempty" json:"amount,omitempty"`
	Percent     decimal.Decimal      `yaml:"percent,omitempty" json:"percent,omitempty"`
	AnnualLimit *decimal.Decimal     `yaml:"annual_limit,omitempty" json:"annualLimit,omitempty"`
}

// BaseContributionRule decides what happens to surplus cash no rule
// claimed: spend it (discretionary) or save it to an overflow cash account.
type BaseContributionRule string

const (
	BaseRuleSpend BaseContributionRule = "spend"
	BaseRuleSave  BaseContributionRule = "save"
)

// TaxSettings carries the household's filing configuration.
type TaxSettings struct {
	FilingStatus FilingStatus `yaml:"filing_status" json:"filingStatus"`
}

// WithdrawalConfig selects the withdrawal sequencing strategy and, for the
// custom strategy, the explicit account-category order.
type WithdrawalConfig struct {
	Strategy       string        `yaml:"strategy" json:"strategy"`
	CustomSequence []TaxCategory `yaml:"custom_sequence,omitempty" json:"customSequence,omitempty"`
}

// SimulatorInputs is the root validated input record. It is immutable once
// a simulation starts; the engine borrows it read-only.
type SimulatorInputs struct {
	Timeline          Timeline             `yaml:"timeline" json:"timeline"`
	Market            MarketAssumptions    `yaml:"market" json:"market"`
	Taxes             TaxSettings          `yaml:"taxes" json:"taxes"`
	Accounts          []AccountInput       `yaml:"accounts" json:"accounts"`
	Incomes           []IncomeInput        `yaml:"incomes,omitempty" json:"incomes,omitempty"`
	Expenses          []ExpenseInput       `yaml:"expenses,omitempty" json:"expenses,omitempty"`
	Debts             []DebtInput          `yaml:"debts,omitempty" json:"debts,omitempty"`
	PhysicalAssets    []PhysicalAssetInput `yaml:"physical_assets,omitempty" json:"physicalAssets,omitempty"`
	ContributionRules []ContributionRule   `yaml:"contribution_rules,omitempty" json:"contributionRules,omitempty"`
	BaseRule          BaseContributionRule `yaml:"base_rule,omitempty" json:"baseRule,omitempty"`
	Withdrawal        *WithdrawalConfig    `yaml:"withdrawal,omitempty" json:"withdrawal,omitempty"`
}

// YearsToSimulate is the number of annual steps from current age to life
// expectancy.
func (s *SimulatorInputs) YearsToSimulate() int {
	return s.Timeline.LifeExpectancy - s.Timeline.CurrentAge
}
