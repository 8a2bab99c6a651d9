// Package config loads and validates simulator inputs from YAML. The
// engine trusts validated inputs, so everything that can be rejected is
// rejected here.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"firesim/internal/domain"
	"firesim/internal/simulation"
)

// InputParser handles parsing of simulator input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads simulator inputs from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulatorInputs, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse unmarshals and validates simulator inputs.
func (ip *InputParser) Parse(data []byte) (*domain.SimulatorInputs, error) {
	var inputs domain.SimulatorInputs
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	ip.ApplyDefaults(&inputs)
	if err := ip.Validate(&inputs); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &inputs, nil
}

// ApplyDefaults fills the optional fields Validate requires. Parse applies
// it automatically; callers validating inputs decoded elsewhere (JSON
// submissions, programmatic construction) must apply it first.
func (ip *InputParser) ApplyDefaults(inputs *domain.SimulatorInputs) {
	if inputs.Taxes.FilingStatus == "" {
		inputs.Taxes.FilingStatus = domain.FilingSingle
	}
	if inputs.BaseRule == "" {
		inputs.BaseRule = domain.BaseRuleSpend
	}
}

// Validate checks every invariant the engine depends on.
func (ip *InputParser) Validate(inputs *domain.SimulatorInputs) error {
	if err := ip.validateTimeline(&inputs.Timeline); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	if err := ip.validateMarket(&inputs.Market); err != nil {
		return fmt.Errorf("market: %w", err)
	}
	if err := ip.validateTaxes(&inputs.Taxes); err != nil {
		return fmt.Errorf("taxes: %w", err)
	}

	if len(inputs.Accounts) == 0 {
		return fmt.Errorf("at least one account is required")
	}
	ids := map[string]bool{}
	for i, account := range inputs.Accounts {
		if err := ip.validateAccount(&account, &inputs.Timeline); err != nil {
			return fmt.Errorf("account %d (%s): %w", i, account.ID, err)
		}
		if ids[account.ID] {
			return fmt.Errorf("duplicate account id %q", account.ID)
		}
		ids[account.ID] = true
	}

	for i, income := range inputs.Incomes {
		if err := ip.validateIncome(&income); err != nil {
			return fmt.Errorf("income %d (%s): %w", i, income.ID, err)
		}
	}
	for i, expense := range inputs.Expenses {
		if err := ip.validateExpense(&expense); err != nil {
			return fmt.Errorf("expense %d (%s): %w", i, expense.ID, err)
		}
	}
	for i, debt := range inputs.Debts {
		if err := ip.validateDebt(&debt); err != nil {
			return fmt.Errorf("debt %d (%s): %w", i, debt.ID, err)
		}
	}
	for i, asset := range inputs.PhysicalAssets {
		if asset.Value.IsNegative() {
			return fmt.Errorf("physical asset %d (%s): value must be non-negative", i, asset.ID)
		}
	}

	for i, rule := range inputs.ContributionRules {
		if err := ip.validateContributionRule(&rule, ids); err != nil {
			return fmt.Errorf("contribution rule %d (%s): %w", i, rule.ID, err)
		}
	}
	switch inputs.BaseRule {
	case domain.BaseRuleSpend, domain.BaseRuleSave:
	default:
		return fmt.Errorf("base rule must be spend or save, got %q", inputs.BaseRule)
	}

	if inputs.Withdrawal != nil {
		if err := ip.validateWithdrawal(inputs.Withdrawal); err != nil {
			return fmt.Errorf("withdrawal: %w", err)
		}
	}
	return nil
}

func (ip *InputParser) validateTimeline(tl *domain.Timeline) error {
	if tl.CurrentAge <= 0 {
		return fmt.Errorf("current age must be positive, got %d", tl.CurrentAge)
	}
	if tl.LifeExpectancy <= tl.CurrentAge {
		return fmt.Errorf("life expectancy %d must be after current age %d", tl.LifeExpectancy, tl.CurrentAge)
	}

	switch tl.Retirement.Type {
	case domain.RetireAtFixedAge:
		if tl.Retirement.RetirementAge <= tl.CurrentAge {
			return fmt.Errorf("retirement age %d must be after current age %d", tl.Retirement.RetirementAge, tl.CurrentAge)
		}
		if tl.Retirement.RetirementAge > tl.LifeExpectancy {
			return fmt.Errorf("retirement age %d is past life expectancy %d", tl.Retirement.RetirementAge, tl.LifeExpectancy)
		}
	case domain.RetireAtSWRTarget:
		swr := tl.Retirement.SafeWithdrawalRate
		if !swr.IsPositive() || swr.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("safe withdrawal rate must be in (0, 1), got %s", swr)
		}
	default:
		return fmt.Errorf("unknown retirement strategy %q", tl.Retirement.Type)
	}

	if tl.CoastAge != 0 && (tl.CoastAge < tl.CurrentAge || tl.CoastAge > tl.LifeExpectancy) {
		return fmt.Errorf("coast age %d outside simulation horizon", tl.CoastAge)
	}
	if tl.BaristaAge != 0 && (tl.BaristaAge < tl.CurrentAge || tl.BaristaAge > tl.LifeExpectancy) {
		return fmt.Errorf("barista age %d outside simulation horizon", tl.BaristaAge)
	}
	return nil
}

func (ip *InputParser) validateMarket(m *domain.MarketAssumptions) error {
	// Allow deflation but reject clearly bogus rates.
	if m.InflationRate.LessThan(decimal.NewFromFloat(-0.10)) || m.InflationRate.GreaterThan(decimal.NewFromFloat(0.20)) {
		return fmt.Errorf("inflation rate must be between -10%% and 20%%, got %s", m.InflationRate)
	}
	for name, rate := range map[string]decimal.Decimal{
		"stock return": m.StockReturn,
		"bond return":  m.BondReturn,
		"cash return":  m.CashReturn,
	} {
		if rate.LessThan(decimal.NewFromFloat(-0.50)) || rate.GreaterThan(decimal.NewFromFloat(0.50)) {
			return fmt.Errorf("%s must be between -50%% and 50%%, got %s", name, rate)
		}
	}
	if m.StockYield.IsNegative() || m.BondYield.IsNegative() {
		return fmt.Errorf("yields must be non-negative")
	}
	return nil
}

func (ip *InputParser) validateTaxes(t *domain.TaxSettings) error {
	switch t.FilingStatus {
	case domain.FilingSingle, domain.FilingMarriedJoint:
		return nil
	default:
		return fmt.Errorf("unknown filing status %q", t.FilingStatus)
	}
}

func (ip *InputParser) validateAccount(a *domain.AccountInput, tl *domain.Timeline) error {
	if a.ID == "" {
		return fmt.Errorf("id is required")
	}
	if a.ID == simulation.OverflowAccountID || a.ID == simulation.RMDAccountID {
		return fmt.Errorf("account id %q is reserved", a.ID)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("unknown account type %q", a.Type)
	}
	if a.Balance.IsNegative() {
		return fmt.Errorf("balance must be non-negative, got %s", a.Balance)
	}
	one := decimal.NewFromInt(1)
	if a.PercentBonds.IsNegative() || a.PercentBonds.GreaterThan(one) {
		return fmt.Errorf("percent bonds must be in [0, 1], got %s", a.PercentBonds)
	}
	if a.CostBasis != nil && a.CostBasis.IsNegative() {
		return fmt.Errorf("cost basis must be non-negative")
	}
	if a.ContributionBasis != nil && a.ContributionBasis.IsNegative() {
		return fmt.Errorf("contribution basis must be non-negative")
	}
	if gp := a.GlidePath; gp != nil {
		if gp.TargetPercentBonds.IsNegative() || gp.TargetPercentBonds.GreaterThan(one) {
			return fmt.Errorf("glide path target must be in [0, 1], got %s", gp.TargetPercentBonds)
		}
		if gp.EndAge <= tl.CurrentAge {
			return fmt.Errorf("glide path end age %d must be after current age %d", gp.EndAge, tl.CurrentAge)
		}
	}
	return nil
}

func (ip *InputParser) validateTimeframe(tf *domain.Timeframe) error {
	if err := ip.validateTimePoint(&tf.Start); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if tf.End != nil {
		if err := ip.validateTimePoint(tf.End); err != nil {
			return fmt.Errorf("end: %w", err)
		}
	}
	return nil
}

func (ip *InputParser) validateTimePoint(tp *domain.TimePoint) error {
	switch tp.Type {
	case domain.TimeNow, domain.TimeAtRetirement, domain.TimeAtLifeExpectancy:
		return nil
	case domain.TimeCustomAge:
		if tp.Age <= 0 {
			return fmt.Errorf("custom_age requires a positive age")
		}
		return nil
	case domain.TimeCustomYear:
		if tp.Year < 1900 {
			return fmt.Errorf("custom_year requires a calendar year, got %d", tp.Year)
		}
		return nil
	default:
		return fmt.Errorf("unknown time point type %q", tp.Type)
	}
}

func validFrequency(f domain.Frequency) bool {
	switch f {
	case domain.FrequencyOneTime, domain.FrequencyWeekly, domain.FrequencyBiweekly,
		domain.FrequencyMonthly, domain.FrequencyQuarterly, domain.FrequencyYearly:
		return true
	}
	return false
}

func (ip *InputParser) validateIncome(in *domain.IncomeInput) error {
	if in.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", in.Amount)
	}
	if !validFrequency(in.Frequency) {
		return fmt.Errorf("unknown frequency %q", in.Frequency)
	}
	one := decimal.NewFromInt(1)
	if in.Withholding.IsNegative() || in.Withholding.GreaterThan(one) {
		return fmt.Errorf("withholding must be in [0, 1], got %s", in.Withholding)
	}
	return ip.validateTimeframe(&in.Timeframe)
}

func (ip *InputParser) validateExpense(in *domain.ExpenseInput) error {
	if in.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", in.Amount)
	}
	if !validFrequency(in.Frequency) {
		return fmt.Errorf("unknown frequency %q", in.Frequency)
	}
	return ip.validateTimeframe(&in.Timeframe)
}

func (ip *InputParser) validateDebt(d *domain.DebtInput) error {
	if d.ID == "" {
		return fmt.Errorf("id is required")
	}
	if d.Balance.IsNegative() {
		return fmt.Errorf("balance must be non-negative")
	}
	if d.InterestRate.IsNegative() {
		return fmt.Errorf("interest rate must be non-negative")
	}
	if d.Balance.IsPositive() && !d.AnnualPayment.IsPositive() {
		return fmt.Errorf("annual payment must be positive while a balance remains")
	}
	return nil
}

func (ip *InputParser) validateContributionRule(rule *domain.ContributionRule, accountIDs map[string]bool) error {
	if rule.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !accountIDs[rule.AccountID] {
		return fmt.Errorf("unknown account id %q", rule.AccountID)
	}
	switch rule.Kind {
	case domain.ContributeFixedAmount:
		if !rule.Amount.IsPositive() {
			return fmt.Errorf("fixed_amount requires a positive amount")
		}
	case domain.ContributePercentOfIncome:
		one := decimal.NewFromInt(1)
		if !rule.Percent.IsPositive() || rule.Percent.GreaterThan(one) {
			return fmt.Errorf("percent_of_income requires a percent in (0, 1]")
		}
	case domain.ContributeFillToLimit:
		if rule.AnnualLimit != nil && !rule.AnnualLimit.IsPositive() {
			return fmt.Errorf("annual limit must be positive when set")
		}
	default:
		return fmt.Errorf("unknown rule kind %q", rule.Kind)
	}
	return nil
}

func (ip *InputParser) validateWithdrawal(w *domain.WithdrawalConfig) error {
	switch w.Strategy {
	case "", "standard", "tax_efficient":
	case "custom":
		if len(w.CustomSequence) == 0 {
			return fmt.Errorf("custom strategy requires a custom_sequence")
		}
		for _, cat := range w.CustomSequence {
			switch cat {
			case domain.CategoryCash, domain.CategoryTaxable, domain.CategoryTaxDeferred, domain.CategoryTaxFree:
			default:
				return fmt.Errorf("unknown tax category %q in custom_sequence", cat)
			}
		}
	default:
		return fmt.Errorf("unknown withdrawal strategy %q", w.Strategy)
	}
	return nil
}
