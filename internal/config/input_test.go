package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firesim/internal/domain"
)

const validYAML = `
timeline:
  current_age: 30
  life_expectancy: 85
  retirement:
    type: fixed_age
    retirement_age: 65
  coast_age: 45
market:
  stock_return: 0.07
  bond_return: 0.03
  cash_return: 0.01
  inflation_rate: 0.025
  stock_yield: 0.018
  bond_yield: 0.04
taxes:
  filing_status: married_joint
accounts:
  - id: savings
    name: Emergency Fund
    type: savings
    balance: 25000
  - id: brokerage
    name: Brokerage
    type: taxable_brokerage
    balance: 150000
    percent_bonds: 0.2
    cost_basis: 100000
    glide_path:
      target_percent_bonds: 0.5
      end_age: 65
  - id: trad401k
    name: 401(k)
    type: 401k
    balance: 300000
    percent_bonds: 0.1
incomes:
  - id: salary
    name: Salary
    amount: 8000
    frequency: monthly
    withholding: 0.22
    timeframe:
      start:
        type: now
      end:
        type: at_retirement
expenses:
  - id: living
    name: Living Expenses
    amount: 4500
    frequency: monthly
    timeframe:
      start:
        type: now
debts:
  - id: mortgage
    name: Mortgage
    balance: 220000
    interest_rate: 0.035
    annual_payment: 18000
contribution_rules:
  - id: max_401k
    account_id: trad401k
    rank: 1
    kind: fill_to_limit
base_rule: save
withdrawal:
  strategy: tax_efficient
`

func TestParseValidInputs(t *testing.T) {
	parser := NewInputParser()
	inputs, err := parser.Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, 30, inputs.Timeline.CurrentAge)
	assert.Equal(t, 85, inputs.Timeline.LifeExpectancy)
	assert.Equal(t, domain.RetireAtFixedAge, inputs.Timeline.Retirement.Type)
	assert.Equal(t, domain.FilingMarriedJoint, inputs.Taxes.FilingStatus)
	assert.Len(t, inputs.Accounts, 3)
	assert.True(t, inputs.Accounts[1].Balance.Equal(decimal.NewFromInt(150000)))
	require.NotNil(t, inputs.Accounts[1].GlidePath)
	assert.Equal(t, 65, inputs.Accounts[1].GlidePath.EndAge)
	require.Len(t, inputs.Incomes, 1)
	assert.Equal(t, domain.FrequencyMonthly, inputs.Incomes[0].Frequency)
	require.NotNil(t, inputs.Incomes[0].Timeframe.End)
	assert.Equal(t, domain.TimeAtRetirement, inputs.Incomes[0].Timeframe.End.Type)
	assert.Equal(t, domain.BaseRuleSave, inputs.BaseRule)
	require.NotNil(t, inputs.Withdrawal)
	assert.Equal(t, "tax_efficient", inputs.Withdrawal.Strategy)
	assert.Equal(t, 55, inputs.YearsToSimulate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inputs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o644))

	parser := NewInputParser()
	inputs, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 30, inputs.Timeline.CurrentAge)
}

func TestLoadFromFileMissing(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile("/nonexistent/inputs.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParseMalformedYAML(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.Parse([]byte("timeline: [not a mapping"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseDefaults(t *testing.T) {
	minimal := `
timeline:
  current_age: 40
  life_expectancy: 90
  retirement:
    type: fixed_age
    retirement_age: 60
accounts:
  - id: brokerage
    type: taxable_brokerage
    balance: 500000
`
	parser := NewInputParser()
	inputs, err := parser.Parse([]byte(minimal))
	require.NoError(t, err)
	assert.Equal(t, domain.FilingSingle, inputs.Taxes.FilingStatus)
	assert.Equal(t, domain.BaseRuleSpend, inputs.BaseRule)
}

func TestApplyDefaultsBeforeValidate(t *testing.T) {
	// Inputs decoded outside Parse (the HTTP submit path) carry empty
	// optional fields; ApplyDefaults must make them validate.
	inputs := validInputs(t)
	inputs.Taxes.FilingStatus = ""
	inputs.BaseRule = ""

	parser := NewInputParser()
	require.Error(t, parser.Validate(inputs))

	parser.ApplyDefaults(inputs)
	require.NoError(t, parser.Validate(inputs))
	assert.Equal(t, domain.FilingSingle, inputs.Taxes.FilingStatus)
	assert.Equal(t, domain.BaseRuleSpend, inputs.BaseRule)
}

func validInputs(t *testing.T) *domain.SimulatorInputs {
	t.Helper()
	inputs, err := NewInputParser().Parse([]byte(validYAML))
	require.NoError(t, err)
	return inputs
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.SimulatorInputs)
		wantErr string
	}{
		{
			"zero current age",
			func(in *domain.SimulatorInputs) { in.Timeline.CurrentAge = 0 },
			"current age must be positive",
		},
		{
			"life expectancy before current age",
			func(in *domain.SimulatorInputs) { in.Timeline.LifeExpectancy = 30 },
			"life expectancy",
		},
		{
			"retirement age in the past",
			func(in *domain.SimulatorInputs) { in.Timeline.Retirement.RetirementAge = 25 },
			"retirement age",
		},
		{
			"retirement age past horizon",
			func(in *domain.SimulatorInputs) { in.Timeline.Retirement.RetirementAge = 90 },
			"past life expectancy",
		},
		{
			"unknown retirement strategy",
			func(in *domain.SimulatorInputs) { in.Timeline.Retirement.Type = "lottery" },
			"unknown retirement strategy",
		},
		{
			"swr target without rate",
			func(in *domain.SimulatorInputs) {
				in.Timeline.Retirement.Type = domain.RetireAtSWRTarget
				in.Timeline.Retirement.SafeWithdrawalRate = decimal.Zero
			},
			"safe withdrawal rate",
		},
		{
			"coast age outside horizon",
			func(in *domain.SimulatorInputs) { in.Timeline.CoastAge = 99 },
			"coast age",
		},
		{
			"absurd inflation",
			func(in *domain.SimulatorInputs) { in.Market.InflationRate = decimal.NewFromFloat(0.50) },
			"inflation rate",
		},
		{
			"absurd stock return",
			func(in *domain.SimulatorInputs) { in.Market.StockReturn = decimal.NewFromInt(2) },
			"stock return",
		},
		{
			"unknown filing status",
			func(in *domain.SimulatorInputs) { in.Taxes.FilingStatus = "head_of_household" },
			"unknown filing status",
		},
		{
			"no accounts",
			func(in *domain.SimulatorInputs) { in.Accounts = nil },
			"at least one account",
		},
		{
			"duplicate account id",
			func(in *domain.SimulatorInputs) { in.Accounts[1].ID = in.Accounts[0].ID },
			"duplicate account id",
		},
		{
			"reserved account id",
			func(in *domain.SimulatorInputs) { in.Accounts[0].ID = "overflow_savings" },
			"reserved",
		},
		{
			"unknown account type",
			func(in *domain.SimulatorInputs) { in.Accounts[0].Type = "mattress" },
			"unknown account type",
		},
		{
			"negative balance",
			func(in *domain.SimulatorInputs) { in.Accounts[0].Balance = decimal.NewFromInt(-5) },
			"balance must be non-negative",
		},
		{
			"percent bonds above one",
			func(in *domain.SimulatorInputs) { in.Accounts[0].PercentBonds = decimal.NewFromInt(2) },
			"percent bonds",
		},
		{
			"glide path ends in the past",
			func(in *domain.SimulatorInputs) { in.Accounts[1].GlidePath.EndAge = 20 },
			"glide path end age",
		},
		{
			"income with zero amount",
			func(in *domain.SimulatorInputs) { in.Incomes[0].Amount = decimal.Zero },
			"amount must be positive",
		},
		{
			"income with bad frequency",
			func(in *domain.SimulatorInputs) { in.Incomes[0].Frequency = "hourly" },
			"unknown frequency",
		},
		{
			"withholding above one",
			func(in *domain.SimulatorInputs) { in.Incomes[0].Withholding = decimal.NewFromInt(2) },
			"withholding",
		},
		{
			"bad time point type",
			func(in *domain.SimulatorInputs) { in.Expenses[0].Timeframe.Start.Type = "someday" },
			"unknown time point type",
		},
		{
			"custom age without age",
			func(in *domain.SimulatorInputs) {
				in.Expenses[0].Timeframe.Start = domain.TimePoint{Type: domain.TimeCustomAge}
			},
			"custom_age requires",
		},
		{
			"debt with no payment",
			func(in *domain.SimulatorInputs) { in.Debts[0].AnnualPayment = decimal.Zero },
			"annual payment",
		},
		{
			"rule references missing account",
			func(in *domain.SimulatorInputs) { in.ContributionRules[0].AccountID = "ghost" },
			"unknown account id",
		},
		{
			"rule with unknown kind",
			func(in *domain.SimulatorInputs) { in.ContributionRules[0].Kind = "vibes" },
			"unknown rule kind",
		},
		{
			"fixed amount rule without amount",
			func(in *domain.SimulatorInputs) {
				in.ContributionRules[0].Kind = domain.ContributeFixedAmount
				in.ContributionRules[0].Amount = decimal.Zero
			},
			"fixed_amount requires",
		},
		{
			"percent rule above one",
			func(in *domain.SimulatorInputs) {
				in.ContributionRules[0].Kind = domain.ContributePercentOfIncome
				in.ContributionRules[0].Percent = decimal.NewFromFloat(1.5)
			},
			"percent_of_income requires",
		},
		{
			"unknown base rule",
			func(in *domain.SimulatorInputs) { in.BaseRule = "hoard" },
			"base rule",
		},
		{
			"unknown withdrawal strategy",
			func(in *domain.SimulatorInputs) { in.Withdrawal.Strategy = "yolo" },
			"unknown withdrawal strategy",
		},
		{
			"custom strategy without sequence",
			func(in *domain.SimulatorInputs) {
				in.Withdrawal.Strategy = "custom"
				in.Withdrawal.CustomSequence = nil
			},
			"custom strategy requires",
		},
		{
			"custom sequence with bad category",
			func(in *domain.SimulatorInputs) {
				in.Withdrawal.Strategy = "custom"
				in.Withdrawal.CustomSequence = []domain.TaxCategory{"offshore"}
			},
			"unknown tax category",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := validInputs(t)
			tt.mutate(inputs)
			err := parser.Validate(inputs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateSWRTarget(t *testing.T) {
	inputs := validInputs(t)
	inputs.Timeline.Retirement = domain.RetirementStrategy{
		Type:               domain.RetireAtSWRTarget,
		SafeWithdrawalRate: decimal.NewFromFloat(0.04),
	}
	assert.NoError(t, NewInputParser().Validate(inputs))
}

func TestValidateCustomSequence(t *testing.T) {
	inputs := validInputs(t)
	inputs.Withdrawal = &domain.WithdrawalConfig{
		Strategy: "custom",
		CustomSequence: []domain.TaxCategory{
			domain.CategoryTaxable,
			domain.CategoryCash,
			domain.CategoryTaxDeferred,
			domain.CategoryTaxFree,
		},
	}
	assert.NoError(t, NewInputParser().Validate(inputs))
}
