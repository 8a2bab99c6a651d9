package simulation

import (
	"github.com/shopspring/decimal"

	"firesim/internal/domain"
)

// Bracket tables use 2025 values for all projection years; no inflation
// indexing is applied. Capital gains brackets stack on top of ordinary
// income, and the standard deduction is applied to ordinary income first
// with any remainder offsetting gains.

// TaxBracket is one marginal rate band.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// TaxCalculator computes federal income and capital gains tax from bracket
// tables keyed by filing status. It is pure and safe for concurrent use.
type TaxCalculator struct {
	ordinaryBrackets  map[domain.FilingStatus][]TaxBracket
	capGainsBrackets  map[domain.FilingStatus][]TaxBracket
	standardDeduction map[domain.FilingStatus]decimal.Decimal
	capitalLossCap    decimal.Decimal
}

func bracket(min, max int64, rate float64) TaxBracket {
	return TaxBracket{
		Min:  decimal.NewFromInt(min),
		Max:  decimal.NewFromInt(max),
		Rate: decimal.NewFromFloat(rate),
	}
}

const bracketTop = int64(999999999)

// NewTaxCalculator builds the calculator with 2025 federal tables.
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{
		ordinaryBrackets: map[domain.FilingStatus][]TaxBracket{
			domain.FilingSingle: {
				bracket(0, 11925, 0.10),
				bracket(11925, 48475, 0.12),
				bracket(48475, 103350, 0.22),
				bracket(103350, 197300, 0.24),
				bracket(197300, 250525, 0.32),
				bracket(250525, 626350, 0.35),
				bracket(626350, bracketTop, 0.37),
			},
			domain.FilingMarriedJoint: {
				bracket(0, 23850, 0.10),
				bracket(23850, 96950, 0.12),
				bracket(96950, 206700, 0.22),
				bracket(206700, 394600, 0.24),
				bracket(394600, 501050, 0.32),
				bracket(501050, 751600, 0.35),
				bracket(751600, bracketTop, 0.37),
			},
		},
		capGainsBrackets: map[domain.FilingStatus][]TaxBracket{
			domain.FilingSingle: {
				bracket(0, 48350, 0.00),
				bracket(48350, 533400, 0.15),
				bracket(533400, bracketTop, 0.20),
			},
			domain.FilingMarriedJoint: {
				bracket(0, 96700, 0.00),
				bracket(96700, 600050, 0.15),
				bracket(600050, bracketTop, 0.20),
			},
		},
		standardDeduction: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle:       decimal.NewFromInt(15000),
			domain.FilingMarriedJoint: decimal.NewFromInt(30000),
		},
		capitalLossCap: decimal.NewFromInt(3000),
	}
}

// TaxResult is the outcome of one year's tax computation.
type TaxResult struct {
	OrdinaryTax     decimal.Decimal
	CapitalGainsTax decimal.Decimal
	Total           decimal.Decimal
	EffectiveRate   decimal.Decimal
	MarginalRate    decimal.Decimal
}

// Compute calculates federal tax on one year's ordinary income and net
// capital gains. Negative gains offset ordinary income up to the capital
// loss cap; the excess loss is simply dropped (single-year model, no
// carryover).
func (tc *TaxCalculator) Compute(ordinaryIncome, capitalGains decimal.Decimal, filing domain.FilingStatus) TaxResult {
	if _, ok := tc.ordinaryBrackets[filing]; !ok {
		filing = domain.FilingSingle
	}

	if capitalGains.IsNegative() {
		loss := capitalGains.Neg()
		if loss.GreaterThan(tc.capitalLossCap) {
			loss = tc.capitalLossCap
		}
		ordinaryIncome = ordinaryIncome.Sub(loss)
		capitalGains = decimal.Zero
	}
	if ordinaryIncome.IsNegative() {
		ordinaryIncome = decimal.Zero
	}

	deduction := tc.standardDeduction[filing]
	taxableOrdinary := ordinaryIncome.Sub(deduction)
	leftoverDeduction := decimal.Zero
	if taxableOrdinary.IsNegative() {
		leftoverDeduction = taxableOrdinary.Neg()
		taxableOrdinary = decimal.Zero
	}
	taxableGains := capitalGains.Sub(leftoverDeduction)
	if taxableGains.IsNegative() {
		taxableGains = decimal.Zero
	}

	result := TaxResult{
		OrdinaryTax:     tc.bracketTax(tc.ordinaryBrackets[filing], decimal.Zero, taxableOrdinary),
		CapitalGainsTax: tc.bracketTax(tc.capGainsBrackets[filing], taxableOrdinary, taxableGains),
	}
	result.Total = result.OrdinaryTax.Add(result.CapitalGainsTax)
	result.MarginalRate = tc.marginalRate(tc.ordinaryBrackets[filing], taxableOrdinary)

	grossIncome := ordinaryIncome.Add(capitalGains)
	if grossIncome.IsPositive() {
		result.EffectiveRate = result.Total.Div(grossIncome)
	}
	return result
}

// bracketTax taxes amount through the table starting at floor, so capital
// gains stack on top of the taxable ordinary income below them.
func (tc *TaxCalculator) bracketTax(brackets []TaxBracket, floor, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	top := floor.Add(amount)
	tax := decimal.Zero
	for _, b := range brackets {
		lo := decimal.Max(b.Min, floor)
		hi := decimal.Min(b.Max, top)
		if hi.GreaterThan(lo) {
			tax = tax.Add(hi.Sub(lo).Mul(b.Rate))
		}
	}
	return tax
}

func (tc *TaxCalculator) marginalRate(brackets []TaxBracket, taxableIncome decimal.Decimal) decimal.Decimal {
	for _, b := range brackets {
		if taxableIncome.GreaterThanOrEqual(b.Min) && taxableIncome.LessThan(b.Max) {
			return b.Rate
		}
	}
	if len(brackets) > 0 {
		return brackets[len(brackets)-1].Rate
	}
	return decimal.Zero
}
