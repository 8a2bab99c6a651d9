package simulation

import (
	"github.com/shopspring/decimal"

	"firesim/internal/domain"
)

// phaseState resolves the lifecycle phase for each simulated year.
// Retirement is sticky: once the milestone is hit the household never
// un-retires, which keeps phase order monotonic even when a crash drops
// the portfolio back under an SWR target.
type phaseState struct {
	timeline      domain.Timeline
	retired       bool
	retirementAge int // 0 until retirement is reached
}

// identify computes the phase at the start of a year. portfolioBalance and
// annualExpenses are the values known entering the year; for the SWR
// strategy the household retires once the portfolio covers expenses at the
// safe withdrawal rate.
func (ps *phaseState) identify(age int, portfolioBalance, annualExpenses decimal.Decimal) domain.Phase {
	if !ps.retired {
		switch ps.timeline.Retirement.Type {
		case domain.RetireAtFixedAge:
			ps.retired = age >= ps.timeline.Retirement.RetirementAge
		case domain.RetireAtSWRTarget:
			required := RequiredPortfolio(annualExpenses, ps.timeline.Retirement.SafeWithdrawalRate)
			ps.retired = required.IsPositive() && portfolioBalance.GreaterThanOrEqual(required)
		}
		if ps.retired {
			ps.retirementAge = age
		}
	}

	switch {
	case age >= ps.timeline.LifeExpectancy:
		return domain.PhaseTerminal
	case ps.retired:
		return domain.PhaseRetirement
	case ps.timeline.BaristaAge > 0 && age >= ps.timeline.BaristaAge:
		return domain.PhaseBarista
	case ps.timeline.CoastAge > 0 && age >= ps.timeline.CoastAge:
		return domain.PhaseCoast
	default:
		return domain.PhaseAccumulation
	}
}

// RequiredPortfolio is the balance needed to sustain the given annual
// expenses at a safe withdrawal rate. Zero when the rate is unset.
func RequiredPortfolio(annualExpenses, swr decimal.Decimal) decimal.Decimal {
	if !swr.IsPositive() {
		return decimal.Zero
	}
	return annualExpenses.Div(swr)
}
