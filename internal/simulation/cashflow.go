package simulation

import (
	"github.com/shopspring/decimal"

	"firesim/internal/domain"
)

// scheduleClock is the point in simulated time a schedule is evaluated at.
type scheduleClock struct {
	Age            int
	Year           int // calendar year
	YearIndex      int // years since the simulation started
	Retired        bool
	LifeExpectancy int
}

func pointReached(tp domain.TimePoint, c scheduleClock) bool {
	switch tp.Type {
	case domain.TimeNow:
		return true
	case domain.TimeCustomAge:
		return c.Age >= tp.Age
	case domain.TimeCustomYear:
		return c.Year >= tp.Year
	case domain.TimeAtRetirement:
		return c.Retired
	case domain.TimeAtLifeExpectancy:
		return c.Age >= c.LifeExpectancy
	default:
		return false
	}
}

// windowActive reports whether a timeframe covers this year. The end point
// is exclusive: an income ending at_retirement stops in the first retired
// year.
func windowActive(tf domain.Timeframe, c scheduleClock) bool {
	if !pointReached(tf.Start, c) {
		return false
	}
	return tf.End == nil || !pointReached(*tf.End, c)
}

// grownAmount compounds a scheduled amount from the simulation start,
// clamping at the configured limit in the direction of growth.
func grownAmount(base decimal.Decimal, g *domain.Growth, yearIndex int) decimal.Decimal {
	if g == nil || g.Rate.IsZero() || yearIndex == 0 {
		return base
	}
	grown := base.Mul(decimal.NewFromInt(1).Add(g.Rate).Pow(decimal.NewFromInt(int64(yearIndex))))
	if g.Limit != nil {
		if g.Rate.IsPositive() && grown.GreaterThan(*g.Limit) {
			return *g.Limit
		}
		if g.Rate.IsNegative() && grown.LessThan(*g.Limit) {
			return *g.Limit
		}
	}
	return grown
}

// incomeStream tracks one income input across the run. One-time incomes
// fire in the first year their window is active.
type incomeStream struct {
	in    domain.IncomeInput
	fired bool
}

// amount returns this year's gross income and the portion withheld.
func (s *incomeStream) amount(c scheduleClock) (gross, withheld decimal.Decimal) {
	if !windowActive(s.in.Timeframe, c) {
		return decimal.Zero, decimal.Zero
	}
	base := grownAmount(s.in.Amount, s.in.Growth, c.YearIndex)
	if s.in.Frequency == domain.FrequencyOneTime {
		if s.fired {
			return decimal.Zero, decimal.Zero
		}
		s.fired = true
		gross = base
	} else {
		gross = base.Mul(decimal.NewFromInt(int64(s.in.Frequency.TimesPerYear())))
	}
	return gross, gross.Mul(s.in.Withholding)
}

// expenseStream tracks one expense input across the run.
type expenseStream struct {
	in    domain.ExpenseInput
	fired bool
}

func (s *expenseStream) amount(c scheduleClock) decimal.Decimal {
	if !windowActive(s.in.Timeframe, c) {
		return decimal.Zero
	}
	base := grownAmount(s.in.Amount, s.in.Growth, c.YearIndex)
	if s.in.Frequency == domain.FrequencyOneTime {
		if s.fired {
			return decimal.Zero
		}
		s.fired = true
		return base
	}
	return base.Mul(decimal.NewFromInt(int64(s.in.Frequency.TimesPerYear())))
}

// debtState amortizes one liability. The payment is a mandatory expense
// until the balance hits zero; interest accrues before each payment.
type debtState struct {
	in      domain.DebtInput
	balance decimal.Decimal
}

func (d *debtState) advance() decimal.Decimal {
	if !d.balance.IsPositive() {
		return decimal.Zero
	}
	d.balance = d.balance.Mul(decimal.NewFromInt(1).Add(d.in.InterestRate))
	payment := d.in.AnnualPayment
	if payment.GreaterThan(d.balance) {
		payment = d.balance
	}
	d.balance = d.balance.Sub(payment)
	return payment
}

// assetState appreciates one physical asset. Assets count toward net worth
// but can never fund withdrawals.
type assetState struct {
	in    domain.PhysicalAssetInput
	value decimal.Decimal
}

func (a *assetState) appreciate() {
	a.value = a.value.Mul(decimal.NewFromInt(1).Add(a.in.AppreciationRate))
}

// cashflows bundles the per-run mutable schedule state.
type cashflows struct {
	incomes  []*incomeStream
	expenses []*expenseStream
	debts    []*debtState
	assets   []*assetState
}

func newCashflows(inputs *domain.SimulatorInputs) *cashflows {
	cf := &cashflows{}
	for _, in := range inputs.Incomes {
		cf.incomes = append(cf.incomes, &incomeStream{in: in})
	}
	for _, in := range inputs.Expenses {
		cf.expenses = append(cf.expenses, &expenseStream{in: in})
	}
	for _, in := range inputs.Debts {
		cf.debts = append(cf.debts, &debtState{in: in, balance: in.Balance})
	}
	for _, in := range inputs.PhysicalAssets {
		cf.assets = append(cf.assets, &assetState{in: in, value: in.Value})
	}
	return cf
}

// year advances every schedule one year and returns the aggregates.
func (cf *cashflows) year(c scheduleClock) (grossIncome, withheld, expenses decimal.Decimal) {
	for _, s := range cf.incomes {
		g, w := s.amount(c)
		grossIncome = grossIncome.Add(g)
		withheld = withheld.Add(w)
	}
	for _, s := range cf.expenses {
		expenses = expenses.Add(s.amount(c))
	}
	for _, d := range cf.debts {
		expenses = expenses.Add(d.advance())
	}
	for _, a := range cf.assets {
		a.appreciate()
	}
	return grossIncome, withheld, expenses
}

// debtBalance is the remaining liability total, for net worth.
func (cf *cashflows) debtBalance() decimal.Decimal {
	total := decimal.Zero
	for _, d := range cf.debts {
		total = total.Add(d.balance)
	}
	return total
}

// assetValue is the physical asset total, for net worth.
func (cf *cashflows) assetValue() decimal.Decimal {
	total := decimal.Zero
	for _, a := range cf.assets {
		total = total.Add(a.value)
	}
	return total
}
