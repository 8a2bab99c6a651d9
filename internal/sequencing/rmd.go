package sequencing

import (
	"github.com/shopspring/decimal"

	"firesim/internal/domain"
)

// rmdStartAge is when required minimum distributions begin under current
// law (SECURE 2.0).
const rmdStartAge = 73

// uniformLifetime is the IRS Uniform Lifetime Table distribution period by
// age. Ages past the end of the table use the final divisor.
var uniformLifetime = map[int]float64{
	73: 26.5, 74: 25.5, 75: 24.6, 76: 23.7, 77: 22.9,
	78: 22.0, 79: 21.1, 80: 20.2, 81: 19.4, 82: 18.5,
	83: 17.7, 84: 16.8, 85: 16.0, 86: 15.2, 87: 14.4,
	88: 13.7, 89: 12.9, 90: 12.2, 91: 11.5, 92: 10.8,
	93: 10.1, 94: 9.5, 95: 8.9, 96: 8.4, 97: 7.8,
	98: 7.3, 99: 6.8, 100: 6.4, 101: 6.0, 102: 5.6,
	103: 5.2, 104: 4.9, 105: 4.6, 106: 4.3, 107: 4.1,
	108: 3.9, 109: 3.7, 110: 3.5, 111: 3.4, 112: 3.3,
	113: 3.1, 114: 3.0, 115: 2.9, 116: 2.8, 117: 2.7,
	118: 2.5, 119: 2.3, 120: 2.0,
}

// RequiredMinimumDistribution computes the forced distribution for one
// account balance at the given age. Zero before the RMD start age and for
// account types without RMDs.
func RequiredMinimumDistribution(accountType domain.AccountType, balance decimal.Decimal, age int) decimal.Decimal {
	if age < rmdStartAge || !accountType.HasRMDs() || !balance.IsPositive() {
		return decimal.Zero
	}
	divisorAge := age
	if divisorAge > 120 {
		divisorAge = 120
	}
	divisor := decimal.NewFromFloat(uniformLifetime[divisorAge])
	return balance.Div(divisor)
}
