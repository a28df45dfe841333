package domain

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// TaxMinor computes the tax for an amount in minor units at the given
// percentage rate, rounded half-up to the nearest minor unit.
func TaxMinor(amountMinor int64, taxRatePercent float64) int64 {
	if amountMinor <= 0 || taxRatePercent <= 0 {
		return 0
	}
	tax := decimal.NewFromInt(amountMinor).
		Mul(decimal.NewFromFloat(taxRatePercent)).
		Div(oneHundred)
	// Round(0) is half away from zero, which for non-negative values is
	// exactly the half-up rule the gateway reconciliation expects.
	return tax.Round(0).IntPart()
}

// TotalMinor returns amount plus computed tax, both in minor units.
func TotalMinor(amountMinor int64, taxRatePercent float64) int64 {
	return amountMinor + TaxMinor(amountMinor, taxRatePercent)
}

// FormatAmount renders minor units as the fixed two-decimal string the
// gateway wire format requires (never a floating-point literal).
func FormatAmount(amountMinor int64) string {
	return decimal.NewFromInt(amountMinor).Div(oneHundred).StringFixed(2)
}

// ParseAmountToMinor converts a gateway decimal amount string (e.g. "108.25")
// into minor units.
func ParseAmountToMinor(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.Mul(oneHundred).Round(0).IntPart(), nil
}
