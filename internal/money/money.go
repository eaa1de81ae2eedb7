// Package money converts between decimal currency amounts and their
// integer minor-unit representation (pence for GBP). The minor-unit value is
// the value of record; the decimal leg is carried alongside for display only.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a decimal amount to minor units by truncating
// amount * 100 toward zero. Truncation, not rounding, is deliberate: it
// matches the legacy conversion used when the stored data was first written,
// so re-importing an amount never changes it. The cost is that sub-cent
// fractions are dropped (e.g. 4.359 becomes 435, not 436).
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).IntPart()
}

// FromMinorUnits returns the decimal display value for a minor-unit amount.
// Write paths never use this; the store carries the decimal leg it was given.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(hundred)
}
