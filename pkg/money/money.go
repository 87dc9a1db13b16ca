// Package money handles price arithmetic for cart lines and order totals.
// Prices travel as floats in the backend JSON; all arithmetic here goes
// through decimals so repeated line sums stay exact.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineTotal returns price multiplied by quantity.
func LineTotal(price float64, quantity int) decimal.Decimal {
	if quantity < 0 {
		quantity = 0
	}
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

// Format renders an amount the way the store displays it, e.g. "1250.00 ₸".
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " ₸"
}

// FormatFloat is Format for raw backend values.
func FormatFloat(amount float64) string {
	return Format(decimal.NewFromFloat(amount))
}

// FormatPerUnit renders a unit price, e.g. "350.00 TG/kg".
func FormatPerUnit(price float64, unit string) string {
	return fmt.Sprintf("%s TG/%s", decimal.NewFromFloat(price).StringFixed(2), unit)
}
