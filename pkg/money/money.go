package money

import "github.com/shopspring/decimal"

// Round2 rounds to two decimal places, half up. All stored currency
// amounts go through this so that line totals sum exactly.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotal computes price * quantity rounded to the smallest currency unit.
func LineTotal(price decimal.Decimal, quantity int64) decimal.Decimal {
	return Round2(price.Mul(decimal.NewFromInt(quantity)))
}
