package utils

import "github.com/shopspring/decimal"

// Round rounds f half away from zero to the given number of decimal places.
// Rounding happens in decimal, so Round(1.005, 2) is 1.01.
func Round(f float64, places int32) float64 {
	return decimal.NewFromFloat(f).Round(places).InexactFloat64()
}

// Round2 rounds to two decimals.
func Round2(f float64) float64 {
	return Round(f, 2)
}

// Percent returns part/total*100 rounded to two decimals, or 0 when total
// is zero.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return Round2(part / total * 100)
}
