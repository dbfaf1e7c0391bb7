// backend/src/utils/money.go
package utils

import "github.com/shopspring/decimal"

// Precisions used throughout the pipeline: currency amounts carry 2
// fractional digits, average prices carry 3.
const (
	MoneyPlaces = 2
	PricePlaces = 3
)

// RoundDownMoney truncates a currency amount to 2 decimal places.
// Truncation, not round-to-nearest: the tax authority requires that a
// reported fee or cost is never higher than the true value, so an exact
// half (8.505) still truncates to 8.50.
func RoundDownMoney(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(MoneyPlaces)
}

// RoundDownPrice truncates an average price to 3 decimal places.
func RoundDownPrice(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(PricePlaces)
}
