// backend/src/formatting/currency.go
package formatting

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency renders a decimal amount in pt-BR currency format:
// "R$ 1.234,56".
func Currency(d decimal.Decimal) string {
	return "R$ " + localize(d.StringFixed(2))
}

// Price renders an average price with 3 fractional digits, or "-" when
// the price is undefined (no buys in the period). The dash must stay
// visually distinct from a zero amount.
func Price(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return "R$ " + localize(d.Decimal.StringFixed(3))
}

// localize converts "1234.56" into "1.234,56".
func localize(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}
