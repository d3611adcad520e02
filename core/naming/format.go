package naming

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// Compact renders a monetary amount in the short form used in option
// names: $5M, $2.5M, $25K, $750. Deterministic display formatting only;
// stored values are never compacted.
func Compact(v decimal.Decimal) string {
	sign := ""
	abs := v.Abs()
	if v.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(million):
		return sign + "$" + trimZeros(abs.Div(million).Round(3).String()) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return sign + "$" + trimZeros(abs.Div(thousand).Round(3).String()) + "K"
	default:
		return sign + "$" + trimZeros(abs.Round(2).String())
	}
}

// trimZeros drops a trailing fractional zero run left by fixed-exponent
// decimal rendering ("2.500" -> "2.5", "5.000" -> "5").
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
