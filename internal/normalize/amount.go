package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseDecimal coerces a raw payload value into a decimal. Strings get the
// locale fixup first: the gateway formats decimals with a comma, so the first
// comma becomes the decimal point. Anything that is neither a JSON number nor
// a numeric string carries no value.
func parseDecimal(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case string:
		s := strings.Replace(strings.TrimSpace(v), ",", ".", 1)
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}

// AmountInt is the flooring variant used for valor: the fractional part is
// dropped after the locale fixup ("12,50" -> 12). Unparseable input yields
// nil, never an error.
func AmountInt(raw any) *int64 {
	d, ok := parseDecimal(raw)
	if !ok {
		return nil
	}
	n := d.Floor().IntPart()
	return &n
}

// AmountFloat is the non-flooring variant used for liquidado
// ("12,50" -> 12.5).
func AmountFloat(raw any) *float64 {
	d, ok := parseDecimal(raw)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return &f
}
