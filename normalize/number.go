package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyMarker = regexp.MustCompile(`(?i)INR|₹`)
	leadingNumber  = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
)

// Number parses a currency cell such as "₹ 1,234.50" or "INR 12,000".
//
// Currency markers, thousands separators and whitespace are stripped, then the
// longest leading numeric prefix is parsed, so "12.5 approx" yields 12.5.
// Empty or unparsable input yields zero.
func Number(s string) decimal.Decimal {
	v := currencyMarker.ReplaceAllString(s, "")
	v = strings.ReplaceAll(v, ",", "")
	v = strings.Join(strings.Fields(v), "")
	if v == "" {
		return decimal.Zero
	}

	match := leadingNumber.FindString(v)
	if match == "" {
		return decimal.Zero
	}
	// "+.5" and "5." are accepted by the prefix but not by decimal.
	match = strings.TrimPrefix(match, "+")
	match = strings.TrimSuffix(match, ".")

	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return d
}
