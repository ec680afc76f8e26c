package normalize

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol is the symbol used when none is configured.
var DefaultCurrencySymbol = CurrencySymbol(money.INR)

// CurrencySymbol resolves an ISO 4217 code such as "USD" to its symbol.
// Anything that is not a known code (including a symbol itself) is returned
// unchanged.
func CurrencySymbol(codeOrSymbol string) string {
	code := strings.ToUpper(strings.TrimSpace(codeOrSymbol))
	if code == "" {
		return ""
	}
	if c := money.GetCurrency(code); c != nil && c.Grapheme != "" {
		return c.Grapheme
	}
	return strings.TrimSpace(codeOrSymbol)
}

// FormatMoney renders d with exactly two decimals and Indian digit grouping:
// the last three integer digits form one group and every group before them
// has two digits ("12,34,567.89").
func FormatMoney(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, frac, _ := strings.Cut(fixed, ".")
	if sign != "" && strings.Trim(intPart+frac, "0") == "" {
		// -0.001 rounds to zero and must not print as "-0.00".
		sign = ""
	}

	return sign + groupIndian(intPart) + "." + frac
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}

// Money renders d prefixed with symbol, e.g. "₹ 1,234.50".
func Money(symbol string, d decimal.Decimal) string {
	if symbol == "" {
		return FormatMoney(d)
	}
	return symbol + " " + FormatMoney(d)
}

// Formatter renders amounts with a fixed currency symbol.
type Formatter struct {
	Symbol string
}

// NewFormatter returns a Formatter for symbol, falling back to
// DefaultCurrencySymbol when symbol is empty.
func NewFormatter(symbol string) Formatter {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return Formatter{Symbol: symbol}
}

// Money renders d with the formatter's symbol.
func (f Formatter) Money(d decimal.Decimal) string {
	return Money(f.Symbol, d)
}
