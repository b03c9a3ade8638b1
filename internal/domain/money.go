package domain

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is used when a line item is created without an explicit code.
const DefaultCurrency = "USD"

// CentsToDollars converts minor units to a major-unit float at 1/100 scale.
func CentsToDollars(cents int64) float64 {
	return float64(cents) / 100
}

// DollarsToCents converts a major-unit amount to minor units, rounding to
// the nearest cent. The round trip DollarsToCents(CentsToDollars(x)) == x
// holds for every non-negative integer x.
func DollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

// ParseMoneyInput converts a user-supplied amount ("12.50", "7") to cents.
// NaN, infinities, unparsable strings and negative amounts are rejected
// with a ValidationError.
func ParseMoneyInput(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, NewValidationError("amount", "is required")
	}

	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, NewValidationError("amount", "is not a valid number")
	}
	if f < 0 {
		return 0, NewValidationError("amount", "must not be negative")
	}

	return DollarsToCents(f), nil
}

// FormatMoney renders cents as a locale-aware currency string, e.g.
// FormatMoney(1250, "USD") == "USD 12.50". Unknown codes fall back to USD.
func FormatMoney(cents int64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}

	p := message.NewPrinter(language.English)
	return p.Sprint(unit.Amount(CentsToDollars(cents)))
}

// ValidCurrencyCode reports whether code parses as an ISO 4217 unit.
func ValidCurrencyCode(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}
