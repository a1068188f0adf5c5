// Package core holds the subscription domain: typed records, validation, and
// the renewal/cost aggregation engine. Everything here is pure and operates on
// already-fetched in-memory data.
//
// This file contains money parsing and formatting. Amounts are held in integer
// cents so aggregate sums stay exact.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is a monetary amount in integer cents.
type Money struct {
	Cents int64
}

// Validate rejects non-positive amounts.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidCost
	}
	return nil
}

// Dollars returns the amount as a float64 for display and charting.
// Calculations stay in cents.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// Format renders the amount with a currency symbol, e.g. "$15.99".
func (m Money) Format(symbol string) string {
	return fmt.Sprintf("%s%d.%02d", symbol, m.Cents/100, m.Cents%100)
}

// ParseCost parses a user-entered cost into Money. It accepts plain decimals
// ("15.99") and currency-formatted strings ("$15.99", "19,99", "1,234.56"):
// currency symbols and spaces are stripped, a comma is a decimal separator
// when no dot is present and a thousands separator otherwise. The parsed
// value must be strictly positive.
func ParseCost(s string) (Money, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune("$€£¥₹", r) {
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return Money{}, ErrInvalidCost
	}

	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	}

	cents, err := decimalToCents(cleaned)
	if err != nil {
		return Money{}, err
	}
	return Money{Cents: cents}, nil
}

// decimalToCents converts a positive decimal string to cents with half-up
// rounding on the third fractional digit.
func decimalToCents(s string) (int64, error) {
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidCost
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidCost
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" {
		return 0, ErrInvalidCost
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidCost
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidCost
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, ErrInvalidCost
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidCost
	}
	return cents, nil
}
