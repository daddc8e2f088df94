// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts from form input
// and rendering them as fixed two-decimal currency strings.
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// CurrencySymbol prefixes every rendered amount.
const CurrencySymbol = "$"

// ParseAmount converts a decimal string to an exact amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Fractional
// cents are kept as entered; rounding only happens when rendering.
// Returns an error for empty input, malformed numbers and negative values.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("12,34")  -> 12.34, nil
//	ParseAmount("0.005")  -> 0.005, nil
//	ParseAmount("-1")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	// decimal accepts exponents; a form field never should.
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// MustAmount parses a literal amount and panics on failure. Meant for fixtures.
func MustAmount(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		panic("core: bad amount literal " + s)
	}
	return d
}

// FormatAmount renders an amount as fixed two-decimal currency, e.g. "$85.50".
func FormatAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + CurrencySymbol + d.Neg().StringFixed(2)
	}
	return CurrencySymbol + d.StringFixed(2)
}

// FormatSignedAmount renders an amount with an explicit sign: "+$12.00", "-$3.50".
// Zero is rendered as a non-negative value.
func FormatSignedAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return FormatAmount(d)
	}
	return "+" + FormatAmount(d)
}

// Sum adds up the amounts of the given expenses.
func Sum(items []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range items {
		total = total.Add(e.Amount)
	}
	return total
}
