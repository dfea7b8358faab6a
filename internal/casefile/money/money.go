// Package money normalizes the textual amounts used across the case form.
//
// Every money field in the dataset goes through Normalize before any
// cross-field comparison: equality checks elsewhere rely on amounts being
// quantized to exactly two decimals, so no epsilon is ever needed.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxIntegerDigits bounds the integer part of any amount.
const MaxIntegerDigits = 12

// Amount is a normalized money value. Empty marks a blank input that was
// accepted (allowBlank); Value is zero in that case.
type Amount struct {
	Value decimal.Decimal
	Text  string
	Empty bool
}

// Zero returns the canonical zero amount.
func Zero() Amount {
	return Amount{Value: decimal.Zero, Text: "0.00"}
}

// Normalize parses raw text into a two-decimal amount. The second return is
// the diagnostic message; "" means the amount is valid. Callers are expected
// to write Text back over their stored value so re-reads stay canonical.
func Normalize(raw, label string, allowBlank bool) (Amount, string) {
	text := strings.TrimSpace(raw)
	if text == "" {
		if allowBlank {
			return Amount{Value: decimal.Zero, Empty: true}, ""
		}
		return Amount{}, fmt.Sprintf("Must enter %s.", label)
	}

	value, err := decimal.NewFromString(text)
	if err != nil {
		return Amount{}, fmt.Sprintf("%s must be a valid number.", label)
	}
	if value.Exponent() < -2 {
		return Amount{}, fmt.Sprintf("%s can only have two decimals.", label)
	}

	quantized := value.Round(2)
	if quantized.IsNegative() {
		return Amount{}, fmt.Sprintf("%s cannot be negative.", label)
	}
	if integerDigits(quantized) > MaxIntegerDigits {
		return Amount{}, fmt.Sprintf("%s cannot have more than %d digits.", label, MaxIntegerDigits)
	}

	return Amount{Value: quantized, Text: quantized.StringFixed(2)}, ""
}

// ParseOrZero resolves an amount for arithmetic, treating blank or invalid
// text as zero. Used where totals must be computed even when some inputs
// have their own pending diagnostics.
func ParseOrZero(raw string) decimal.Decimal {
	amount, msg := Normalize(raw, "amount", true)
	if msg != "" {
		return decimal.Zero
	}
	return amount.Value
}

func integerDigits(d decimal.Decimal) int {
	text := d.Abs().Truncate(0).String()
	if text == "0" {
		return 1
	}
	return len(text)
}
