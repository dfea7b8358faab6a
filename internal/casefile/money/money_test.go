package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		allowBlank bool
		wantText   string
		wantMsg    string
	}{
		{name: "plain integer", raw: "100", wantText: "100.00"},
		{name: "two decimals kept", raw: "12.50", wantText: "12.50"},
		{name: "one decimal padded", raw: "7.5", wantText: "7.50"},
		{name: "whitespace trimmed", raw: "  3.25 ", wantText: "3.25"},
		{name: "zero", raw: "0", wantText: "0.00"},
		{name: "blank allowed", raw: "   ", allowBlank: true, wantText: ""},
		{name: "blank required", raw: "", wantMsg: "Must enter the loss amount."},
		{name: "not a number", raw: "12,50", wantMsg: "the loss amount must be a valid number."},
		{name: "three decimals", raw: "1.005", wantMsg: "the loss amount can only have two decimals."},
		{name: "trailing zero still three decimals", raw: "1.230", wantMsg: "the loss amount can only have two decimals."},
		{name: "negative", raw: "-0.01", wantMsg: "the loss amount cannot be negative."},
		{name: "at the digit bound", raw: "999999999999.99", wantText: "999999999999.99"},
		{name: "over the digit bound", raw: "1000000000000", wantMsg: "the loss amount cannot have more than 12 digits."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, msg := Normalize(tt.raw, "the loss amount", tt.allowBlank)
			assert.Equal(t, tt.wantMsg, msg)
			if tt.wantMsg != "" {
				return
			}
			assert.Equal(t, tt.wantText, amount.Text)
			if tt.wantText == "" {
				assert.True(t, amount.Empty)
				assert.True(t, amount.Value.IsZero())
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, raw := range []string{"0", "1", "7.5", "12.50", "999999999999.99"} {
		first, msg := Normalize(raw, "the amount", false)
		require.Empty(t, msg)

		second, msg := Normalize(first.Text, "the amount", false)
		require.Empty(t, msg)
		assert.Equal(t, first.Text, second.Text)
		assert.True(t, first.Value.Equal(second.Value))
	}
}

func TestParseOrZero(t *testing.T) {
	assert.Equal(t, "12.5", ParseOrZero("12.50").String())
	assert.True(t, ParseOrZero("").IsZero())
	assert.True(t, ParseOrZero("garbage").IsZero())
	assert.True(t, ParseOrZero("-4").IsZero())
}

func TestZero(t *testing.T) {
	z := Zero()
	assert.Equal(t, "0.00", z.Text)
	assert.True(t, z.Value.IsZero())
	assert.False(t, z.Empty)
}
