package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  error
		expected int64
	}{
		{name: "whole number", input: "10", expected: 1000},
		{name: "one decimal", input: "1.5", expected: 150},
		{name: "smallest expense", input: "-0.01", expected: -1},
		{name: "currency and separators", input: " $1,200.50 ", expected: 120050},
		{name: "explicit plus", input: "+3.25", expected: 325},
		{name: "trailing zeros beyond scale", input: "2.500", expected: 250},
		{name: "too precise", input: "1.234", wantErr: ErrAmountPrecision},
		{name: "not a number", input: "ten", wantErr: ErrInvalidAmount},
		{name: "empty", input: "  ", wantErr: ErrInvalidAmount},
		{name: "too large", input: "99999999999999999999", wantErr: ErrAmountRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFromDecimal(t *testing.T) {
	got, err := FromDecimal(decimal.RequireFromString("-125.00"))
	require.NoError(t, err)
	assert.Equal(t, int64(-12500), got)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "-0.01", FormatAmount(-1))
	assert.Equal(t, "1200.50", FormatAmount(120050))
	assert.Equal(t, "0.00", FormatAmount(0))
}
