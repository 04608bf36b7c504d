package model

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits kept in minor units.
const AmountScale = 2

var (
	// ErrInvalidAmount is returned for strings that are not decimal amounts.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrAmountPrecision is returned for amounts finer than a minor unit.
	ErrAmountPrecision = errors.New("amount has more precision than minor units")
	// ErrAmountRange is returned for amounts that do not fit in an int64.
	ErrAmountRange = errors.New("amount out of range")
)

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
)

// ParseAmount converts a decimal string such as "-12.34" or "$1,200" into
// minor units.
func ParseAmount(s string) (int64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.Replace(cleaned, "$", "", 1)
	cleaned = strings.TrimPrefix(cleaned, "+")
	if cleaned == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d)
}

// FromDecimal converts a decimal amount into minor units.
func FromDecimal(d decimal.Decimal) (int64, error) {
	if !d.Equal(d.Truncate(AmountScale)) {
		return 0, fmt.Errorf("%w: %s", ErrAmountPrecision, d.String())
	}

	minor := d.Shift(AmountScale)
	if minor.GreaterThan(maxMinorUnits) || minor.LessThan(minMinorUnits) {
		return 0, fmt.Errorf("%w: %s", ErrAmountRange, d.String())
	}
	return minor.IntPart(), nil
}

// FormatAmount renders minor units as a fixed-point decimal string.
func FormatAmount(minor int64) string {
	return decimal.New(minor, -AmountScale).StringFixed(AmountScale)
}
