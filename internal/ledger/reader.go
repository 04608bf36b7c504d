// Package ledger reads plain-text amount lists.
//
// Input holds one or more amounts per line separated by whitespace or commas.
// Blank lines are skipped and everything after a '#' is a comment.
package ledger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/relocate/internal/model"
)

// ErrParse is returned when a token cannot be read as an amount.
var ErrParse = errors.New("cannot parse amount")

// Options controls how amounts are interpreted.
type Options struct {
	// Decimal reads amounts as currency values ("12.34") and converts them to
	// minor units. Otherwise every token must be a plain integer.
	Decimal bool
}

// ReadAmounts reads every amount from r in input order.
func ReadAmounts(ctx context.Context, r io.Reader, opts Options) ([]int64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var amounts []int64
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++

		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}

		for _, token := range splitTokens(line) {
			amount, err := ParseToken(token, opts)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			amounts = append(amounts, amount)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read amounts: %w", err)
	}

	return amounts, nil
}

// ParseAmounts parses tokens such as command line arguments.
func ParseAmounts(tokens []string, opts Options) ([]int64, error) {
	amounts := make([]int64, 0, len(tokens))
	for i, token := range tokens {
		for _, part := range splitTokens(token) {
			amount, err := ParseToken(part, opts)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i+1, err)
			}
			amounts = append(amounts, amount)
		}
	}
	return amounts, nil
}

// ParseToken parses a single amount.
func ParseToken(token string, opts Options) (int64, error) {
	if opts.Decimal {
		amount, err := model.ParseAmount(token)
		if err != nil {
			return 0, fmt.Errorf("%w %q: %w", ErrParse, token, err)
		}
		return amount, nil
	}

	amount, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrParse, token, err)
	}
	return amount, nil
}

// splitTokens splits a line on whitespace and commas.
// Commas are treated as separators, so decimal mode does not accept thousands
// separators here.
func splitTokens(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r'
	})
}
