// Package relocation computes the minimum number of expense relocations needed
// to keep a running balance non-negative.
//
// Transactions are signed integers in input order: positive values are income,
// negative values are expenses and zero is a no-op. Whenever the running balance
// drops below zero, the largest expense seen so far that has not been relocated
// yet is moved out of the way and its magnitude is credited back to the balance.
// Relocating the largest available expense restores the most balance per move,
// which makes the greedy choice optimal.
package relocation

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput is returned when a ledger does not satisfy the
	// non-negative total precondition.
	ErrInvalidInput = errors.New("invalid input")
	// ErrOverflow is returned when the magnitudes of a ledger cannot be
	// accumulated in an int64. It wraps ErrInvalidInput.
	ErrOverflow = fmt.Errorf("%w: amounts overflow int64", ErrInvalidInput)
	// ErrExhaustedSource signals that the balance is still negative with no
	// expenses left to relocate. Once every expense is relocated the balance
	// equals the sum of incomes, so it only surfaces on arithmetic overflow.
	ErrExhaustedSource = errors.New("no expenses left to relocate")
	// ErrInvalidPlan is returned by Simulate for relocations that could not
	// have been performed.
	ErrInvalidPlan = errors.New("invalid relocation plan")
)

// Relocation records a single deferred expense.
type Relocation struct {
	// Index is the position of the relocated expense in the ledger.
	Index int
	// Magnitude is the absolute value of the relocated expense.
	Magnitude int64
	// TriggeredAt is the position of the transaction that drove the balance
	// below zero.
	TriggeredAt int
}

// Result is the full outcome of a relocation scan.
type Result struct {
	Relocations []Relocation
	// Balances holds the running balance after each transaction once the
	// relocations triggered by it have been applied. Every value is >= 0.
	Balances []int64
	// Expenses is the number of negative transactions in the ledger.
	Expenses int
	// LowestPrefix is the smallest prefix sum of the ledger before any
	// relocation, or 0 for a ledger that never dips.
	LowestPrefix int64
	// FinalBalance is the sum of all transactions.
	FinalBalance int64
	// Relocated is the total magnitude of relocated expenses.
	Relocated int64
}

// Count returns the minimum number of relocations for transactions.
// The ledger is validated first; a ledger with a negative total yields
// ErrInvalidInput and no count.
func Count(transactions []int64) (int, error) {
	if err := Validate(transactions); err != nil {
		return 0, err
	}
	return scan(transactions, nil)
}

// CountUnchecked runs the scan without validating the ledger up front.
// A ledger with a negative total still produces a count, which is meaningless
// because the relocated expenses cannot all be settled at the end.
// Amounts are assumed small enough that no partial sum overflows.
func CountUnchecked(transactions []int64) (int, error) {
	return scan(transactions, nil)
}

// Plan validates transactions and returns the relocation count together with
// every relocation performed and the adjusted balances.
func Plan(transactions []int64) (*Result, error) {
	if err := Validate(transactions); err != nil {
		return nil, err
	}

	res := &Result{
		Balances: make([]int64, 0, len(transactions)),
	}
	if _, err := scan(transactions, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Validate checks that the ledger total is non-negative and that the sum of
// all magnitudes fits in an int64, which bounds every balance reached by the
// scan.
func Validate(transactions []int64) error {
	var total, magnitudes int64
	for i, t := range transactions {
		if t == math.MinInt64 {
			return fmt.Errorf("%w: transaction %d", ErrOverflow, i)
		}
		m := t
		if m < 0 {
			m = -m
		}
		if magnitudes > math.MaxInt64-m {
			return fmt.Errorf("%w: transaction %d", ErrOverflow, i)
		}
		magnitudes += m
		total += t
	}
	if total < 0 {
		return fmt.Errorf("%w: ledger total %d is negative", ErrInvalidInput, total)
	}
	return nil
}

// scan is the greedy pass shared by Count and Plan. When res is non-nil the
// relocations and balances are recorded into it.
func scan(transactions []int64, res *Result) (int, error) {
	var (
		balance     int64
		prefix      int64
		relocations int
		expenses    expenseHeap
	)

	for i, t := range transactions {
		balance += t
		prefix += t

		if t < 0 {
			heap.Push(&expenses, expense{index: i, magnitude: -t})
			if res != nil {
				res.Expenses++
			}
		}
		if res != nil && prefix < res.LowestPrefix {
			res.LowestPrefix = prefix
		}

		for balance < 0 {
			if expenses.Len() == 0 {
				return 0, fmt.Errorf("%w: balance %d at transaction %d", ErrExhaustedSource, balance, i)
			}
			largest := heap.Pop(&expenses).(expense)
			balance += largest.magnitude
			relocations++

			if res != nil {
				res.Relocations = append(res.Relocations, Relocation{
					Index:       largest.index,
					Magnitude:   largest.magnitude,
					TriggeredAt: i,
				})
				res.Relocated += largest.magnitude
			}
		}

		if res != nil {
			res.Balances = append(res.Balances, balance)
		}
	}

	if res != nil {
		res.FinalBalance = prefix
	}
	return relocations, nil
}
