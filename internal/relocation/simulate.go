package relocation

import "fmt"

// Simulate replays transactions with the given relocations applied and returns
// the balance after each transaction. A relocation credits its magnitude back
// at the transaction that triggered it.
//
// Each relocation must point at an expense no later than its trigger, carry the
// expense's magnitude, and be used at most once; otherwise ErrInvalidPlan is
// returned. Simulate does not require the balances to stay non-negative, so
// callers can inspect plans that fail.
func Simulate(transactions []int64, relocations []Relocation) ([]int64, error) {
	credits := make(map[int]int64, len(relocations))
	used := make(map[int]bool, len(relocations))

	for _, r := range relocations {
		if r.Index < 0 || r.Index >= len(transactions) || r.TriggeredAt < r.Index || r.TriggeredAt >= len(transactions) {
			return nil, fmt.Errorf("%w: relocation of %d at %d is out of range", ErrInvalidPlan, r.Index, r.TriggeredAt)
		}
		if transactions[r.Index] >= 0 || -transactions[r.Index] != r.Magnitude {
			return nil, fmt.Errorf("%w: transaction %d is not an expense of %d", ErrInvalidPlan, r.Index, r.Magnitude)
		}
		if used[r.Index] {
			return nil, fmt.Errorf("%w: expense %d relocated twice", ErrInvalidPlan, r.Index)
		}
		used[r.Index] = true
		credits[r.TriggeredAt] += r.Magnitude
	}

	balances := make([]int64, len(transactions))
	var balance int64
	for i, t := range transactions {
		balance += t + credits[i]
		balances[i] = balance
	}
	return balances, nil
}

// NonNegative reports whether every balance is >= 0.
func NonNegative(balances []int64) bool {
	for _, b := range balances {
		if b < 0 {
			return false
		}
	}
	return true
}
