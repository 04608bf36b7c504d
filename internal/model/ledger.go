package model

import "time"

// Ledger is a named, ordered sequence of transactions.
type Ledger struct {
	CreatedAt    time.Time
	Name         string
	Transactions []Transaction
}

// LedgerSummary describes a stored ledger without its transactions.
type LedgerSummary struct {
	CreatedAt    time.Time
	Name         string
	Transactions int
	Total        int64
}

// RelocationRun is the persisted outcome of one relocation analysis.
type RelocationRun struct {
	CreatedAt    time.Time
	ID           string
	Ledger       string // Empty for ad-hoc amounts
	Relocations  int
	Transactions int
	Expenses     int
	LowestPrefix int64
	FinalBalance int64
	Relocated    int64
}
