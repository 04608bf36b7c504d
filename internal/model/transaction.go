// Package model defines the ledger types shared across the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single ledger entry from any source.
// Amount is signed and expressed in minor units: positive amounts are income,
// negative amounts are expenses.
type Transaction struct {
	Date        time.Time
	ID          string
	Name        string // Raw transaction description
	AccountID   string
	Hash        string
	Type        string // Transaction type (e.g., DEBIT, CHECK, PAYMENT, ATM)
	CheckNumber string
	Amount      int64
}

// IsExpense reports whether the transaction lowers the balance.
func (t *Transaction) IsExpense() bool {
	return t.Amount < 0
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%d:%s:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Name,
		t.AccountID,
		t.ID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Amounts projects transactions onto their signed amounts, preserving order.
func Amounts(transactions []Transaction) []int64 {
	amounts := make([]int64, len(transactions))
	for i, txn := range transactions {
		amounts[i] = txn.Amount
	}
	return amounts
}
