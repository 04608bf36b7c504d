// Package testutil provides shared test helpers for database-backed tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/relocate/internal/model"
	"github.com/Veraticus/relocate/internal/storage"
)

// TestDB wraps a migrated in-memory database.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database.
// It automatically handles migrations and cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// Transactions builds a ledger of transactions from amounts, one day apart.
func Transactions(amounts ...int64) []model.Transaction {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	txns := make([]model.Transaction, len(amounts))
	for i, amount := range amounts {
		txns[i] = model.Transaction{
			ID:        fmt.Sprintf("txn-%03d", i),
			Date:      start.AddDate(0, 0, i),
			Name:      fmt.Sprintf("Entry %d", i),
			AccountID: "acct-1",
			Amount:    amount,
		}
		txns[i].Hash = txns[i].GenerateHash()
	}
	return txns
}

// SeedLedger stores a ledger built from amounts or fails the test.
func (db *TestDB) SeedLedger(name string, amounts ...int64) []model.Transaction {
	db.t.Helper()

	txns := Transactions(amounts...)
	if _, err := db.Storage.SaveLedger(context.Background(), name, txns); err != nil {
		db.t.Fatalf("failed to seed ledger %q: %v", name, err)
	}
	return txns
}
