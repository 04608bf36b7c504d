// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/relocate/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Ledger operations
	SaveLedger(ctx context.Context, name string, transactions []model.Transaction) (int, error)
	GetLedger(ctx context.Context, name string) (*model.Ledger, error)
	ListLedgers(ctx context.Context) ([]model.LedgerSummary, error)
	DeleteLedger(ctx context.Context, name string) error

	// Run history
	SaveRun(ctx context.Context, run *model.RelocationRun) error
	ListRuns(ctx context.Context, ledger string, limit int) ([]model.RelocationRun, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
