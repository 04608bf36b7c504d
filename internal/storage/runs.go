package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/relocate/internal/model"
)

// SaveRun records the outcome of a relocation analysis.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.RelocationRun) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO relocation_runs (
			id, ledger, relocations, transactions, expenses,
			lowest_prefix, final_balance, relocated, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Ledger,
		run.Relocations,
		run.Transactions,
		run.Expenses,
		run.LowestPrefix,
		run.FinalBalance,
		run.Relocated,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// ListRuns returns recorded runs, newest first. An empty ledger lists runs
// for every ledger; a non-positive limit lists them all.
func (s *SQLiteStorage) ListRuns(ctx context.Context, ledger string, limit int) ([]model.RelocationRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, ledger, relocations, transactions, expenses,
		       lowest_prefix, final_balance, relocated, created_at
		FROM relocation_runs
	`
	var args []any
	if ledger != "" {
		query += " WHERE ledger = ?"
		args = append(args, ledger)
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.RelocationRun
	for rows.Next() {
		var run model.RelocationRun
		if err := rows.Scan(
			&run.ID,
			&run.Ledger,
			&run.Relocations,
			&run.Transactions,
			&run.Expenses,
			&run.LowestPrefix,
			&run.FinalBalance,
			&run.Relocated,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
