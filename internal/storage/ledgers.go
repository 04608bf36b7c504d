package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/relocate/internal/common"
	"github.com/Veraticus/relocate/internal/model"
)

// SaveLedger appends transactions to the named ledger, creating it when
// needed. Transactions whose hash is already in the ledger are skipped. It
// returns the number of transactions inserted.
func (s *SQLiteStorage) SaveLedger(ctx context.Context, name string, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(name, "name"); err != nil {
		return 0, err
	}
	if err := validateTransactions(transactions); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted, err := s.saveLedgerTx(ctx, tx, name, transactions)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit ledger %s: %w", name, err)
	}
	return inserted, nil
}

func (s *SQLiteStorage) saveLedgerTx(ctx context.Context, tx *sql.Tx, name string, transactions []model.Transaction) (int, error) {
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO ledgers (name, created_at) VALUES (?, ?)`,
		name, time.Now().UTC(),
	); err != nil {
		return 0, fmt.Errorf("failed to create ledger %s: %w", name, err)
	}

	var seq int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq) + 1, 0) FROM transactions WHERE ledger = ?`, name,
	).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to read ledger position: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			ledger, seq, id, hash, date, name, account_id,
			amount, transaction_type, check_number
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, txn := range transactions {
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}

		res, err := stmt.ExecContext(ctx,
			name,
			seq,
			txn.ID,
			txn.Hash,
			txn.Date,
			txn.Name,
			txn.AccountID,
			txn.Amount,
			txn.Type,
			txn.CheckNumber,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
		if affected > 0 {
			seq++
			inserted++
		}
	}

	return inserted, nil
}

// GetLedger returns the named ledger with its transactions in ledger order.
func (s *SQLiteStorage) GetLedger(ctx context.Context, name string) (*model.Ledger, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	ledger := &model.Ledger{Name: name}
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at FROM ledgers WHERE name = ?`, name,
	).Scan(&ledger.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ledger %s: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger %s: %w", name, err)
	}

	ledger.Transactions, err = s.getLedgerTransactions(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

func (s *SQLiteStorage) getLedgerTransactions(ctx context.Context, q queryable, name string) ([]model.Transaction, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, hash, date, name, account_id, amount, transaction_type, check_number
		FROM transactions
		WHERE ledger = ?
		ORDER BY seq ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.Hash,
			&txn.Date,
			&txn.Name,
			&txn.AccountID,
			&txn.Amount,
			&txn.Type,
			&txn.CheckNumber,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

// ListLedgers returns a summary of every stored ledger, ordered by name.
func (s *SQLiteStorage) ListLedgers(ctx context.Context) ([]model.LedgerSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT l.name, l.created_at, COUNT(t.seq), COALESCE(SUM(t.amount), 0)
		FROM ledgers l
		LEFT JOIN transactions t ON t.ledger = l.name
		GROUP BY l.name, l.created_at
		ORDER BY l.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledgers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []model.LedgerSummary
	for rows.Next() {
		var summary model.LedgerSummary
		if err := rows.Scan(&summary.Name, &summary.CreatedAt, &summary.Transactions, &summary.Total); err != nil {
			return nil, fmt.Errorf("failed to scan ledger: %w", err)
		}
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

// DeleteLedger removes the named ledger and its transactions. Relocation runs
// recorded for it are kept as history.
func (s *SQLiteStorage) DeleteLedger(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE ledger = ?`, name); err != nil {
		return fmt.Errorf("failed to delete transactions of %s: %w", name, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM ledgers WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete ledger %s: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete ledger %s: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("ledger %s: %w", name, common.ErrNotFound)
	}

	return tx.Commit()
}
