package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/relocate/internal/common"
	"github.com/Veraticus/relocate/internal/model"
)

func TestSaveLedger_RoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	txns := makeTransactions("jan", 1000, -1000, -100, 100, 1000)
	txns[2].CheckNumber = "1234"

	inserted, err := store.SaveLedger(ctx, "checking", txns)
	require.NoError(t, err)
	assert.Equal(t, 5, inserted)

	ledger, err := store.GetLedger(ctx, "checking")
	require.NoError(t, err)
	assert.Equal(t, "checking", ledger.Name)
	assert.False(t, ledger.CreatedAt.IsZero())
	require.Len(t, ledger.Transactions, 5)

	assert.Equal(t, []int64{1000, -1000, -100, 100, 1000}, model.Amounts(ledger.Transactions))
	assert.Equal(t, "jan-2", ledger.Transactions[2].ID)
	assert.Equal(t, "1234", ledger.Transactions[2].CheckNumber)
	assert.Equal(t, "DEBIT", ledger.Transactions[2].Type)
	assert.Equal(t, txns[2].GenerateHash(), ledger.Transactions[2].Hash)
	assert.True(t, txns[0].Date.Equal(ledger.Transactions[0].Date))
}

func TestSaveLedger_AppendsAndSkipsDuplicates(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first := makeTransactions("a", 10, -10)
	_, err := store.SaveLedger(ctx, "checking", first)
	require.NoError(t, err)

	// One repeat of an existing transaction plus one new one.
	second := append([]model.Transaction{first[1]}, makeTransactions("b", 5)...)
	inserted, err := store.SaveLedger(ctx, "checking", second)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	ledger, err := store.GetLedger(ctx, "checking")
	require.NoError(t, err)
	assert.Equal(t, []int64{10, -10, 5}, model.Amounts(ledger.Transactions))
}

func TestSaveLedger_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.SaveLedger(ctx, "", makeTransactions("a", 1))
	assert.ErrorIs(t, err, ErrEmptyString)

	_, err = store.SaveLedger(ctx, "checking", nil)
	assert.ErrorIs(t, err, ErrNilParameter)

	_, err = store.SaveLedger(ctx, "checking", []model.Transaction{})
	assert.ErrorIs(t, err, ErrEmptySlice)

	bad := makeTransactions("a", 1)
	bad[0].ID = ""
	_, err = store.SaveLedger(ctx, "checking", bad)
	assert.ErrorIs(t, err, ErrInvalidTransaction)

	//nolint:staticcheck // nil context is the case under test
	_, err = store.SaveLedger(nil, "checking", makeTransactions("a", 1))
	assert.ErrorIs(t, err, ErrNilContext)
}

func TestGetLedger_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetLedger(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListLedgers(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.SaveLedger(ctx, "savings", makeTransactions("s", 500, -200))
	require.NoError(t, err)
	_, err = store.SaveLedger(ctx, "checking", makeTransactions("c", 100, -50, -25))
	require.NoError(t, err)

	summaries, err := store.ListLedgers(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "checking", summaries[0].Name)
	assert.Equal(t, 3, summaries[0].Transactions)
	assert.Equal(t, int64(25), summaries[0].Total)

	assert.Equal(t, "savings", summaries[1].Name)
	assert.Equal(t, 2, summaries[1].Transactions)
	assert.Equal(t, int64(300), summaries[1].Total)
}

func TestDeleteLedger(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.SaveLedger(ctx, "checking", makeTransactions("c", 100, -50))
	require.NoError(t, err)

	require.NoError(t, store.DeleteLedger(ctx, "checking"))

	_, err = store.GetLedger(ctx, "checking")
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, store.DeleteLedger(ctx, "checking"), common.ErrNotFound)

	// The same transactions can be imported again after deletion.
	inserted, err := store.SaveLedger(ctx, "checking", makeTransactions("c", 100, -50))
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
}
