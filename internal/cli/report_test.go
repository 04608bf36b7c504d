package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/relocate/internal/model"
	"github.com/Veraticus/relocate/internal/relocation"
	"github.com/Veraticus/relocate/internal/service"
)

func analysisFor(t *testing.T, ledger string, amounts []int64) *service.Analysis {
	t.Helper()

	result, err := relocation.Plan(amounts)
	require.NoError(t, err)

	return &service.Analysis{
		Result: result,
		Run: model.RelocationRun{
			ID:           "0b3f7c1e-1111-2222-3333-444455556666",
			Ledger:       ledger,
			Relocations:  len(result.Relocations),
			Transactions: len(amounts),
			Expenses:     result.Expenses,
			LowestPrefix: result.LowestPrefix,
			FinalBalance: result.FinalBalance,
			Relocated:    result.Relocated,
		},
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "-1050", FormatValue(-1050, false))
	assert.Equal(t, "-10.50", FormatValue(-1050, true))
}

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	analysis := analysisFor(t, "checking", []int64{10, -10, -1, 1, 10})

	txns := []model.Transaction{
		{Name: "Payroll"}, {Name: "Rent"}, {Name: "Coffee"}, {Name: "Refund"}, {Name: "Payroll"},
	}
	require.NoError(t, RenderReport(&buf, analysis, ReportOptions{Transactions: txns, Verbose: true}))

	out := buf.String()
	assert.Contains(t, out, "Relocation report · checking")
	assert.Contains(t, out, "Relocations:")
	assert.Contains(t, out, "Lowest prefix: -1")
	assert.Contains(t, out, "Final balance: 10")
	assert.Contains(t, out, "Triggered by")
	assert.Contains(t, out, "Rent")
	assert.Contains(t, out, "-10")
}

func TestRenderReport_NoRelocations(t *testing.T) {
	var buf bytes.Buffer
	analysis := analysisFor(t, "", []int64{5, -2, -3, 1})

	require.NoError(t, RenderReport(&buf, analysis, ReportOptions{Decimal: true, Verbose: true}))

	out := buf.String()
	assert.Contains(t, out, "Relocation report")
	assert.Contains(t, out, "Final balance: 0.01")
	assert.Contains(t, out, "never drops below zero")
	assert.NotContains(t, out, "Triggered by")
}

func TestRenderReport_Unchecked(t *testing.T) {
	var buf bytes.Buffer
	analysis := &service.Analysis{
		Run: model.RelocationRun{Relocations: 2, Transactions: 3, Expenses: 2},
	}

	require.NoError(t, RenderReport(&buf, analysis, ReportOptions{Verbose: true}))
	assert.Contains(t, buf.String(), "not validated")
	assert.NotContains(t, buf.String(), "Triggered by")
}

func TestRenderLedgers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderLedgers(&buf, nil, false))
	assert.Contains(t, buf.String(), "No ledgers")

	buf.Reset()
	ledgers := []model.LedgerSummary{
		{Name: "checking", Transactions: 12, Total: 123456, CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, RenderLedgers(&buf, ledgers, true))
	assert.Contains(t, buf.String(), "checking")
	assert.Contains(t, buf.String(), "1234.56")
	assert.Contains(t, buf.String(), "2024-02-01")
}

func TestRenderRuns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRuns(&buf, nil, false))
	assert.Contains(t, buf.String(), "No relocation runs")

	buf.Reset()
	runs := []model.RelocationRun{
		{ID: "0b3f7c1e-aaaa", Relocations: 3, Expenses: 3, Transactions: 7, FinalBalance: 1, CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
	}
	require.NoError(t, RenderRuns(&buf, runs, false))
	out := buf.String()
	assert.Contains(t, out, "(ad hoc)")
	assert.Contains(t, out, "3/7")
	assert.Contains(t, out, "0b3f7c1e")
	assert.NotContains(t, out, "0b3f7c1e-aaaa")
}
