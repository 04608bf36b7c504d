package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/relocate/internal/common"
	"github.com/Veraticus/relocate/internal/model"
	"github.com/Veraticus/relocate/internal/relocation"
)

// ErrNoStorage is returned when an operation needs persistence but the
// relocator was built without it.
var ErrNoStorage = errors.New("storage not configured")

// AnalyzeOptions controls a single analysis.
type AnalyzeOptions struct {
	// Ledger names the ledger the amounts came from, if any.
	Ledger string
	// Save records the run in storage.
	Save bool
	// Unchecked skips validation of the ledger total and only counts.
	Unchecked bool
}

// Analysis is the outcome of one relocation scan.
type Analysis struct {
	// Result is nil for unchecked analyses.
	Result *relocation.Result
	Run    model.RelocationRun
}

// Relocator runs relocation analyses and records them.
type Relocator struct {
	store Storage
	now   func() time.Time
}

// NewRelocator creates a relocator. A nil store disables run history.
func NewRelocator(store Storage) *Relocator {
	return &Relocator{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Analyze computes the relocations for amounts.
func (r *Relocator) Analyze(ctx context.Context, amounts []int64, opts AnalyzeOptions) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analysis := &Analysis{
		Run: model.RelocationRun{
			ID:           uuid.NewString(),
			Ledger:       opts.Ledger,
			Transactions: len(amounts),
			CreatedAt:    r.now(),
		},
	}

	if opts.Unchecked {
		if opts.Save {
			return nil, common.NewUserError("unchecked runs are not recorded", common.ErrInvalidConfig)
		}
		count, err := relocation.CountUnchecked(amounts)
		if err != nil {
			return nil, fmt.Errorf("relocation scan failed: %w", err)
		}
		analysis.Run.Relocations = count
		analysis.Run.Expenses = countExpenses(amounts)
		return analysis, nil
	}

	result, err := relocation.Plan(amounts)
	if err != nil {
		if errors.Is(err, relocation.ErrInvalidInput) {
			return nil, common.NewUserError("ledger does not have a non-negative total", err)
		}
		return nil, fmt.Errorf("relocation scan failed: %w", err)
	}

	analysis.Result = result
	analysis.Run.Relocations = len(result.Relocations)
	analysis.Run.Expenses = result.Expenses
	analysis.Run.LowestPrefix = result.LowestPrefix
	analysis.Run.FinalBalance = result.FinalBalance
	analysis.Run.Relocated = result.Relocated

	slog.Debug("Relocation scan complete",
		"ledger", opts.Ledger,
		"transactions", analysis.Run.Transactions,
		"expenses", analysis.Run.Expenses,
		"relocations", analysis.Run.Relocations)

	if opts.Save {
		if r.store == nil {
			return nil, ErrNoStorage
		}
		if err := r.store.SaveRun(ctx, &analysis.Run); err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
	}

	return analysis, nil
}

// AnalyzeLedger loads a stored ledger and analyzes it in ledger order.
func (r *Relocator) AnalyzeLedger(ctx context.Context, name string, save bool) (*Analysis, *model.Ledger, error) {
	if r.store == nil {
		return nil, nil, ErrNoStorage
	}

	ledger, err := r.store.GetLedger(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	analysis, err := r.Analyze(ctx, model.Amounts(ledger.Transactions), AnalyzeOptions{
		Ledger: name,
		Save:   save,
	})
	if err != nil {
		return nil, nil, err
	}
	return analysis, ledger, nil
}

func countExpenses(amounts []int64) int {
	n := 0
	for _, a := range amounts {
		if a < 0 {
			n++
		}
	}
	return n
}
