package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Veraticus/relocate/internal/cli"
	"github.com/Veraticus/relocate/internal/model"
	"github.com/Veraticus/relocate/internal/ofx"
	"github.com/Veraticus/relocate/internal/service"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files into a ledger",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank
into a named ledger. Transactions are ordered by posting date and duplicates
are skipped, so overlapping exports can be imported safely.

Examples:
  relocate import-ofx --ledger checking ~/Downloads/chase_jan_2024.qfx
  relocate import-ofx --ledger checking ~/Downloads/chase_*.qfx --analyze`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().StringP("ledger", "l", "", "ledger to import into (required)")
	cmd.Flags().BoolP("dry-run", "d", false, "preview import without saving")
	cmd.Flags().Bool("analyze", false, "analyze the ledger after importing")
	cmd.Flags().BoolP("verbose", "v", false, "list every relocated expense")
	_ = cmd.MarkFlagRequired("ledger")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ledgerName, _ := cmd.Flags().GetString("ledger")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	analyze, _ := cmd.Flags().GetBool("analyze")
	verbose, _ := cmd.Flags().GetBool("verbose")
	out := cmd.OutOrStdout()

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	slog.Info("Importing OFX files", "file_count", len(files), "ledger", ledgerName, "dry_run", dryRun)

	parser := ofx.NewParser()
	seen := make(map[string]bool)
	var transactions []model.Transaction

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(files), "Reading statements...")
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		parsed, err := parseOFXFile(cmd, parser, path)
		_ = bar.Add(1)
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
			continue
		}

		added := 0
		for _, txn := range parsed {
			if seen[txn.Hash] {
				continue
			}
			seen[txn.Hash] = true
			transactions = append(transactions, txn)
			added++
		}
		slog.Debug("Processed file",
			"file", filepath.Base(path),
			"transactions_found", len(parsed),
			"added", added,
			"duplicates", len(parsed)-added)
	}
	_ = bar.Finish()

	if len(transactions) == 0 {
		_, err := fmt.Fprintln(out, cli.FormatWarning("No transactions found in any file"))
		return err
	}

	// Files may overlap or arrive out of order.
	slices.SortStableFunc(transactions, func(a, b model.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	if dryRun {
		_, err := fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions would be imported into %s", len(transactions), ledgerName)))
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	inserted, err := store.SaveLedger(ctx, ledgerName, transactions)
	if err != nil {
		return fmt.Errorf("failed to save ledger %s: %w", ledgerName, err)
	}

	if _, err := fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d new transactions into %s (%d already present)",
		inserted, ledgerName, len(transactions)-inserted))); err != nil {
		return err
	}

	if !analyze {
		return nil
	}

	analysis, ledger, err := service.NewRelocator(store).AnalyzeLedger(ctx, ledgerName, true)
	if err != nil {
		return err
	}
	return cli.RenderReport(out, analysis, cli.ReportOptions{
		Transactions: ledger.Transactions,
		Decimal:      true,
		Verbose:      verbose,
	})
}

func parseOFXFile(cmd *cobra.Command, parser *ofx.Parser, path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return parser.ParseFile(cmd.Context(), f)
}

// expandFiles expands glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}
