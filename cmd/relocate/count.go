package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/relocate/internal/cli"
	"github.com/Veraticus/relocate/internal/ledger"
	"github.com/Veraticus/relocate/internal/service"
)

func countCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [amounts...]",
		Short: "Count the relocations needed for a list of amounts",
		Long: `Count the minimum number of expenses that must be relocated to the end of
the ledger so the running balance never drops below zero.

Amounts come from the arguments, from --file, or from standard input. Put
"--" before the amounts so negative values are not read as flags.

Examples:
  relocate count -- 10 -10 -1 1 10
  relocate count --file january.txt --verbose
  printf '12.50\n-3.10\n' | relocate count --decimal`,
		RunE: runCount,
	}

	cmd.Flags().StringP("file", "f", "", "read amounts from a file (\"-\" for stdin)")
	cmd.Flags().Bool("decimal", false, "read amounts as currency values (12.34)")
	cmd.Flags().Bool("unchecked", false, "skip validation of the ledger total")
	cmd.Flags().BoolP("verbose", "v", false, "list every relocated expense")
	cmd.Flags().BoolP("quiet", "q", false, "print only the relocation count")
	cmd.Flags().Bool("save", false, "record the run in the history")

	return cmd
}

func runCount(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	file, _ := cmd.Flags().GetString("file")
	decimalFlag, _ := cmd.Flags().GetBool("decimal")
	unchecked, _ := cmd.Flags().GetBool("unchecked")
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	save, _ := cmd.Flags().GetBool("save")

	opts := ledger.Options{Decimal: decimalAmounts(cmd.Flags().Changed("decimal"), decimalFlag)}

	amounts, err := readAmounts(ctx, cmd.InOrStdin(), file, args, opts)
	if err != nil {
		return err
	}

	var store service.Storage
	if save {
		sqlStore, err := initStorage(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = sqlStore.Close() }()
		store = sqlStore
	}

	analysis, err := service.NewRelocator(store).Analyze(ctx, amounts, service.AnalyzeOptions{
		Save:      save,
		Unchecked: unchecked,
	})
	if err != nil {
		return err
	}

	if quiet {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), analysis.Run.Relocations)
		return err
	}

	return cli.RenderReport(cmd.OutOrStdout(), analysis, cli.ReportOptions{
		Decimal: opts.Decimal,
		Verbose: verbose,
	})
}

// readAmounts collects amounts from args, a file, or stdin, in that order of
// preference.
func readAmounts(ctx context.Context, stdin io.Reader, file string, args []string, opts ledger.Options) ([]int64, error) {
	if len(args) > 0 {
		if file != "" {
			return nil, fmt.Errorf("amounts given both as arguments and with --file")
		}
		return ledger.ParseAmounts(args, opts)
	}

	if file == "" || file == "-" {
		return ledger.ReadAmounts(ctx, stdin, opts)
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer func() { _ = f.Close() }()

	amounts, err := ledger.ReadAmounts(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return amounts, nil
}
