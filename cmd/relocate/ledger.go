package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Veraticus/relocate/internal/cli"
	"github.com/Veraticus/relocate/internal/common"
	"github.com/Veraticus/relocate/internal/ledger"
	"github.com/Veraticus/relocate/internal/model"
	"github.com/Veraticus/relocate/internal/service"
)

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Manage stored ledgers",
	}

	cmd.AddCommand(ledgerListCmd())
	cmd.AddCommand(ledgerAddCmd())
	cmd.AddCommand(ledgerShowCmd())
	cmd.AddCommand(ledgerAnalyzeCmd())
	cmd.AddCommand(ledgerDeleteCmd())

	return cmd
}

func ledgerListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored ledgers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ledgers, err := store.ListLedgers(cmd.Context())
			if err != nil {
				return err
			}
			return cli.RenderLedgers(cmd.OutOrStdout(), ledgers, decimalOutput(cmd))
		},
	}

	cmd.Flags().Bool("decimal", false, "show amounts as currency values (12.34)")

	return cmd
}

func ledgerAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add NAME [amounts...]",
		Short: "Append manual entries to a ledger",
		Long: `Append amounts to a ledger as manual entries. Amounts come from the
arguments, from --file, or from standard input.

Example:
  relocate ledger add cash -- 10 -10 -1 1 10`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLedgerAdd,
	}

	cmd.Flags().StringP("file", "f", "", "read amounts from a file (\"-\" for stdin)")
	cmd.Flags().Bool("decimal", false, "read amounts as currency values (12.34)")

	return cmd
}

func runLedgerAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]
	file, _ := cmd.Flags().GetString("file")
	decimalFlag, _ := cmd.Flags().GetBool("decimal")
	opts := ledger.Options{Decimal: decimalAmounts(cmd.Flags().Changed("decimal"), decimalFlag)}

	amounts, err := readAmounts(ctx, cmd.InOrStdin(), file, args[1:], opts)
	if err != nil {
		return err
	}
	if len(amounts) == 0 {
		return common.NewUserError("nothing to add to "+name, common.ErrNoTransactions)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	inserted, err := store.SaveLedger(ctx, name, manualEntries(amounts, time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("failed to save ledger %s: %w", name, err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %d entries to %s", inserted, name)))
	return err
}

// manualEntries wraps raw amounts as ledger transactions.
func manualEntries(amounts []int64, now time.Time) []model.Transaction {
	txns := make([]model.Transaction, len(amounts))
	for i, amount := range amounts {
		txns[i] = model.Transaction{
			ID:     uuid.NewString(),
			Date:   now,
			Name:   "manual entry " + strconv.Itoa(i+1),
			Amount: amount,
			Type:   "MANUAL",
		}
		txns[i].Hash = txns[i].GenerateHash()
	}
	return txns
}

func ledgerShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show the transactions of a ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			l, err := store.GetLedger(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			decimal := decimalOutput(cmd)
			rows := make([][]string, 0, len(l.Transactions))
			var balance int64
			for i, txn := range l.Transactions {
				balance += txn.Amount
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					txn.Date.Format("2006-01-02"),
					cli.FormatValue(txn.Amount, decimal),
					cli.FormatValue(balance, decimal),
					txn.Name,
				})
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, cli.FormatTitle(l.Name)); err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, cli.RenderTable([]string{"#", "Date", "Amount", "Balance", "Description"}, rows))
			return err
		},
	}

	cmd.Flags().Bool("decimal", false, "show amounts as currency values (12.34)")

	return cmd
}

func ledgerAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze NAME",
		Short: "Count the relocations needed for a stored ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			quiet, _ := cmd.Flags().GetBool("quiet")
			noSave, _ := cmd.Flags().GetBool("no-save")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			analysis, l, err := service.NewRelocator(store).AnalyzeLedger(cmd.Context(), args[0], !noSave)
			if err != nil {
				return err
			}

			if quiet {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), analysis.Run.Relocations)
				return err
			}
			return cli.RenderReport(cmd.OutOrStdout(), analysis, cli.ReportOptions{
				Transactions: l.Transactions,
				Decimal:      decimalOutput(cmd),
				Verbose:      verbose,
			})
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "list every relocated expense")
	cmd.Flags().BoolP("quiet", "q", false, "print only the relocation count")
	cmd.Flags().Bool("no-save", false, "do not record the run in the history")
	cmd.Flags().Bool("decimal", false, "show amounts as currency values (12.34)")

	return cmd
}

func ledgerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a ledger and its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteLedger(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted ledger "+args[0]))
			return err
		},
	}
}
