package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/relocate/internal/cli"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded relocation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledgerName, _ := cmd.Flags().GetString("ledger")
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRuns(cmd.Context(), ledgerName, limit)
			if err != nil {
				return err
			}
			return cli.RenderRuns(cmd.OutOrStdout(), runs, decimalOutput(cmd))
		},
	}

	cmd.Flags().StringP("ledger", "l", "", "only show runs for this ledger")
	cmd.Flags().IntP("limit", "n", 20, "maximum number of runs to show (0 for all)")
	cmd.Flags().Bool("decimal", false, "show amounts as currency values (12.34)")

	return cmd
}
