package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/relocate/internal/config"
	"github.com/Veraticus/relocate/internal/storage"
)

// initStorage opens and migrates the configured database.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	cfg := config.Load(viper.GetViper())

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// decimalAmounts resolves the --decimal flag against the configured default.
func decimalAmounts(flagSet bool, flagValue bool) bool {
	if flagSet {
		return flagValue
	}
	return viper.GetBool(config.KeyDecimalAmounts)
}

// decimalOutput reports whether cmd should render amounts as currency.
func decimalOutput(cmd *cobra.Command) bool {
	value, _ := cmd.Flags().GetBool("decimal")
	return decimalAmounts(cmd.Flags().Changed("decimal"), value)
}
