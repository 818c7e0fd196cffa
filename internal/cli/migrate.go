package cli

import (
	"context"
	"fmt"

	"image-judge/internal/database"

	"github.com/spf13/cobra"
)

// NewMigrateCmd applies the embedded SQL migrations.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the result tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context())
		},
	}
}

func runMigrations(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := database.NewSQLXOracleDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
