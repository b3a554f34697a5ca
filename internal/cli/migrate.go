package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vessel-orders/pkg/database/postgresql"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or inspect database migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(postgresql.MigrateUp), string(postgresql.MigrateDown), string(postgresql.MigrateStatus)},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	direction := postgresql.MigrateUp
	if len(args) == 1 {
		direction = postgresql.MigrateDirection(args[0])
	}

	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgresql.Migrate(ctx, pool, direction); err != nil {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	logger.Info("migrations finished", zap.String("direction", string(direction)))
	return nil
}
