package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vessel-orders/internal/repositories"
	"vessel-orders/pkg/database/postgresql"
	"vessel-orders/seeders"
)

var (
	seedDemo         bool
	seedDemoPassword string
)

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "Also create one demo account per workflow sector")
	seedCmd.Flags().StringVar(&seedDemoPassword, "demo-password", "", "Password shared by the demo accounts")
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the root administrator and optional demo accounts",
	Long: "Creates the administrator configured by ORG_ROOT_ADMIN_* when it does not\n" +
		"exist yet. Existing accounts are never modified, so the command is safe to rerun.",
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	if seedDemo && seedDemoPassword == "" {
		return fmt.Errorf("--demo requires --demo-password")
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

	s := seeders.New(repositories.NewUserRepository(pool), cfg.Organization, logger.Named("seed"))
	created, err := s.SeedRootAdmin(ctx)
	if err != nil {
		return err
	}
	logger.Info("root administrator", zap.String("email", cfg.Organization.RootAdminEmail), zap.Bool("created", created))

	if seedDemo {
		n, err := s.SeedDemoUsers(ctx, seedDemoPassword)
		if err != nil {
			return err
		}
		logger.Info("demo accounts seeded", zap.Int("created", n))
	}
	return nil
}
