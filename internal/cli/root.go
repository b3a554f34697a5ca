package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vessel-orders/pkg/config"
	applogger "vessel-orders/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "vessel-orders",
	Short:         "Service order tracking for the fleet",
	Long:          "Serves the service order API and bundles the operator tooling around it:\ndatabase migrations, account seeding and policy inspection.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the process logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}
	logger, err := applogger.NewLogger(cfg.Server.LogLevel, cfg.Server.LogOutputs)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
