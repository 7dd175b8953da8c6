package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbweber/homelab/territoire/internal/config"
	"github.com/jbweber/homelab/territoire/internal/logger"
)

// rootFlags override values loaded from the config file and environment.
type rootFlags struct {
	configPath string
	port       string
	dbPath     string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:          "territoire",
		Short:        "REST service for French départements and villes",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flags.port, "port", "", "HTTP listen port")
	cmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "sqlite database path")

	cmd.AddCommand(
		newServeCmd(flags),
		newMigrateCmd(flags),
		newSyncCmd(flags),
		newFillNomsCmd(flags),
	)
	return cmd
}

// setup loads the configuration and builds the logger shared by every
// subcommand.
func setup(flags *rootFlags) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, err
	}
	if flags.port != "" {
		cfg.Port = flags.port
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, log, nil
}
