package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/identi-digital/identi-modules/internal/app"
	"github.com/identi-digital/identi-modules/internal/config"
)

const defaultConfigPath = "configs/config.yaml"

// newRootCmd builds the identi command tree. Running it without a
// subcommand serves the API.
func newRootCmd() *cobra.Command {
	var cfgFile string

	load := func() (*config.Config, error) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the back-office HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return fmt.Errorf("create app: %w", err)
			}
			return a.Run()
		},
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables of every module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := app.Migrate(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration completed")
			return nil
		},
	}

	root := &cobra.Command{
		Use:           "identi",
		Short:         "Identi agribusiness back office",
		Long:          "Identi serves the farmer, location, agent, monitoring, warehouse and audit APIs.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigPath, "path to configuration file")
	root.AddCommand(serve, migrate)

	return root
}
