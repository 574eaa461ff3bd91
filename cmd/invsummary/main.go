// Command invsummary serves the inventory summary API and runs the same
// reports offline against local files.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"invsummary/internal/app"
	"invsummary/internal/config"
	"invsummary/internal/infrastructure"
	"invsummary/pkg/contracts"
)

var configFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "invsummary",
		Short:         "Inventory and RAP listing summaries",
		Version:       contracts.GetFullVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (defaults to INVSUM_CONFIG_FILE or ./config.yaml)")

	root.AddCommand(
		newServeCmd(),
		newInventoryCmd(),
		newRapCmd(),
		newDrillDownCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}

			application, err := app.NewApplication(cfg)
			if err != nil {
				return fmt.Errorf("failed to create application: %w", err)
			}
			return application.Run()
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "override the configured listen port")
	return cmd
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFrom(configFile)
	}
	return config.Load()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		infrastructure.GetLogger().Error("command failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
