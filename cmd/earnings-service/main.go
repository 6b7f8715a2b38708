package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/LavaJover/shvark-earnings-service/internal/app/setup"
	"github.com/LavaJover/shvark-earnings-service/internal/config"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	root := &cobra.Command{
		Use:          "earnings-service",
		Short:        "Proxy earnings ledger and currency rate cache",
		SilenceUsage: true,
		Version:      version,
	}
	root.PersistentFlags().String("config", "", "config file path (default $"+config.ConfigPathEnv+")")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and gRPC servers with the rate scheduler",
		RunE:  runServe,
	})

	refreshCmd := &cobra.Command{
		Use:   "refresh-rates",
		Short: "Fetch current prices into the rate cache",
		RunE:  runRefreshRates,
	}
	refreshCmd.Flags().Bool("if-stale", false, "refresh only when the cache is cold or stale")
	root.AddCommand(refreshCmd)

	root.AddCommand(&cobra.Command{
		Use:   "rates",
		Short: "Print cached rates as JSON",
		RunE:  runRates,
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads config, installs the default logger and opens dependencies.
func bootstrap(cmd *cobra.Command) (*setup.Dependencies, *setup.UseCases, error) {
	cfg, err := config.LoadFromFlags(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	l, err := logger.New(cfg.LogConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	slog.SetDefault(l)

	deps, err := setup.InitializeDependencies(cfg)
	if err != nil {
		return nil, nil, err
	}

	return deps, setup.InitializeUseCases(deps), nil
}
