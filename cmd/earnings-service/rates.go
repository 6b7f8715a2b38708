package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func runRefreshRates(cmd *cobra.Command, _ []string) error {
	deps, uc, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer deps.Close()

	ifStale, _ := cmd.Flags().GetBool("if-stale")

	refresh := uc.CurrencyUsecase.Refresh
	if ifStale {
		refresh = uc.CurrencyUsecase.RefreshIfStale
	}
	out, err := refresh(cmd.Context())
	if err != nil {
		return err
	}

	if out.Skipped {
		slog.Info("rates are fresh, nothing to do", "oldest", out.OldestUpdate)
		return nil
	}
	slog.Info("rates refreshed", "count", out.Count, "symbols", out.Symbols, "dropped", out.Dropped)
	return nil
}

func runRates(cmd *cobra.Command, _ []string) error {
	deps, uc, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer deps.Close()

	out, err := uc.CurrencyUsecase.GetRates(cmd.Context())
	if err != nil {
		return err
	}

	var lastUpdated *string
	if out.OldestUpdate != nil {
		ts := out.OldestUpdate.UTC().Format(time.RFC3339)
		lastUpdated = &ts
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"base":         out.Base,
		"rates":        out.Rates,
		"last_updated": lastUpdated,
	})
}
