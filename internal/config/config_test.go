package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `env: prod
http_server:
  host: 127.0.0.1
  port: "8080"
earnings_db:
  dsn: "host=db user=u password=p dbname=e port=5432 sslmode=disable"
price_source:
  base_symbol: BTC
  target_symbols: [ETH, LTC]
  timeout: 3s
rates_cache:
  staleness_threshold: 30m
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Env != "prod" {
		t.Fatalf("env mismatch: %q", cfg.Env)
	}
	if cfg.HTTPServer.Addr() != "127.0.0.1:8080" {
		t.Fatalf("http addr mismatch: %q", cfg.HTTPServer.Addr())
	}
	if !reflect.DeepEqual(cfg.PriceSource.TargetSymbols, []string{"ETH", "LTC"}) {
		t.Fatalf("targets mismatch: %v", cfg.PriceSource.TargetSymbols)
	}
	if cfg.PriceSource.Timeout != 3*time.Second {
		t.Fatalf("timeout mismatch: %v", cfg.PriceSource.Timeout)
	}
	if cfg.RatesCache.StalenessThreshold != 30*time.Minute {
		t.Fatalf("threshold mismatch: %v", cfg.RatesCache.StalenessThreshold)
	}
	if cfg.RatesCache.CheckInterval != 5*time.Minute {
		t.Fatalf("check interval default mismatch: %v", cfg.RatesCache.CheckInterval)
	}
	if cfg.PriceSource.URL != "https://min-api.cryptocompare.com/data/pricemulti" {
		t.Fatalf("url default mismatch: %q", cfg.PriceSource.URL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadRejectsNegativeThreshold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `rates_cache:
  staleness_threshold: -1m
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for negative staleness threshold")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CRYPTOCOMPARE_API_KEY", "secret")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PriceSource.APIKey != "secret" {
		t.Fatalf("api key not taken from env: %q", cfg.PriceSource.APIKey)
	}
	if !reflect.DeepEqual(cfg.KafkaService.Brokers, []string{"k1:9092", "k2:9092"}) {
		t.Fatalf("brokers mismatch: %v", cfg.KafkaService.Brokers)
	}
	if len(cfg.PriceSource.TargetSymbols) != 22 {
		t.Fatalf("expected 22 default targets, got %d", len(cfg.PriceSource.TargetSymbols))
	}
}

func TestLoadFromFlagsFallsBackToEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("env: staging\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnv, path)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")

	cfg, err := LoadFromFlags(flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Env != "staging" {
		t.Fatalf("env file not used: %q", cfg.Env)
	}

	if err := flags.Set("config", filepath.Join(t.TempDir(), "other.yaml")); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if _, err := LoadFromFlags(flags); err == nil {
		t.Fatalf("flag must take precedence over env")
	}
}

func TestLoadHonorsLegacyThresholdMinutes(t *testing.T) {
	t.Setenv("CURRENCY_UPDATE_THRESHOLD_MINUTES", "90")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RatesCache.StalenessThreshold != 90*time.Minute {
		t.Fatalf("legacy minutes not applied: %v", cfg.RatesCache.StalenessThreshold)
	}

	t.Setenv("CURRENCY_UPDATE_THRESHOLD", "2h")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RatesCache.StalenessThreshold != 2*time.Hour {
		t.Fatalf("duration variable must win over legacy minutes: %v", cfg.RatesCache.StalenessThreshold)
	}
}

func TestLoadRejectsMalformedLegacyThreshold(t *testing.T) {
	for _, v := range []string{"1h", "0"} {
		t.Setenv("CURRENCY_UPDATE_THRESHOLD_MINUTES", v)
		if _, err := Load(""); err == nil {
			t.Fatalf("expected error for CURRENCY_UPDATE_THRESHOLD_MINUTES=%q", v)
		}
	}
}
