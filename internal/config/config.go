package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/spf13/pflag"
)

const ConfigPathEnv = "EARNINGS_CONFIG_PATH"

const (
	thresholdEnv = "CURRENCY_UPDATE_THRESHOLD"
	// legacyThresholdEnv holds the threshold in whole minutes.
	legacyThresholdEnv = "CURRENCY_UPDATE_THRESHOLD_MINUTES"
)

type EarningsConfig struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	GRPCServer   `yaml:"grpc_server"`
	EarningsDB   `yaml:"earnings_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	PriceSource  `yaml:"price_source"`
	RatesCache   `yaml:"rates_cache"`
}

type HTTPServer struct {
	Host         string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"15s"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"9000"`
}

type EarningsDB struct {
	Dsn             string        `yaml:"dsn" env:"DATABASE_DSN" env-default:"host=localhost user=admin password=admin123 dbname=proxy_stats port=5432 sslmode=disable"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"25"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"text"`
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

// KafkaService is optional: with no brokers events are dropped.
type KafkaService struct {
	Brokers       []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	EarningsTopic string   `yaml:"earnings_topic" env-default:"earning-events"`
	CurrencyTopic string   `yaml:"currency_topic" env-default:"currency-events"`
}

type PriceSource struct {
	URL           string        `yaml:"url" env-default:"https://min-api.cryptocompare.com/data/pricemulti"`
	APIKey        string        `yaml:"api_key" env:"CRYPTOCOMPARE_API_KEY"`
	BaseSymbol    string        `yaml:"base_symbol" env-default:"BTC"`
	TargetSymbols []string      `yaml:"target_symbols" env-default:"BCH,DOGE,LTC,USDT,FEY,DGB,DASH,TRX,ZEC,ETH,BNB,SOL,XRP,MATIC,ADA,TON,XLM,XMR,USDC,TARA,TRUMP,PEPE"`
	Timeout       time.Duration `yaml:"timeout" env-default:"10s"`
}

type RatesCache struct {
	StalenessThreshold time.Duration `yaml:"staleness_threshold" env:"CURRENCY_UPDATE_THRESHOLD" env-default:"24h"`
	CheckInterval      time.Duration `yaml:"check_interval" env-default:"5m"`
}

func (c HTTPServer) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func (c GRPCServer) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Load reads the YAML file at path with environment overrides. An empty path
// builds the config from the environment and defaults only.
func Load(path string) (*EarningsConfig, error) {
	var cfg EarningsConfig

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from env: %w", err)
		}
		return cfg.finish()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return cfg.finish()
}

// LoadFromFlags resolves the path from the --config flag, falling back to
// EARNINGS_CONFIG_PATH.
func LoadFromFlags(flags *pflag.FlagSet) (*EarningsConfig, error) {
	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	return Load(path)
}

func (c *EarningsConfig) finish() (*EarningsConfig, error) {
	if err := c.applyLegacyEnv(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// applyLegacyEnv honors CURRENCY_UPDATE_THRESHOLD_MINUTES unless the duration
// variable is set.
func (c *EarningsConfig) applyLegacyEnv() error {
	minutes, ok := os.LookupEnv(legacyThresholdEnv)
	if !ok || os.Getenv(thresholdEnv) != "" {
		return nil
	}

	m, err := strconv.Atoi(strings.TrimSpace(minutes))
	if err != nil {
		return fmt.Errorf("%s must be an integer number of minutes: %w", legacyThresholdEnv, err)
	}
	c.RatesCache.StalenessThreshold = time.Duration(m) * time.Minute
	return nil
}

func (c *EarningsConfig) validate() error {
	if c.PriceSource.BaseSymbol == "" {
		return fmt.Errorf("price_source.base_symbol is required")
	}
	if len(c.PriceSource.TargetSymbols) == 0 {
		return fmt.Errorf("price_source.target_symbols must not be empty")
	}
	if c.PriceSource.Timeout <= 0 {
		return fmt.Errorf("price_source.timeout must be positive")
	}
	if c.RatesCache.StalenessThreshold <= 0 {
		return fmt.Errorf("rates_cache.staleness_threshold must be positive")
	}
	return nil
}
