package currency

import (
	"context"
	"strings"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/config"
	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/metrics"
	currencydto "github.com/LavaJover/shvark-earnings-service/internal/usecase/dto/currency"
)

type CurrencyUsecase interface {
	GetRates(ctx context.Context) (*currencydto.RatesOutput, error)
	GetRate(ctx context.Context, symbol string) (*domain.CurrencyRate, error)
	Refresh(ctx context.Context) (*currencydto.RefreshOutput, error)
	RefreshIfStale(ctx context.Context) (*currencydto.RefreshOutput, error)
}

// RefreshConfig is the explicit configuration of the refresher and of the
// staleness gate.
type RefreshConfig struct {
	BaseSymbol         string
	TargetSymbols      []string
	Timeout            time.Duration
	StalenessThreshold time.Duration
	Topic              string
}

func NewRefreshConfig(cfg *config.EarningsConfig) RefreshConfig {
	targets := make([]string, 0, len(cfg.PriceSource.TargetSymbols))
	for _, s := range cfg.PriceSource.TargetSymbols {
		if s = normalizeSymbol(s); s != "" {
			targets = append(targets, s)
		}
	}
	return RefreshConfig{
		BaseSymbol:         strings.ToUpper(cfg.PriceSource.BaseSymbol),
		TargetSymbols:      targets,
		Timeout:            cfg.PriceSource.Timeout,
		StalenessThreshold: cfg.RatesCache.StalenessThreshold,
		Topic:              cfg.KafkaService.CurrencyTopic,
	}
}

type DefaultCurrencyUsecase struct {
	Store     *RateStore
	Source    domain.PriceSource
	Publisher domain.PublisherPort
	Metrics   *metrics.RateMetrics
	Config    RefreshConfig
	Now       func() time.Time
}

func NewDefaultCurrencyUsecase(
	store *RateStore,
	source domain.PriceSource,
	publisher domain.PublisherPort,
	rateMetrics *metrics.RateMetrics,
	cfg RefreshConfig,
) *DefaultCurrencyUsecase {
	return &DefaultCurrencyUsecase{
		Store:     store,
		Source:    source,
		Publisher: publisher,
		Metrics:   rateMetrics,
		Config:    cfg,
		Now:       time.Now,
	}
}
