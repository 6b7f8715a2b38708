package setup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-earnings-service/internal/config"
	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	infrastructure "github.com/LavaJover/shvark-earnings-service/internal/infrastructure/exchange_providers"
	publisher "github.com/LavaJover/shvark-earnings-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/postgres/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// EventPublisher is a PublisherPort that owns a connection.
type EventPublisher interface {
	domain.PublisherPort
	Close() error
}

type Dependencies struct {
	Config       *config.EarningsConfig
	DB           *gorm.DB
	Publisher    EventPublisher
	PriceSource  domain.PriceSource
	Registry     *prometheus.Registry
	Repositories *Repositories
}

type Repositories struct {
	EarningRepo      domain.EarningRepository
	CurrencyRateRepo domain.CurrencyRateRepository
}

func InitializeDependencies(cfg *config.EarningsConfig) (*Dependencies, error) {
	db, err := postgres.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Dependencies{
		Config:      cfg,
		DB:          db,
		Publisher:   initPublisher(cfg),
		PriceSource: infrastructure.NewCryptoCompareProvider(cfg.PriceSource.URL, cfg.PriceSource.APIKey, cfg.PriceSource.Timeout),
		Registry:    registry,
		Repositories: &Repositories{
			EarningRepo:      repository.NewDefaultEarningRepository(db),
			CurrencyRateRepo: repository.NewDefaultCurrencyRateRepository(db),
		},
	}, nil
}

func (d *Dependencies) Ping(ctx context.Context) error {
	return postgres.Ping(ctx, d.DB)
}

func (d *Dependencies) Close() {
	if err := d.Publisher.Close(); err != nil {
		slog.Error("failed to close publisher", "error", err)
	}
	if err := postgres.Close(d.DB); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}

func initPublisher(cfg *config.EarningsConfig) EventPublisher {
	if len(cfg.KafkaService.Brokers) == 0 {
		slog.Info("kafka brokers not configured, events are not published")
		return publisher.NopPublisher{}
	}
	return publisher.NewDefaultKafkaPublisher(cfg.KafkaService.Brokers)
}
