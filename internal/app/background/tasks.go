package background

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/usecase/currency"
	"github.com/go-co-op/gocron/v2"
)

const ratesJobName = "currency-rates-refresh"

type BackgroundTasks struct {
	CurrencyUsecase currency.CurrencyUsecase
	CheckInterval   time.Duration
	scheduler       gocron.Scheduler
}

func NewBackgroundTasks(currencyUC currency.CurrencyUsecase, checkInterval time.Duration) (*BackgroundTasks, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &BackgroundTasks{
		CurrencyUsecase: currencyUC,
		CheckInterval:   checkInterval,
		scheduler:       s,
	}, nil
}

// StartAll registers the jobs and starts the scheduler. Jobs stop once ctx
// is done or Stop is called.
func (bt *BackgroundTasks) StartAll(ctx context.Context) error {
	_, err := bt.scheduler.NewJob(
		gocron.DurationJob(bt.CheckInterval),
		gocron.NewTask(bt.refreshStaleRates, ctx),
		gocron.WithName(ratesJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("register %s: %w", ratesJobName, err)
	}

	bt.scheduler.Start()
	slog.Info("background tasks started", "rates_check_interval", bt.CheckInterval)
	return nil
}

func (bt *BackgroundTasks) Stop() {
	if err := bt.scheduler.Shutdown(); err != nil {
		slog.Error("failed to shutdown scheduler", "error", err)
	}
}

func (bt *BackgroundTasks) refreshStaleRates(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	out, err := bt.CurrencyUsecase.RefreshIfStale(ctx)
	if err != nil {
		slog.Error("scheduled rates refresh failed", "error", err)
		return
	}
	if !out.Skipped {
		slog.Info("scheduled rates refresh done", "updated", out.Count)
	}
}
