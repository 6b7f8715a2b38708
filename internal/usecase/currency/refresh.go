package currency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	publisher "github.com/LavaJover/shvark-earnings-service/internal/infrastructure/kafka"
	currencydto "github.com/LavaJover/shvark-earnings-service/internal/usecase/dto/currency"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Refresh pulls current prices and merges every valid quote into the store.
// An upstream failure writes nothing. Symbols missing from the response keep
// their cached value. The merge is not atomic across symbols: a storage
// failure stops the loop and leaves earlier upserts in place.
func (uc *DefaultCurrencyUsecase) Refresh(ctx context.Context) (*currencydto.RefreshOutput, error) {
	start := uc.Now()

	fetchCtx, cancel := context.WithTimeout(ctx, uc.Config.Timeout)
	prices, err := uc.Source.GetPrices(fetchCtx, uc.Config.BaseSymbol, uc.Config.TargetSymbols)
	cancel()
	if err != nil {
		uc.Metrics.RecordRefresh("upstream_error", 0, 0, uc.Now().Sub(start))
		slog.Error("rates refresh failed", "source", uc.Source.GetName(), "error", err)
		if !errors.Is(err, domain.ErrExternalSource) {
			err = fmt.Errorf("%w: %w", domain.ErrExternalSource, err)
		}
		return nil, err
	}

	accepted, dropped := uc.filterPrices(prices)

	out := &currencydto.RefreshOutput{
		Symbols: make([]string, 0, len(accepted)),
		Dropped: dropped,
	}
	for _, symbol := range sortedSymbols(accepted) {
		if err := uc.Store.Upsert(ctx, symbol, accepted[symbol]); err != nil {
			out.Count = len(out.Symbols)
			uc.Metrics.RecordRefresh("storage_error", out.Count, len(dropped), uc.Now().Sub(start))
			slog.Error("rates refresh interrupted", "symbol", symbol, "persisted", out.Count, "error", err)
			return out, err
		}
		out.Symbols = append(out.Symbols, symbol)
	}
	out.Count = len(out.Symbols)

	uc.Metrics.RecordRefresh("success", out.Count, len(dropped), uc.Now().Sub(start))
	slog.Info("rates refreshed",
		"source", uc.Source.GetName(),
		"base", uc.Config.BaseSymbol,
		"updated", out.Count,
		"dropped", dropped,
		"elapsed", uc.Now().Sub(start),
	)
	uc.publishRefreshed(ctx, out.Symbols)

	return out, nil
}

// RefreshIfStale refreshes only when the cache is cold or its oldest entry
// is older than the staleness threshold.
func (uc *DefaultCurrencyUsecase) RefreshIfStale(ctx context.Context) (*currencydto.RefreshOutput, error) {
	rates, err := uc.GetRates(ctx)
	if err != nil {
		return nil, err
	}

	if !IsStale(rates.OldestUpdate, uc.Now(), uc.Config.StalenessThreshold) {
		uc.Metrics.RecordRefresh("skipped", 0, 0, 0)
		slog.Debug("rates are fresh, refresh skipped", "oldest", rates.OldestUpdate)
		return &currencydto.RefreshOutput{Skipped: true, OldestUpdate: rates.OldestUpdate}, nil
	}

	return uc.Refresh(ctx)
}

func IsStale(oldest *time.Time, now time.Time, threshold time.Duration) bool {
	if oldest == nil {
		return true
	}
	return now.Sub(*oldest) > threshold
}

// filterPrices keeps requested symbols with a non-null price that stays
// positive at PriceScale places.
func (uc *DefaultCurrencyUsecase) filterPrices(prices map[string]decimal.NullDecimal) (map[string]decimal.Decimal, []string) {
	requested := make(map[string]struct{}, len(uc.Config.TargetSymbols))
	for _, s := range uc.Config.TargetSymbols {
		requested[s] = struct{}{}
	}

	accepted := make(map[string]decimal.Decimal, len(prices))
	var dropped []string
	for raw, price := range prices {
		symbol := normalizeSymbol(raw)
		if _, ok := requested[symbol]; !ok || !price.Valid {
			dropped = append(dropped, symbol)
			continue
		}
		rounded := price.Decimal.Round(domain.PriceScale)
		if !rounded.IsPositive() {
			dropped = append(dropped, symbol)
			continue
		}
		accepted[symbol] = rounded
	}
	sort.Strings(dropped)

	return accepted, dropped
}

func (uc *DefaultCurrencyUsecase) publishRefreshed(ctx context.Context, symbols []string) {
	if len(symbols) == 0 {
		return
	}

	msg, err := publisher.EncodeEvent(uc.Config.BaseSymbol, publisher.RatesRefreshedEvent{
		EventID:     uuid.New().String(),
		Type:        publisher.EventRatesRefreshed,
		Source:      uc.Source.GetName(),
		Base:        uc.Config.BaseSymbol,
		Symbols:     symbols,
		RefreshedAt: uc.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to encode rates event", "error", err)
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := uc.Publisher.Publish(pubCtx, uc.Config.Topic, msg); err != nil {
		slog.Error("failed to publish rates event", "error", err)
	}
}

func sortedSymbols(m map[string]decimal.Decimal) []string {
	symbols := make([]string, 0, len(m))
	for s := range m {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}
