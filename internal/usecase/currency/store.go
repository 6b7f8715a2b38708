package currency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	"github.com/shopspring/decimal"
)

// RateStore keeps one positive price per symbol. Upsert overwrites
// unconditionally and stamps the row with the store clock.
type RateStore struct {
	repo domain.CurrencyRateRepository
	now  func() time.Time
}

func NewRateStore(repo domain.CurrencyRateRepository) *RateStore {
	return &RateStore{repo: repo, now: time.Now}
}

func (s *RateStore) Upsert(ctx context.Context, symbol string, price decimal.Decimal) error {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return fmt.Errorf("%w: empty symbol", domain.ErrValidation)
	}
	// the column keeps PriceScale places; a quote that rounds to zero is not positive
	price = price.Round(domain.PriceScale)
	if !price.IsPositive() {
		return fmt.Errorf("%w: %s=%s", domain.ErrNonPositivePrice, symbol, price)
	}

	if err := s.repo.Upsert(ctx, symbol, price, s.now().UTC()); err != nil {
		return fmt.Errorf("%w: upsert rate %s: %w", domain.ErrStorage, symbol, err)
	}
	return nil
}

func (s *RateStore) ReadAll(ctx context.Context) ([]*domain.CurrencyRate, error) {
	rates, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read rates: %w", domain.ErrStorage, err)
	}
	return rates, nil
}

func (s *RateStore) Get(ctx context.Context, symbol string) (*domain.CurrencyRate, error) {
	rate, err := s.repo.GetBySymbol(ctx, normalizeSymbol(symbol))
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: read rate %s: %w", domain.ErrStorage, symbol, err)
	}
	return rate, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
