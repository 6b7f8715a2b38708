package currency

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

type memoryRateRepo struct {
	mu      sync.Mutex
	rows    map[string]*domain.CurrencyRate
	upserts int
	// failOn makes the upsert of this symbol fail.
	failOn string
}

func newMemoryRateRepo() *memoryRateRepo {
	return &memoryRateRepo{rows: make(map[string]*domain.CurrencyRate)}
}

func (r *memoryRateRepo) Upsert(_ context.Context, symbol string, price decimal.Decimal, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.upserts++
	if symbol == r.failOn {
		return errors.New("deadlock detected")
	}
	if row, ok := r.rows[symbol]; ok {
		row.Price = price
		row.LastUpdated = updatedAt
		return nil
	}
	r.rows[symbol] = &domain.CurrencyRate{ID: uint(len(r.rows) + 1), Symbol: symbol, Price: price, LastUpdated: updatedAt}
	return nil
}

func (r *memoryRateRepo) ListAll(context.Context) ([]*domain.CurrencyRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.CurrencyRate, 0, len(r.rows))
	for _, row := range r.rows {
		cp := *row
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

func (r *memoryRateRepo) GetBySymbol(_ context.Context, symbol string) (*domain.CurrencyRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[symbol]
	if !ok {
		return nil, domain.ErrRateNotFound
	}
	cp := *row
	return &cp, nil
}

type stubSource struct {
	prices map[string]decimal.NullDecimal
	err    error
	// block waits for the context instead of answering.
	block bool
	calls int
}

func (s *stubSource) GetPrices(ctx context.Context, base string, targets []string) (map[string]decimal.NullDecimal, error) {
	s.calls++
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.prices, nil
}

func (s *stubSource) GetName() string { return "stub" }

type nopPublisher struct{ count int }

func (p *nopPublisher) Publish(context.Context, string, ...domain.Message) error {
	p.count++
	return nil
}

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestUsecase(repo *memoryRateRepo, source *stubSource, clock *testClock) (*DefaultCurrencyUsecase, *nopPublisher) {
	store := NewRateStore(repo)
	store.now = clock.now
	pub := &nopPublisher{}
	uc := NewDefaultCurrencyUsecase(store, source, pub, metrics.NewRateMetrics(prometheus.NewRegistry()), RefreshConfig{
		BaseSymbol:         "BTC",
		TargetSymbols:      []string{"ETH", "LTC", "DOGE", "USDT", "XMR", "TRX"},
		Timeout:            time.Second,
		StalenessThreshold: time.Hour,
		Topic:              "currency-events",
	})
	uc.Now = clock.now
	return uc, pub
}
