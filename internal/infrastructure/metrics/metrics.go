package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EarningMetrics covers the ingestion path.
type EarningMetrics struct {
	EarningsIngestedTotal *prometheus.CounterVec
	RewardAmountTotal     *prometheus.CounterVec
	IngestErrorsTotal     *prometheus.CounterVec
	IngestDuration        *prometheus.HistogramVec

	currencies map[string]struct{}
}

// otherCurrency labels submissions in a currency outside the configured set.
const otherCurrency = "other"

// RateMetrics covers the currency-rate cache.
type RateMetrics struct {
	RefreshTotal       *prometheus.CounterVec
	SymbolsUpdated     prometheus.Counter
	SymbolsDropped     prometheus.Counter
	RefreshDuration    prometheus.Histogram
	OldestRateAge      prometheus.Gauge
	CachedSymbolsGauge prometheus.Gauge
}

// NewEarningMetrics registers the ingestion metrics. Currency labels are
// limited to currencies; any other value is reported as "other".
func NewEarningMetrics(reg prometheus.Registerer, currencies ...string) *EarningMetrics {
	known := make(map[string]struct{}, len(currencies))
	for _, c := range currencies {
		known[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
	}

	f := promauto.With(reg)
	return &EarningMetrics{
		currencies: known,

		EarningsIngestedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnings_ingested_total",
				Help: "Earning submissions by outcome (created/duplicate)",
			},
			[]string{"status", "currency"},
		),

		RewardAmountTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnings_reward_amount_total",
				Help: "Sum of recorded reward amounts",
			},
			[]string{"currency"},
		),

		IngestErrorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earnings_ingest_errors_total",
				Help: "Rejected or failed earning submissions",
			},
			[]string{"error_type"},
		),

		IngestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "earnings_ingest_duration_seconds",
				Help:    "Time spent ingesting one earning",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. 2s
			},
			[]string{"status"},
		),
	}
}

func NewRateMetrics(reg prometheus.Registerer) *RateMetrics {
	f := promauto.With(reg)
	return &RateMetrics{
		RefreshTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currency_rates_refresh_total",
				Help: "Rate refresh attempts by result (success/upstream_error/storage_error/skipped)",
			},
			[]string{"result"},
		),

		SymbolsUpdated: f.NewCounter(prometheus.CounterOpts{
			Name: "currency_rates_symbols_updated_total",
			Help: "Symbols written by successful refreshes",
		}),

		SymbolsDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "currency_rates_symbols_dropped_total",
			Help: "Upstream quotes discarded as null or non-positive",
		}),

		RefreshDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "currency_rates_refresh_duration_seconds",
			Help:    "Duration of a rate refresh including the upstream call",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),

		OldestRateAge: f.NewGauge(prometheus.GaugeOpts{
			Name: "currency_rates_oldest_age_seconds",
			Help: "Age of the stalest cached rate at the last read",
		}),

		CachedSymbolsGauge: f.NewGauge(prometheus.GaugeOpts{
			Name: "currency_rates_cached_symbols",
			Help: "Number of symbols in the rate cache at the last read",
		}),
	}
}

func (m *EarningMetrics) currencyLabel(currency string) string {
	c := strings.ToUpper(strings.TrimSpace(currency))
	if _, ok := m.currencies[c]; ok {
		return c
	}
	return otherCurrency
}

func (m *EarningMetrics) RecordIngested(status, currency string, amount float64, elapsed time.Duration) {
	currency = m.currencyLabel(currency)
	m.EarningsIngestedTotal.WithLabelValues(status, currency).Inc()
	m.IngestDuration.WithLabelValues(status).Observe(elapsed.Seconds())
	if status == "created" {
		m.RewardAmountTotal.WithLabelValues(currency).Add(amount)
	}
}

func (m *EarningMetrics) RecordError(errorType string) {
	m.IngestErrorsTotal.WithLabelValues(errorType).Inc()
}

func (m *RateMetrics) RecordRefresh(result string, updated, dropped int, elapsed time.Duration) {
	m.RefreshTotal.WithLabelValues(result).Inc()
	m.SymbolsUpdated.Add(float64(updated))
	m.SymbolsDropped.Add(float64(dropped))
	if result != "skipped" {
		m.RefreshDuration.Observe(elapsed.Seconds())
	}
}

func (m *RateMetrics) RecordCacheState(symbols int, oldestAge time.Duration) {
	m.CachedSymbolsGauge.Set(float64(symbols))
	m.OldestRateAge.Set(oldestAge.Seconds())
}
