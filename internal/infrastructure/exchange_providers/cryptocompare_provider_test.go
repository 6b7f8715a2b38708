package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/domain"
)

func TestGetPricesParsesPayload(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"fsyms":   r.URL.Query().Get("fsyms"),
			"tsyms":   r.URL.Query().Get("tsyms"),
			"api_key": r.URL.Query().Get("api_key"),
		}
		w.Write([]byte(`{"BTC":{"ETH":20.5,"LTC":null,"DOGE":0,"USDT":65000.12345678}}`))
	}))
	defer srv.Close()

	p := NewCryptoCompareProvider(srv.URL, "key", time.Second)
	prices, err := p.GetPrices(context.Background(), "BTC", []string{"ETH", "LTC", "DOGE", "USDT"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery["fsyms"] != "BTC" || gotQuery["tsyms"] != "ETH,LTC,DOGE,USDT" || gotQuery["api_key"] != "key" {
		t.Fatalf("unexpected query: %v", gotQuery)
	}
	if len(prices) != 4 {
		t.Fatalf("expected 4 prices, got %d", len(prices))
	}
	if !prices["ETH"].Valid || prices["ETH"].Decimal.String() != "20.5" {
		t.Fatalf("ETH mismatch: %+v", prices["ETH"])
	}
	if prices["LTC"].Valid {
		t.Fatalf("expected LTC to be null")
	}
	if !prices["DOGE"].Valid || !prices["DOGE"].Decimal.IsZero() {
		t.Fatalf("DOGE mismatch: %+v", prices["DOGE"])
	}
	if prices["USDT"].Decimal.String() != "65000.12345678" {
		t.Fatalf("USDT mismatch: %s", prices["USDT"].Decimal)
	}
}

func TestGetPricesUpstreamFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"api error": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"Response":"Error","Message":"rate limit","Data":{}}`))
		},
		"missing base": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ETH":{"BTC":0.05}}`))
		},
		"garbage": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		},
		"null base": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"BTC":null}`))
		},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			p := NewCryptoCompareProvider(srv.URL, "", time.Second)
			_, err := p.GetPrices(context.Background(), "BTC", []string{"ETH"})
			if !errors.Is(err, domain.ErrExternalSource) {
				t.Fatalf("expected external source error, got %v", err)
			}
		})
	}
}

func TestGetPricesTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"BTC":{"ETH":1}}`))
	}))
	defer srv.Close()

	p := NewCryptoCompareProvider(srv.URL, "", 20*time.Millisecond)
	if _, err := p.GetPrices(context.Background(), "BTC", []string{"ETH"}); !errors.Is(err, domain.ErrExternalSource) {
		t.Fatalf("expected external source error on timeout, got %v", err)
	}
}
