package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB renders postgres SQL without connecting.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestUpsertRateSQL(t *testing.T) {
	db := dryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return upsertRate(tx, &models.CurrencyRateModel{
			Symbol:      "ETH",
			Price:       decimal.RequireFromString("20.5"),
			LastUpdated: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
		})
	})

	for _, want := range []string{
		`INSERT INTO "currency_rates"`,
		`ON CONFLICT ("symbol") DO UPDATE SET`,
		`"price"="excluded"."price"`,
		`"last_updated"="excluded"."last_updated"`,
	} {
		if !strings.Contains(sql, want) {
			t.Fatalf("expected %q in %s", want, sql)
		}
	}
}

func TestByIdempotencyKeySQL(t *testing.T) {
	db := dryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var m models.EarningModel
		return byIdempotencyKey(tx, "abc123").First(&m)
	})

	for _, want := range []string{
		`FROM "proxy_earnings"`,
		`WHERE idempotency_key = 'abc123'`,
	} {
		if !strings.Contains(sql, want) {
			t.Fatalf("expected %q in %s", want, sql)
		}
	}
}

func TestCurrencyRateUpsertRejectsPriceRoundingToZero(t *testing.T) {
	repo := NewDefaultCurrencyRateRepository(dryRunDB(t))

	err := repo.Upsert(context.Background(), "PEPE", decimal.RequireFromString("0.000000004"), time.Now())
	if !errors.Is(err, domain.ErrNonPositivePrice) {
		t.Fatalf("expected non-positive price error, got %v", err)
	}
}
