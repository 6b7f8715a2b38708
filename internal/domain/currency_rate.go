package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimal places a stored price keeps.
const PriceScale = 8

type CurrencyRate struct {
	ID          uint
	Symbol      string
	Price       decimal.Decimal
	LastUpdated time.Time
}

type CurrencyRateRepository interface {
	Upsert(ctx context.Context, symbol string, price decimal.Decimal, updatedAt time.Time) error
	ListAll(ctx context.Context) ([]*CurrencyRate, error)
	GetBySymbol(ctx context.Context, symbol string) (*CurrencyRate, error)
}
