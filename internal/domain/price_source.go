package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceSource quotes every target symbol against one base symbol.
// A target the upstream could not price comes back as an invalid NullDecimal.
type PriceSource interface {
	GetPrices(ctx context.Context, base string, targets []string) (map[string]decimal.NullDecimal, error)
	GetName() string
}
