package currencydto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatesOutput prices every symbol in units of the target per one unit of Base.
// OldestUpdate is nil while the cache is cold.
type RatesOutput struct {
	Base         string
	Rates        map[string]decimal.Decimal
	OldestUpdate *time.Time
}

type RefreshOutput struct {
	Count   int
	Symbols []string
	Dropped []string
	Skipped bool
	// OldestUpdate is set on skipped refreshes.
	OldestUpdate *time.Time
}
