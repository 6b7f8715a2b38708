package currency

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	currencydto "github.com/LavaJover/shvark-earnings-service/internal/usecase/dto/currency"
	"github.com/shopspring/decimal"
)

// GetRates returns every cached price and the oldest update time. A cold
// cache is an empty map with a nil time, not an error.
func (uc *DefaultCurrencyUsecase) GetRates(ctx context.Context) (*currencydto.RatesOutput, error) {
	records, err := uc.Store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &currencydto.RatesOutput{
		Base:  uc.Config.BaseSymbol,
		Rates: make(map[string]decimal.Decimal, len(records)),
	}
	for _, r := range records {
		out.Rates[r.Symbol] = r.Price
		if out.OldestUpdate == nil || r.LastUpdated.Before(*out.OldestUpdate) {
			oldest := r.LastUpdated.UTC()
			out.OldestUpdate = &oldest
		}
	}

	var age time.Duration
	if out.OldestUpdate != nil {
		age = uc.Now().Sub(*out.OldestUpdate)
	}
	uc.Metrics.RecordCacheState(len(out.Rates), age)

	return out, nil
}

func (uc *DefaultCurrencyUsecase) GetRate(ctx context.Context, symbol string) (*domain.CurrencyRate, error) {
	return uc.Store.Get(ctx, symbol)
}
