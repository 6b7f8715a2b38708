package setup

import (
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-earnings-service/internal/usecase/currency"
	"github.com/LavaJover/shvark-earnings-service/internal/usecase/earning"
)

type UseCases struct {
	EarningUsecase  earning.EarningUsecase
	CurrencyUsecase currency.CurrencyUsecase
}

func InitializeUseCases(deps *Dependencies) *UseCases {
	earningUsecase := earning.NewDefaultEarningUsecase(
		deps.Repositories.EarningRepo,
		deps.Publisher,
		metrics.NewEarningMetrics(deps.Registry, metricCurrencies(deps)...),
		deps.Config.KafkaService.EarningsTopic,
	)

	currencyUsecase := currency.NewDefaultCurrencyUsecase(
		currency.NewRateStore(deps.Repositories.CurrencyRateRepo),
		deps.PriceSource,
		deps.Publisher,
		metrics.NewRateMetrics(deps.Registry),
		currency.NewRefreshConfig(deps.Config),
	)

	return &UseCases{
		EarningUsecase:  earningUsecase,
		CurrencyUsecase: currencyUsecase,
	}
}

// metricCurrencies is the label set for per-currency earning metrics.
func metricCurrencies(deps *Dependencies) []string {
	src := deps.Config.PriceSource
	return append([]string{src.BaseSymbol, "USD"}, src.TargetSymbols...)
}
