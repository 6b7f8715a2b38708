package mappers

import (
	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/postgres/models"
)

func ToDomainCurrencyRate(model *models.CurrencyRateModel) *domain.CurrencyRate {
	return &domain.CurrencyRate{
		ID:          model.ID,
		Symbol:      model.Symbol,
		Price:       model.Price,
		LastUpdated: model.LastUpdated.UTC(),
	}
}

func ToDomainCurrencyRates(rateModels []models.CurrencyRateModel) []*domain.CurrencyRate {
	rates := make([]*domain.CurrencyRate, 0, len(rateModels))
	for i := range rateModels {
		rates = append(rates, ToDomainCurrencyRate(&rateModels[i]))
	}
	return rates
}
