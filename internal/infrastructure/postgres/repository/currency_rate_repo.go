package repository

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultCurrencyRateRepository struct {
	DB *gorm.DB
}

func NewDefaultCurrencyRateRepository(db *gorm.DB) *DefaultCurrencyRateRepository {
	return &DefaultCurrencyRateRepository{DB: db}
}

func (r *DefaultCurrencyRateRepository) Upsert(ctx context.Context, symbol string, price decimal.Decimal, updatedAt time.Time) error {
	price = price.Round(domain.PriceScale)
	if !price.IsPositive() {
		return domain.ErrNonPositivePrice
	}

	rateModel := models.CurrencyRateModel{
		Symbol:      symbol,
		Price:       price,
		LastUpdated: updatedAt,
	}

	return upsertRate(r.DB.WithContext(ctx), &rateModel).Error
}

// upsertRate inserts the rate or overwrites price and last_updated of the
// existing row for the symbol.
func upsertRate(tx *gorm.DB, rateModel *models.CurrencyRateModel) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "last_updated"}),
	}).Create(rateModel)
}

func (r *DefaultCurrencyRateRepository) ListAll(ctx context.Context) ([]*domain.CurrencyRate, error) {
	var rateModels []models.CurrencyRateModel
	if err := r.DB.WithContext(ctx).Order("symbol").Find(&rateModels).Error; err != nil {
		return nil, err
	}

	return mappers.ToDomainCurrencyRates(rateModels), nil
}

func (r *DefaultCurrencyRateRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.CurrencyRate, error) {
	var rateModel models.CurrencyRateModel
	if err := r.DB.WithContext(ctx).First(&rateModel, "symbol = ?", symbol).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRateNotFound
		}
		return nil, err
	}

	return mappers.ToDomainCurrencyRate(&rateModel), nil
}
