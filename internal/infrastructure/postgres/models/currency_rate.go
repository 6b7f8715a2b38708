package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CurrencyRateModel struct {
	ID          uint            `gorm:"primaryKey"`
	Symbol      string          `gorm:"size:10;not null;uniqueIndex"`
	Price       decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	LastUpdated time.Time       `gorm:"type:timestamptz;not null"`
}

func (CurrencyRateModel) TableName() string { return "currency_rates" }
