package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EarningModel struct {
	ID             uint            `gorm:"primaryKey"`
	ProxyIP        string          `gorm:"size:45;not null;index"`
	ProxyPort      int             `gorm:"not null"`
	ProxyKey       string          `gorm:"size:100;not null;index"`
	ServerID       string          `gorm:"size:50;not null;index"`
	BotID          string          `gorm:"size:50;not null"`
	BotName        string          `gorm:"size:100;not null;index"`
	FaucetName     string          `gorm:"size:100;not null"`
	FaucetURL      *string         `gorm:"size:255"`
	RewardAmount   decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	RewardCurrency string          `gorm:"size:10;not null"`
	IdempotencyKey string          `gorm:"size:64;not null;uniqueIndex:idx_proxy_earnings_unique_key"`
	Success        bool            `gorm:"not null;default:true"`
	ErrorMessage   *string         `gorm:"type:text"`
	EventTimestamp time.Time       `gorm:"not null;index"`
	CreatedAt      time.Time       `gorm:"not null"`
	ExtraData      *string         `gorm:"type:text"`
}

func (EarningModel) TableName() string { return "proxy_earnings" }
