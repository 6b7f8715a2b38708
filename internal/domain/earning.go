package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Earning struct {
	ID             uint
	ProxyIP        string
	ProxyPort      int
	ProxyKey       string
	ServerID       string
	BotID          string
	BotName        string
	FaucetName     string
	FaucetURL      *string
	RewardAmount   decimal.Decimal
	RewardCurrency string
	IdempotencyKey string
	Success        bool
	ErrorMessage   *string
	ExtraData      *string
	EventTimestamp time.Time
	CreatedAt      time.Time
}

type IngestStatus string

const (
	IngestCreated   IngestStatus = "created"
	IngestDuplicate IngestStatus = "duplicate"
)
