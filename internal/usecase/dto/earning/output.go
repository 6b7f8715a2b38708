package earningdto

import (
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	"github.com/shopspring/decimal"
)

type IngestOutput struct {
	Status         domain.IngestStatus
	EarningID      uint
	ProxyKey       string
	BotName        string
	RewardAmount   decimal.Decimal
	RewardCurrency string
	EventTimestamp time.Time
}
