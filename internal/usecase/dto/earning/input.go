package earningdto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IngestInput is one earning report as submitted by a bot. Optional fields
// are nil when the caller omitted them.
type IngestInput struct {
	ProxyIP        string
	ProxyPort      int
	ServerID       string
	BotID          string
	BotName        string
	FaucetName     string
	FaucetURL      *string
	RewardAmount   decimal.Decimal
	RewardCurrency string
	EventTimestamp *time.Time
	Success        *bool
	ErrorMessage   *string
	ExtraData      *string
}
