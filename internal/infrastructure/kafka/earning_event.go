package publisher

import "time"

const (
	EventEarningRecorded = "earning.recorded"
	EventRatesRefreshed  = "currency.rates_refreshed"
)

type EarningEvent struct {
	EventID        string    `json:"event_id"`
	Type           string    `json:"type"`
	EarningID      uint      `json:"earning_id"`
	ProxyKey       string    `json:"proxy_key"`
	ServerID       string    `json:"server_id"`
	BotID          string    `json:"bot_id"`
	BotName        string    `json:"bot_name"`
	FaucetName     string    `json:"faucet_name"`
	RewardAmount   string    `json:"reward_amount"`
	RewardCurrency string    `json:"reward_currency"`
	Success        bool      `json:"success"`
	EventTimestamp time.Time `json:"event_timestamp"`
}

type RatesRefreshedEvent struct {
	EventID     string    `json:"event_id"`
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	Base        string    `json:"base"`
	Symbols     []string  `json:"symbols"`
	RefreshedAt time.Time `json:"refreshed_at"`
}
