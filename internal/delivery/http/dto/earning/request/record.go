package request

import "github.com/shopspring/decimal"

// RecordQuery is the GET /earnings/record form. Numeric and time fields stay
// strings so that malformed values surface as field errors.
type RecordQuery struct {
	ProxyIP        string  `form:"proxy_ip"`
	ProxyPort      string  `form:"proxy_port"`
	ServerID       string  `form:"server_id"`
	BotID          string  `form:"bot_id"`
	BotName        string  `form:"bot_name"`
	FaucetName     string  `form:"faucet_name"`
	FaucetURL      *string `form:"faucet_url"`
	RewardAmount   string  `form:"reward_amount"`
	RewardCurrency string  `form:"reward_currency"`
	EventTimestamp string  `form:"event_timestamp"`
	Success        *bool   `form:"success"`
	ErrorMessage   *string `form:"error_message"`
	ExtraData      *string `form:"extra_data"`
}

// RecordBody is the POST /earnings payload. reward_amount accepts a JSON
// number or a quoted decimal.
type RecordBody struct {
	ProxyIP        string          `json:"proxy_ip"`
	ProxyPort      int             `json:"proxy_port"`
	ServerID       string          `json:"server_id"`
	BotID          string          `json:"bot_id"`
	BotName        string          `json:"bot_name"`
	FaucetName     string          `json:"faucet_name"`
	FaucetURL      *string         `json:"faucet_url"`
	RewardAmount   decimal.Decimal `json:"reward_amount"`
	RewardCurrency string          `json:"reward_currency"`
	EventTimestamp *string         `json:"event_timestamp"`
	Success        *bool           `json:"success"`
	ErrorMessage   *string         `json:"error_message"`
	ExtraData      *string         `json:"extra_data"`
}

// BotSubmitQuery is the GET /bot/submit form used by bots that only know the
// proxy address and a session.
type BotSubmitQuery struct {
	ProxyAddress string  `form:"proxy_address"`
	BotName      string  `form:"bot_name"`
	Earnings     string  `form:"earnings"`
	SessionID    *string `form:"session_id"`
	ASN          *string `form:"asn"`
	ASNOrg       *string `form:"asn_org"`
}
