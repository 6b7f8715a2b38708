package response

type RecordResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	EarningID uint   `json:"earning_id"`
	ProxyKey  string `json:"proxy_key"`
	BotName   string `json:"bot_name"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Timestamp string `json:"timestamp"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}
