package response

import "github.com/shopspring/decimal"

// RatesResponse keeps prices as JSON numbers for existing bot clients.
type RatesResponse struct {
	Base        string             `json:"base"`
	Rates       map[string]float64 `json:"rates"`
	LastUpdated *string            `json:"last_updated"`
}

type RateResponse struct {
	Symbol      string          `json:"symbol"`
	Price       decimal.Decimal `json:"price"`
	LastUpdated string          `json:"last_updated"`
}

type FetchResponse struct {
	Message string   `json:"message"`
	Count   int      `json:"count"`
	Symbols []string `json:"symbols"`
	Dropped []string `json:"dropped,omitempty"`
}
