package handlers

import (
	"net/http"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/delivery/http/dto/currency/response"
	"github.com/LavaJover/shvark-earnings-service/internal/usecase/currency"
	"github.com/gin-gonic/gin"
)

type CurrencyHandler struct {
	uc currency.CurrencyUsecase
}

func NewCurrencyHandler(uc currency.CurrencyUsecase) *CurrencyHandler {
	return &CurrencyHandler{uc: uc}
}

func (h *CurrencyHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/currencies", h.GetCurrencies)

	g := r.Group("/currency")
	g.GET("/rates", h.GetRates)
	g.POST("/fetch", h.Fetch)
	g.GET("/:symbol", h.GetRate)
}

// GetRates answers from the cache only; last_updated is the oldest entry.
func (h *CurrencyHandler) GetRates(c *gin.Context) {
	out, err := h.uc.GetRates(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := response.RatesResponse{
		Base:  out.Base,
		Rates: make(map[string]float64, len(out.Rates)),
	}
	for symbol, price := range out.Rates {
		resp.Rates[symbol] = price.InexactFloat64()
	}
	if out.OldestUpdate != nil {
		ts := out.OldestUpdate.UTC().Format(time.RFC3339Nano)
		resp.LastUpdated = &ts
	}

	c.JSON(http.StatusOK, resp)
}

// GetCurrencies is the plain symbol to price mapping kept for older clients.
func (h *CurrencyHandler) GetCurrencies(c *gin.Context) {
	out, err := h.uc.GetRates(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	rates := make(map[string]float64, len(out.Rates))
	for symbol, price := range out.Rates {
		rates[symbol] = price.InexactFloat64()
	}
	c.JSON(http.StatusOK, rates)
}

func (h *CurrencyHandler) GetRate(c *gin.Context) {
	rate, err := h.uc.GetRate(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.RateResponse{
		Symbol:      rate.Symbol,
		Price:       rate.Price,
		LastUpdated: rate.LastUpdated.UTC().Format(time.RFC3339Nano),
	})
}

// Fetch forces a refresh regardless of staleness.
func (h *CurrencyHandler) Fetch(c *gin.Context) {
	out, err := h.uc.Refresh(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FetchResponse{
		Message: "currency rates updated",
		Count:   out.Count,
		Symbols: out.Symbols,
		Dropped: out.Dropped,
	})
}
