// internal/infrastructure/exchange_providers/cryptocompare_provider.go
package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	"github.com/shopspring/decimal"
)

const maxResponseBytes = 1 << 20

type CryptoCompareProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

type cryptoCompareError struct {
	Response string `json:"Response"`
	Message  string `json:"Message"`
}

func NewCryptoCompareProvider(baseURL, apiKey string, timeout time.Duration) *CryptoCompareProvider {
	return &CryptoCompareProvider{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (p *CryptoCompareProvider) GetName() string {
	return "cryptocompare"
}

func (p *CryptoCompareProvider) GetPrices(ctx context.Context, base string, targets []string) (map[string]decimal.NullDecimal, error) {
	params := url.Values{}
	params.Set("fsyms", base)
	params.Set("tsyms", strings.Join(targets, ","))
	if p.apiKey != "" {
		params.Set("api_key", p.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrExternalSource, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get prices from cryptocompare: %v", domain.ErrExternalSource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: cryptocompare API returned status: %d", domain.ErrExternalSource, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", domain.ErrExternalSource, err)
	}

	return parsePriceMulti(body, base)
}

// parsePriceMulti decodes {"BTC": {"ETH": 20.1, "LTC": null}}. CryptoCompare
// reports failures with HTTP 200 and {"Response": "Error"}.
func parsePriceMulti(body []byte, base string) (map[string]decimal.NullDecimal, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse cryptocompare response: %v", domain.ErrExternalSource, err)
	}

	if raw, ok := payload["Response"]; ok {
		var apiErr cryptoCompareError
		_ = json.Unmarshal(body, &apiErr)
		if apiErr.Response == "Error" || string(raw) == `"Error"` {
			return nil, fmt.Errorf("%w: cryptocompare error: %s", domain.ErrExternalSource, apiErr.Message)
		}
	}

	rawPrices, ok := payload[base]
	if !ok {
		return nil, fmt.Errorf("%w: base symbol %s missing from response", domain.ErrExternalSource, base)
	}

	var prices map[string]decimal.NullDecimal
	if err := json.Unmarshal(rawPrices, &prices); err != nil {
		return nil, fmt.Errorf("%w: malformed prices for %s: %v", domain.ErrExternalSource, base, err)
	}
	if prices == nil {
		return nil, fmt.Errorf("%w: empty prices for %s", domain.ErrExternalSource, base)
	}

	return prices, nil
}
