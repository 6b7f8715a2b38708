package earning

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	earningdto "github.com/LavaJover/shvark-earnings-service/internal/usecase/dto/earning"
)

const (
	defaultCurrency = "USD"
	// numeric(20,8)
	maxAmountScale    = 8
	maxAmountIntegral = 12
)

// normalize trims identifiers, fills defaults and validates the input. The
// returned earning carries everything except the idempotency key.
func (uc *DefaultEarningUsecase) normalize(input *earningdto.IngestInput) (*domain.Earning, error) {
	verr := domain.NewValidationError()
	if input == nil {
		verr.Add("input", "is required")
		return nil, verr
	}

	proxyIP := strings.TrimSpace(input.ProxyIP)
	serverID := strings.TrimSpace(input.ServerID)
	botID := strings.TrimSpace(input.BotID)
	botName := strings.TrimSpace(input.BotName)
	faucetName := strings.TrimSpace(input.FaucetName)
	currency := strings.ToUpper(strings.TrimSpace(input.RewardCurrency))
	if currency == "" {
		currency = defaultCurrency
	}

	requireText(verr, "proxy_ip", proxyIP, 45)
	requireText(verr, "server_id", serverID, 50)
	requireText(verr, "bot_id", botID, 50)
	requireText(verr, "bot_name", botName, 100)
	requireText(verr, "faucet_name", faucetName, 100)
	requireText(verr, "reward_currency", currency, 10)

	if input.ProxyPort < 1 || input.ProxyPort > 65535 {
		verr.Add("proxy_port", "must be between 1 and 65535")
	}

	amount := input.RewardAmount
	switch {
	case !amount.IsPositive():
		verr.Add("reward_amount", "must be greater than 0")
	case !amount.Equal(amount.Truncate(maxAmountScale)):
		verr.Add("reward_amount", fmt.Sprintf("must have at most %d decimal places", maxAmountScale))
	case len(amount.Truncate(0).String()) > maxAmountIntegral:
		verr.Add("reward_amount", fmt.Sprintf("must have at most %d integer digits", maxAmountIntegral))
	}

	faucetURL := trimOptional(input.FaucetURL)
	if faucetURL != nil && utf8.RuneCountInString(*faucetURL) > 255 {
		verr.Add("faucet_url", "must be at most 255 characters")
	}

	if !verr.Empty() {
		return nil, verr
	}

	eventTime := uc.Now().UTC()
	if input.EventTimestamp != nil && !input.EventTimestamp.IsZero() {
		eventTime = input.EventTimestamp.UTC()
	}

	success := true
	if input.Success != nil {
		success = *input.Success
	}

	return &domain.Earning{
		ProxyIP:        proxyIP,
		ProxyPort:      input.ProxyPort,
		ProxyKey:       fmt.Sprintf("%s:%d", proxyIP, input.ProxyPort),
		ServerID:       serverID,
		BotID:          botID,
		BotName:        botName,
		FaucetName:     faucetName,
		FaucetURL:      faucetURL,
		RewardAmount:   amount,
		RewardCurrency: currency,
		Success:        success,
		ErrorMessage:   trimOptional(input.ErrorMessage),
		ExtraData:      input.ExtraData,
		EventTimestamp: eventTime,
	}, nil
}

func requireText(verr *domain.ValidationError, field, value string, maxLen int) {
	if value == "" {
		verr.Add(field, "is required")
		return
	}
	if utf8.RuneCountInString(value) > maxLen {
		verr.Add(field, fmt.Sprintf("must be at most %d characters", maxLen))
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
