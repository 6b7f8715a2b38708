package handlers

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/delivery/http/dto/earning/request"
	"github.com/LavaJover/shvark-earnings-service/internal/delivery/http/dto/earning/response"
	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	earningdto "github.com/LavaJover/shvark-earnings-service/internal/usecase/dto/earning"
	"github.com/LavaJover/shvark-earnings-service/internal/usecase/earning"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// naiveTimestampLayout is accepted for bots that send timestamps without an
// offset; such values are read as UTC.
const naiveTimestampLayout = "2006-01-02T15:04:05.999999999"

// Fixed attribution of /bot/submit reports.
const (
	botSubmitServerID   = "default"
	botSubmitFaucetName = "manual_submit"
	botSubmitCurrency   = "BTC"
)

type EarningHandler struct {
	uc earning.EarningUsecase
}

func NewEarningHandler(uc earning.EarningUsecase) *EarningHandler {
	return &EarningHandler{uc: uc}
}

func (h *EarningHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/earnings/record", h.RecordFromQuery)
	r.POST("/earnings", h.RecordFromBody)
	r.GET("/bot/submit", h.SubmitFromBot)
}

func (h *EarningHandler) RecordFromQuery(c *gin.Context) {
	var q request.RecordQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		vErr := domain.NewValidationError()
		vErr.Add("query", err.Error())
		badRequest(c, vErr)
		return
	}

	vErr := domain.NewValidationError()
	input := &earningdto.IngestInput{
		ProxyIP:        q.ProxyIP,
		ServerID:       q.ServerID,
		BotID:          q.BotID,
		BotName:        q.BotName,
		FaucetName:     q.FaucetName,
		FaucetURL:      q.FaucetURL,
		RewardCurrency: q.RewardCurrency,
		Success:        q.Success,
		ErrorMessage:   q.ErrorMessage,
		ExtraData:      q.ExtraData,
	}

	if port := strings.TrimSpace(q.ProxyPort); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			vErr.Add("proxy_port", "must be an integer")
		}
		input.ProxyPort = p
	}
	if amount := strings.TrimSpace(q.RewardAmount); amount != "" {
		d, err := decimal.NewFromString(amount)
		if err != nil {
			vErr.Add("reward_amount", "must be a decimal number")
		}
		input.RewardAmount = d
	}
	if q.EventTimestamp != "" {
		ts, err := parseTimestamp(q.EventTimestamp)
		if err != nil {
			vErr.Add("event_timestamp", "must be an RFC3339 timestamp")
		}
		input.EventTimestamp = ts
	}
	if !vErr.Empty() {
		badRequest(c, vErr)
		return
	}

	h.ingest(c, input)
}

func (h *EarningHandler) RecordFromBody(c *gin.Context) {
	var body request.RecordBody
	if err := c.ShouldBindJSON(&body); err != nil {
		vErr := domain.NewValidationError()
		vErr.Add("body", err.Error())
		badRequest(c, vErr)
		return
	}

	input := &earningdto.IngestInput{
		ProxyIP:        body.ProxyIP,
		ProxyPort:      body.ProxyPort,
		ServerID:       body.ServerID,
		BotID:          body.BotID,
		BotName:        body.BotName,
		FaucetName:     body.FaucetName,
		FaucetURL:      body.FaucetURL,
		RewardAmount:   body.RewardAmount,
		RewardCurrency: body.RewardCurrency,
		Success:        body.Success,
		ErrorMessage:   body.ErrorMessage,
		ExtraData:      body.ExtraData,
	}
	if body.EventTimestamp != nil && *body.EventTimestamp != "" {
		ts, err := parseTimestamp(*body.EventTimestamp)
		if err != nil {
			vErr := domain.NewValidationError()
			vErr.Add("event_timestamp", "must be an RFC3339 timestamp")
			badRequest(c, vErr)
			return
		}
		input.EventTimestamp = ts
	}

	h.ingest(c, input)
}

// SubmitFromBot records a report addressed by a single IP:PORT proxy address.
// Session and ASN details are kept as opaque extra data.
func (h *EarningHandler) SubmitFromBot(c *gin.Context) {
	var q request.BotSubmitQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		vErr := domain.NewValidationError()
		vErr.Add("query", err.Error())
		badRequest(c, vErr)
		return
	}

	vErr := domain.NewValidationError()
	botName := strings.TrimSpace(q.BotName)
	input := &earningdto.IngestInput{
		ServerID:       botSubmitServerID,
		BotID:          botName,
		BotName:        botName,
		FaucetName:     botSubmitFaucetName,
		RewardCurrency: botSubmitCurrency,
		ExtraData:      botExtraData(q),
	}

	host, port, err := net.SplitHostPort(strings.TrimSpace(q.ProxyAddress))
	if err != nil || host == "" {
		vErr.Add("proxy_address", "must be in IP:PORT form")
	} else if p, err := strconv.Atoi(port); err != nil {
		vErr.Add("proxy_address", "port must be an integer")
	} else {
		input.ProxyIP = host
		input.ProxyPort = p
	}

	if amount := strings.TrimSpace(q.Earnings); amount != "" {
		d, err := decimal.NewFromString(amount)
		if err != nil {
			vErr.Add("earnings", "must be a decimal number")
		}
		input.RewardAmount = d
	}
	if asn := q.ASN; asn != nil && *asn != "" {
		if _, err := strconv.Atoi(*asn); err != nil {
			vErr.Add("asn", "must be an integer")
		}
	}
	if !vErr.Empty() {
		badRequest(c, vErr)
		return
	}

	h.ingest(c, input)
}

func botExtraData(q request.BotSubmitQuery) *string {
	var parts []string
	for _, kv := range []struct {
		key   string
		value *string
	}{
		{"session_id", q.SessionID},
		{"asn", q.ASN},
		{"asn_org", q.ASNOrg},
	} {
		if kv.value != nil && strings.TrimSpace(*kv.value) != "" {
			parts = append(parts, kv.key+"="+strings.TrimSpace(*kv.value))
		}
	}
	if len(parts) == 0 {
		return nil
	}
	extra := strings.Join(parts, ", ")
	return &extra
}

func (h *EarningHandler) ingest(c *gin.Context, input *earningdto.IngestInput) {
	out, err := h.uc.Ingest(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	status, message := http.StatusCreated, "earning recorded"
	if out.Status == domain.IngestDuplicate {
		status, message = http.StatusOK, "earning already recorded"
	}

	c.JSON(status, response.RecordResponse{
		Status:    string(out.Status),
		Message:   message,
		EarningID: out.EarningID,
		ProxyKey:  out.ProxyKey,
		BotName:   out.BotName,
		Amount:    out.RewardAmount.String(),
		Currency:  out.RewardCurrency,
		Timestamp: out.EventTimestamp.UTC().Format(time.RFC3339Nano),
	})
}

func parseTimestamp(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		var naiveErr error
		t, naiveErr = time.ParseInLocation(naiveTimestampLayout, s, time.UTC)
		if naiveErr != nil {
			return nil, err
		}
	}
	return &t, nil
}
