package handlers

import (
	"errors"
	"net/http"

	"github.com/LavaJover/shvark-earnings-service/internal/delivery/http/dto/earning/response"
	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	"github.com/gin-gonic/gin"
)

// statusFor maps a domain error class to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNonPositivePrice):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRateNotFound), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrExternalSource):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrStorage):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	resp := response.ErrorResponse{Error: err.Error()}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		resp.Error = "validation failed"
		resp.Details = vErr.Fields
	}
	if status >= http.StatusInternalServerError {
		c.Error(err)
	}

	c.JSON(status, resp)
}

func badRequest(c *gin.Context, vErr *domain.ValidationError) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "validation failed", Details: vErr.Fields})
}
