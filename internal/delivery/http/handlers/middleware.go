package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	nanoid "github.com/jaevor/go-nanoid"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware keeps an incoming X-Request-ID or assigns a fresh one.
func RequestIDMiddleware() (gin.HandlerFunc, error) {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, fmt.Errorf("failed to init request id generator: %w", err)
	}

	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = idGenerator()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}, nil
}

func AccessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
			"request_id", c.GetString(requestIDHeader),
		}
		if len(c.Errors) > 0 {
			slog.Error("request failed", append(attrs, "error", c.Errors.String())...)
			return
		}
		slog.Info("request served", attrs...)
	}
}
