package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const ServiceName = "proxy-earnings-service"

// Pinger reports whether the backing database is reachable.
type Pinger func(ctx context.Context) error

type RouterConfig struct {
	Earnings *EarningHandler
	Currency *CurrencyHandler
	Ping     Pinger
	Gatherer prometheus.Gatherer
	Version  string
}

func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	requestID, err := RequestIDMiddleware()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID)
	r.Use(AccessLogMiddleware())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders:   []string{requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": ServiceName,
			"version": cfg.Version,
			"status":  "running",
		})
	})
	r.GET("/health", healthHandler(cfg.Ping))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))

	cfg.Earnings.RegisterRoutes(r)
	cfg.Currency.RegisterRoutes(r)

	return r, nil
}

func healthHandler(ping Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now().UTC().Format(time.RFC3339)

		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":    "unhealthy",
					"database":  err.Error(),
					"timestamp": now,
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": now})
	}
}
