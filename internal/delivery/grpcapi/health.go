package grpcapi

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// EarningsServiceName is the service name reported next to the overall ("") status.
const EarningsServiceName = "earnings.EarningsService"

// HealthHandler serves grpc.health.v1 with the reachability of the database.
type HealthHandler struct {
	srv      *health.Server
	ping     func(ctx context.Context) error
	interval time.Duration
}

func NewHealthHandler(ping func(ctx context.Context) error, interval time.Duration) *HealthHandler {
	return &HealthHandler{
		srv:      health.NewServer(),
		ping:     ping,
		interval: interval,
	}
}

func (h *HealthHandler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.srv)
}

// Run probes the database until ctx is done, then reports NOT_SERVING.
func (h *HealthHandler) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			h.srv.Shutdown()
			return
		case <-ticker.C:
			h.probe(ctx)
		}
	}
}

func (h *HealthHandler) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.ping(pingCtx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		slog.Warn("database unreachable", "error", err)
	}
	h.srv.SetServingStatus("", status)
	h.srv.SetServingStatus(EarningsServiceName, status)
}
