package earning

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/metrics"
	earningdto "github.com/LavaJover/shvark-earnings-service/internal/usecase/dto/earning"
)

type EarningUsecase interface {
	Ingest(ctx context.Context, input *earningdto.IngestInput) (*earningdto.IngestOutput, error)
}

type DefaultEarningUsecase struct {
	EarningRepo domain.EarningRepository
	Publisher   domain.PublisherPort
	Metrics     *metrics.EarningMetrics
	Topic       string
	Now         func() time.Time
}

func NewDefaultEarningUsecase(
	earningRepo domain.EarningRepository,
	publisher domain.PublisherPort,
	earningMetrics *metrics.EarningMetrics,
	topic string,
) *DefaultEarningUsecase {
	return &DefaultEarningUsecase{
		EarningRepo: earningRepo,
		Publisher:   publisher,
		Metrics:     earningMetrics,
		Topic:       topic,
		Now:         time.Now,
	}
}
