package earning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	publisher "github.com/LavaJover/shvark-earnings-service/internal/infrastructure/kafka"
	earningdto "github.com/LavaJover/shvark-earnings-service/internal/usecase/dto/earning"
	"github.com/google/uuid"
)

const publishTimeout = 5 * time.Second

// Ingest records an earning at most once. A resubmission of the same
// identifying content, sequential or concurrent, yields IngestDuplicate with
// the id of the row that won.
func (uc *DefaultEarningUsecase) Ingest(ctx context.Context, input *earningdto.IngestInput) (*earningdto.IngestOutput, error) {
	start := uc.Now()

	earning, err := uc.normalize(input)
	if err != nil {
		uc.Metrics.RecordError("validation")
		return nil, err
	}
	earning.IdempotencyKey = DeriveIdempotencyKey(
		earning.ProxyKey,
		earning.EventTimestamp,
		earning.FaucetName,
		earning.RewardAmount,
	)

	existing, err := uc.EarningRepo.GetByIdempotencyKey(ctx, earning.IdempotencyKey)
	switch {
	case err == nil:
		return uc.duplicate(existing, start), nil
	case !errors.Is(err, domain.ErrNotFound):
		uc.Metrics.RecordError("storage")
		return nil, fmt.Errorf("%w: lookup earning: %w", domain.ErrStorage, err)
	}

	if err := uc.EarningRepo.Create(ctx, earning); err != nil {
		if !errors.Is(err, domain.ErrDuplicateKey) {
			uc.Metrics.RecordError("storage")
			slog.Error("failed to insert earning", "proxy_key", earning.ProxyKey, "bot", earning.BotName, "error", err)
			return nil, fmt.Errorf("%w: insert earning: %w", domain.ErrStorage, err)
		}

		// lost the race to a concurrent identical submission
		winner, lookupErr := uc.EarningRepo.GetByIdempotencyKey(ctx, earning.IdempotencyKey)
		if lookupErr != nil {
			uc.Metrics.RecordError("storage")
			return nil, fmt.Errorf("%w: lookup conflicting earning: %w", domain.ErrStorage, lookupErr)
		}
		return uc.duplicate(winner, start), nil
	}

	uc.publishRecorded(ctx, earning)

	amount, _ := earning.RewardAmount.Float64()
	uc.Metrics.RecordIngested(string(domain.IngestCreated), earning.RewardCurrency, amount, uc.Now().Sub(start))
	slog.Info("earning recorded",
		"earning_id", earning.ID,
		"proxy_key", earning.ProxyKey,
		"bot", earning.BotName,
		"amount", earning.RewardAmount.String(),
		"currency", earning.RewardCurrency,
	)

	return toOutput(domain.IngestCreated, earning), nil
}

func (uc *DefaultEarningUsecase) duplicate(existing *domain.Earning, start time.Time) *earningdto.IngestOutput {
	uc.Metrics.RecordIngested(string(domain.IngestDuplicate), existing.RewardCurrency, 0, uc.Now().Sub(start))
	slog.Info("duplicate earning ignored", "earning_id", existing.ID, "proxy_key", existing.ProxyKey)
	return toOutput(domain.IngestDuplicate, existing)
}

// publishRecorded is best effort: the row is already committed.
func (uc *DefaultEarningUsecase) publishRecorded(ctx context.Context, earning *domain.Earning) {
	event := publisher.EarningEvent{
		EventID:        uuid.New().String(),
		Type:           publisher.EventEarningRecorded,
		EarningID:      earning.ID,
		ProxyKey:       earning.ProxyKey,
		ServerID:       earning.ServerID,
		BotID:          earning.BotID,
		BotName:        earning.BotName,
		FaucetName:     earning.FaucetName,
		RewardAmount:   earning.RewardAmount.String(),
		RewardCurrency: earning.RewardCurrency,
		Success:        earning.Success,
		EventTimestamp: earning.EventTimestamp,
	}

	msg, err := publisher.EncodeEvent(earning.ProxyKey, event)
	if err != nil {
		slog.Error("failed to encode earning event", "earning_id", earning.ID, "error", err)
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := uc.Publisher.Publish(pubCtx, uc.Topic, msg); err != nil {
		slog.Error("failed to publish earning event", "earning_id", earning.ID, "error", err)
	}
}

func toOutput(status domain.IngestStatus, earning *domain.Earning) *earningdto.IngestOutput {
	return &earningdto.IngestOutput{
		Status:         status,
		EarningID:      earning.ID,
		ProxyKey:       earning.ProxyKey,
		BotName:        earning.BotName,
		RewardAmount:   earning.RewardAmount,
		RewardCurrency: earning.RewardCurrency,
		EventTimestamp: earning.EventTimestamp,
	}
}
