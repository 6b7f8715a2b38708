package domain

import "context"

// EarningRepository is the append-only ledger of earnings.
// Create returns ErrDuplicateKey when the idempotency key is already taken and
// leaves no partial write behind on any failure.
type EarningRepository interface {
	Create(ctx context.Context, earning *Earning) error
	GetByIdempotencyKey(ctx context.Context, key string) (*Earning, error)
}
