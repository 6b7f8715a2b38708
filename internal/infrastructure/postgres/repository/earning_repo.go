package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-earnings-service/internal/domain"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/postgres/models"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueViolationCode   = "23505"
	idempotencyConstraint = "idx_proxy_earnings_unique_key"
)

type DefaultEarningRepository struct {
	DB *gorm.DB
}

func NewDefaultEarningRepository(db *gorm.DB) *DefaultEarningRepository {
	return &DefaultEarningRepository{DB: db}
}

func (r *DefaultEarningRepository) Create(ctx context.Context, earning *domain.Earning) error {
	earningModel := mappers.ToGORMEarning(earning)

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(earningModel).Error
	})
	if err != nil {
		if isIdempotencyConflict(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("insert earning: %w", err)
	}

	earning.ID = earningModel.ID
	earning.CreatedAt = earningModel.CreatedAt
	return nil
}

func (r *DefaultEarningRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Earning, error) {
	var earningModel models.EarningModel
	if err := byIdempotencyKey(r.DB.WithContext(ctx), key).First(&earningModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return mappers.ToDomainEarning(&earningModel), nil
}

func byIdempotencyKey(tx *gorm.DB, key string) *gorm.DB {
	return tx.Where("idempotency_key = ?", key)
}

// isIdempotencyConflict reports a unique violation on the idempotency key
// index. Other unique violations are ordinary storage errors.
func isIdempotencyConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return false
	}
	return pgErr.ConstraintName == "" || pgErr.ConstraintName == idempotencyConstraint
}
