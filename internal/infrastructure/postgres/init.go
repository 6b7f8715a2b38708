package postgres

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-earnings-service/internal/config"
	"github.com/LavaJover/shvark-earnings-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.EarningsConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if cfg.Env != "local" {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.EarningsDB.Dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.EarningsDB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.EarningsDB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.EarningsDB.ConnMaxLifetime)

	if err := db.AutoMigrate(&models.EarningModel{}, &models.CurrencyRateModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
