package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/sifan077/GifBoard/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewGorm opens the store connection. Unique violations come back as
// gorm.ErrDuplicatedKey; slow queries and driver errors are logged through log.
func NewGorm(cfg config.PostgresConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: ConnString(cfg)}), &gorm.Config{
		Logger:         gormLogger(log, cfg.SlowQuery),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: open gorm connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres: retrieve sql db: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnLifetime)
	}
	return db, nil
}

// AutoMigrate creates or updates the tables for models.
func AutoMigrate(ctx context.Context, db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("postgres: auto migrate: %w", err)
	}
	return nil
}

// gormLogger routes GORM's warnings into zap. A missing record is an expected
// outcome of GetByID and is not logged.
func gormLogger(log *zap.Logger, slow time.Duration) gormlogger.Interface {
	if log == nil {
		log = zap.NewNop()
	}
	std, err := zap.NewStdLogAt(log.Named("gorm"), zap.WarnLevel)
	if err != nil {
		return gormlogger.Discard
	}
	return gormlogger.New(std, gormlogger.Config{
		SlowThreshold:             slow,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
