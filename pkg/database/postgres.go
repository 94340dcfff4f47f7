package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"tortilleria-ventas/internal/config"
	"tortilleria-ventas/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the postgres pool described by cfg. The caller owns the handle and must Close it.
func ConnectDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseURL,
		PreferSimpleProtocol: true, // Disables implicit prepared statements for pgbouncer/transaction poolers
	}), GormConfig(cfg.DBLogLevel))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database pool: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// pool_pre_ping equivalent: fail at startup rather than on the first request
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Printf("Database connection established (max open %d, max idle %d)", cfg.MaxOpenConns, cfg.MaxIdleConns)
	return db, nil
}

// GormConfig is shared by the postgres connection and the in-memory test database.
func GormConfig(level string) *gorm.Config {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  parseLogLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	return &gorm.Config{
		Logger:      newLogger,
		PrepareStmt: false,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Migrate creates or updates the sales schema. Parents are migrated before children so the
// foreign keys (cascade on ventas -> detalles_venta, restrict on productos) resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Branch{},
		&model.Employee{},
		&model.Product{},
		&model.Sale{},
		&model.SaleLineItem{},
	)
}

// Ping checks that a pooled connection can reach the store.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases every pooled connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
