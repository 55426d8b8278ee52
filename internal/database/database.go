package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/lightsmap/core/internal/config"
	"github.com/lightsmap/core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connMaxIdleTime = 5 * time.Minute

// Dialect names understood by Dialector.
const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
)

// Connect opens the pooled connection described by cfg and optionally
// runs auto-migration. The caller owns the returned handle and must Close it.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	db, err := Open(dialector, resolveLogLevel(cfg))
	if err != nil {
		return nil, err
	}
	if err := ConfigurePool(db, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns); err != nil {
		_ = Close(db)
		return nil, err
	}

	if autoMigrate {
		if err := Migrate(db); err != nil {
			_ = Close(db)
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return db, nil
}

// DialectName reports which driver a connection string selects.
func DialectName(dsn string) string {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres
	}
	return DialectMySQL
}

// Dialector picks the GORM driver for a connection string.
func Dialector(dsn string) (gorm.Dialector, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("database url: %w", config.ErrMissingSetting)
	}
	switch DialectName(dsn) {
	case DialectPostgres:
		return postgres.New(postgres.Config{DSN: dsn}), nil
	default:
		return mysql.New(mysql.Config{
			DSN:               withParseTime(dsn),
			DefaultStringSize: 191,
		}), nil
	}
}

// withParseTime makes the MySQL driver return DATETIME columns as time.Time.
// Unparseable DSNs are passed through so the driver reports the error.
func withParseTime(dsn string) string {
	cfg, err := mysqldrv.ParseDSN(dsn)
	if err != nil {
		return dsn
	}
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// Open establishes a GORM handle on an arbitrary dialector.
func Open(dialector gorm.Dialector, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}

// ConfigurePool caps concurrent connections; requests never share a transaction.
func ConfigurePool(db *gorm.DB, maxOpen, maxIdle int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("resolve sql db: %w", err)
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
	return nil
}

// Ping checks connectivity.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// EnsureSchema applies migration in a short-lived setup connection.
func EnsureSchema(cfg *config.AppConfig) error {
	db, err := Connect(cfg, false)
	if err != nil {
		return err
	}
	defer Close(db)

	if err := Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Migrate runs GORM auto-migration for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.LocationModel{},
		&models.ReviewModel{},
		&models.SubmissionModel{},
	)
}

func resolveLogLevel(cfg *config.AppConfig) logger.LogLevel {
	if cfg.IsDev() {
		return logger.Info
	}
	return logger.Warn
}
