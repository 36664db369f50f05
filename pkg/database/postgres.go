package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the connection parameters used when DATABASE_URL is unset.
type Config struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func (c Config) dsn() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Name, c.Port,
	)
}

// ConnectDB opens a pooled gorm connection whose SQL log goes through zl.
func ConnectDB(cfg Config, zl *zap.Logger) (*gorm.DB, error) {
	if zl == nil {
		zl = zap.NewNop()
	}
	gormLogger := logger.New(
		zap.NewStdLog(zl.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.dsn(),
		PreferSimpleProtocol: true, // Disables implicit prepared statements for pgbouncer transaction mode
	}), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	zl.Info("database connection established")
	return db, nil
}
