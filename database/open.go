package database

import (
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adarsh14103/portfolio-backend/config"
	"github.com/adarsh14103/portfolio-backend/models"
)

// Open connects to the store selected by DB_TYPE ("postgres" or
// "sqlite"), migrates the three entity tables, and returns the handle.
// sqlite is the local-development and test backend; postgres is what
// the deployed site runs on.
func Open(cfg map[string]string) (*gorm.DB, error) {
	gormLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	var dialector gorm.Dialector
	switch dbType := config.GetString(cfg, "DB_TYPE", "postgres"); dbType {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(cfg, "DB_HOST", "localhost"),
			config.GetString(cfg, "DB_USER", "postgres"),
			config.GetString(cfg, "DB_PASSWORD", ""),
			config.GetString(cfg, "DB_NAME", "portfolio"),
			config.GetString(cfg, "DB_PORT", "5432"),
			config.GetString(cfg, "DB_SSLMODE", "require"),
		)
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		dialector = sqlite.Open(config.GetString(cfg, "DB_PATH", "portfolio.db"))
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the three entity tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Project{}, &models.Skill{}, &models.Profile{}); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}
