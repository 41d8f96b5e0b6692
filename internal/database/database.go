package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/solarconecta/solarconecta-api/internal/config"
	"github.com/solarconecta/solarconecta-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for all marketplace models. AutoMigrate is
// create-if-not-exists, so repeated startups are safe. The unique
// indexes on users.email, companies.cnpj and reviews(company_id,
// user_id) are the storage-level arbiters behind the application-level
// uniqueness pre-checks.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.CompanyService{},
		&models.CompanyProject{},
		&models.Review{},
		&models.Lead{},
		&models.Message{},
		&models.RefreshToken{},
		&models.SystemLog{},
	)
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
