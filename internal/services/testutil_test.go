package services

import (
	"testing"
	"time"

	"github.com/solarconecta/solarconecta-api/internal/config"
	"github.com/solarconecta/solarconecta-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.CompanyService{},
		&models.CompanyProject{},
		&models.Review{},
		&models.Lead{},
		&models.Message{},
		&models.RefreshToken{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func seedCompany(t *testing.T, db *gorm.DB, c models.Company) models.Company {
	t.Helper()
	if c.CNPJ == "" {
		c.CNPJ = "11222333000144"
	}
	if c.City == "" {
		c.City = "São Paulo"
	}
	if c.State == "" {
		c.State = "SP"
	}
	c.IsActive = true
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("failed to seed company: %v", err)
	}
	return c
}

func seedUser(t *testing.T, db *gorm.DB, u models.User) models.User {
	t.Helper()
	if u.Email == "" {
		u.Email = "user@example.com"
	}
	if u.FullName == "" {
		u.FullName = "Test User"
	}
	if u.UserType == "" {
		u.UserType = models.UserTypeConsumer
	}
	if u.HashedPassword == "" {
		u.HashedPassword = "x"
	}
	u.IsActive = true
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}
