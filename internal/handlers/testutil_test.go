package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/solarconecta/solarconecta-api/internal/config"
	"github.com/solarconecta/solarconecta-api/internal/database"
	"github.com/solarconecta/solarconecta-api/internal/handlers"
	"github.com/solarconecta/solarconecta-api/internal/models"
	"github.com/solarconecta/solarconecta-api/internal/routes"
	"github.com/solarconecta/solarconecta-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) *fiber.App {
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
	database.DB = db

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}

	app := fiber.New()
	routes.Setup(app, cfg, db,
		handlers.NewAuthHandler(services.NewAuthService(db, cfg)),
		handlers.NewCompanyHandler(services.NewDirectoryService(db)),
		handlers.NewLeadHandler(services.NewLeadService(db)),
		handlers.NewReviewHandler(services.NewReviewService(db)),
		handlers.NewMessageHandler(services.NewMessageService(db)),
		handlers.NewHealthHandler(),
	)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode: %v", err)
	}
}
