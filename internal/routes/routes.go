package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/solarconecta/solarconecta-api/internal/config"
	"github.com/solarconecta/solarconecta-api/internal/handlers"
	"github.com/solarconecta/solarconecta-api/internal/metrics"
	"github.com/solarconecta/solarconecta-api/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	companyHandler *handlers.CompanyHandler,
	leadHandler *handlers.LeadHandler,
	reviewHandler *handlers.ReviewHandler,
	messageHandler *handlers.MessageHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Directory — public reads
	api.Get("/companies", companyHandler.List)
	api.Get("/companies/:id", companyHandler.Get)
	api.Get("/companies/:id/reviews", reviewHandler.List)

	// Directory — authenticated writes
	api.Post("/companies", middleware.JWTProtected(cfg), companyHandler.Register)
	api.Post("/companies/:id/reviews", middleware.JWTProtected(cfg), reviewHandler.Create)

	// Company-owned resources
	companyScoped := []fiber.Handler{middleware.JWTProtected(cfg), middleware.CompanyScope(db)}
	api.Post("/companies/:id/services", append(companyScoped, companyHandler.AddService)...)
	api.Post("/companies/:id/projects", append(companyScoped, companyHandler.AddProject)...)

	// Leads: submitting is public, managing requires a company account
	api.Post("/leads", leadHandler.Send)
	api.Get("/leads", append(companyScoped, leadHandler.List)...)
	api.Put("/leads/:id/status", append(companyScoped, leadHandler.UpdateStatus)...)

	// Messaging (JWT required)
	msgs := api.Group("/messages", middleware.JWTProtected(cfg))
	msgs.Get("/", messageHandler.Inbox)
	msgs.Get("/:user_id", messageHandler.Conversation)
	msgs.Post("/", messageHandler.Send)

	// Admin
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Put("/companies/:id/verify", companyHandler.Verify)
}
