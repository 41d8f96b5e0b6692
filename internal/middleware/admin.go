package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/solarconecta/solarconecta-api/internal/config"
	"github.com/solarconecta/solarconecta-api/internal/dto"
	"github.com/solarconecta/solarconecta-api/internal/models"
	"gorm.io/gorm"
)

// AdminRequired grants access when any of the following holds:
// 1. the X-Admin-Token header matches the configured token,
// 2. the JWT email is in the configured admin list,
// 3. the user row has user_type admin.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			if c.Get("X-Admin-Token") == cfg.AdminToken {
				return c.Next()
			}
		}

		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if contains(adminEmails, GetUserEmail(c)) {
			return c.Next()
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err == nil {
			if user.UserType == models.UserTypeAdmin {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

// CompanyScope resolves the company the authenticated user belongs to
// and stores it in locals under "company_id". Admin users may target
// any company via the company_id query param.
func CompanyScope(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if user.UserType == models.UserTypeAdmin && c.Query("company_id") != "" {
			c.Locals("company_id", c.Query("company_id"))
			return c.Next()
		}

		if user.UserType != models.UserTypeCompany || user.CompanyID == nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Company account required",
			})
		}

		c.Locals("company_id", user.CompanyID.String())
		return c.Next()
	}
}

// GetCompanyID reads the company id stored by CompanyScope.
func GetCompanyID(c *fiber.Ctx) string {
	if id, ok := c.Locals("company_id").(string); ok {
		return id
	}
	return ""
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
