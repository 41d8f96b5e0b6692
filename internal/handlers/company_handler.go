package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/solarconecta/solarconecta-api/internal/dto"
	"github.com/solarconecta/solarconecta-api/internal/middleware"
	"github.com/solarconecta/solarconecta-api/internal/services"
)

type CompanyHandler struct {
	directory *services.DirectoryService
}

func NewCompanyHandler(directory *services.DirectoryService) *CompanyHandler {
	return &CompanyHandler{directory: directory}
}

// List serves the directory: the active-company snapshot narrowed by
// the search, city and min_rating query params.
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	companies, err := h.directory.ListCompanies()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load companies",
		})
	}

	filtered := services.FilterCompanies(companies, services.DirectoryFilters{
		Search:    c.Query("search"),
		City:      c.Query("city"),
		MinRating: c.Query("min_rating"),
	})

	return c.JSON(dto.CompanyListResponse{
		Companies: filtered,
		Total:     len(filtered),
	})
}

func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid company id",
		})
	}

	detail, err := h.directory.GetCompany(id)
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(detail)
}

func (h *CompanyHandler) Register(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.RegisterCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.directory.RegisterCompany(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCNPJTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrRequiredFields), errors.Is(err, services.ErrInvalidCNPJ):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Registration failed. Please try again.",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *CompanyHandler) AddService(c *fiber.Ctx) error {
	companyID, ok := ownedCompanyID(c)
	if !ok {
		return nil
	}

	var req dto.AddServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.directory.AddService(companyID, &req)
	if err != nil {
		return mapDirectoryError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *CompanyHandler) AddProject(c *fiber.Ctx) error {
	companyID, ok := ownedCompanyID(c)
	if !ok {
		return nil
	}

	var req dto.AddProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.directory.AddProject(companyID, &req)
	if err != nil {
		return mapDirectoryError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *CompanyHandler) Verify(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid company id",
		})
	}

	if err := h.directory.VerifyCompany(id); err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"message": "Company verified"})
}

// ownedCompanyID checks the :id path param against the caller's company
// scope set by middleware.CompanyScope. It writes the error response
// itself and reports whether the caller may proceed.
func ownedCompanyID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid company id",
		})
		return uuid.Nil, false
	}

	if middleware.GetCompanyID(c) != id.String() {
		c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Not your company",
		})
		return uuid.Nil, false
	}

	return id, true
}

func mapDirectoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrCompanyNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrRequiredFields),
		errors.Is(err, services.ErrServiceNameRequired),
		errors.Is(err, services.ErrInvalidPowerCap),
		errors.Is(err, services.ErrInvalidProjectDate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}
