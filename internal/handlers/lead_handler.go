package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/solarconecta/solarconecta-api/internal/dto"
	"github.com/solarconecta/solarconecta-api/internal/middleware"
	"github.com/solarconecta/solarconecta-api/internal/services"
)

type LeadHandler struct {
	leadService *services.LeadService
}

func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Send accepts a contact request from anyone; no session required.
func (h *LeadHandler) Send(c *fiber.Ctx) error {
	var req dto.SendLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.leadService.SendLead(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequiredFields):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrCompanyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to send. Please try again.",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List returns the authenticated company user's leads.
func (h *LeadHandler) List(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(middleware.GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Company account required",
		})
	}

	resp, err := h.leadService.ListLeads(companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list leads",
		})
	}

	return c.JSON(resp)
}

func (h *LeadHandler) UpdateStatus(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(middleware.GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Company account required",
		})
	}

	leadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid lead id",
		})
	}

	var req dto.UpdateLeadStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.leadService.UpdateLeadStatus(companyID, leadID, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidLeadStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrLeadNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
	}

	return c.JSON(fiber.Map{"message": "Lead updated"})
}
