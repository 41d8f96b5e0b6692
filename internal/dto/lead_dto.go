package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendLeadRequest struct {
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
}

type SendLeadResponse struct {
	Success bool      `json:"success"`
	LeadID  uuid.UUID `json:"lead_id"`
}

type LeadResponse struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type LeadListResponse struct {
	Leads []LeadResponse `json:"leads"`
	Total int            `json:"total"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status"`
}
