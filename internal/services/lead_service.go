package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/solarconecta/solarconecta-api/internal/dto"
	"github.com/solarconecta/solarconecta-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrInvalidLeadStatus = errors.New("invalid lead status")
	ErrLeadSendFailed    = errors.New("failed to submit contact request")
)

type LeadService struct {
	db *gorm.DB
}

func NewLeadService(db *gorm.DB) *LeadService {
	return &LeadService{db: db}
}

// SendLead records a contact request for a company. The target company
// id travels with the request itself, so no selection state lingers
// between submissions.
func (s *LeadService) SendLead(req *dto.SendLeadRequest) (*dto.SendLeadResponse, error) {
	if req.Name == "" || req.Email == "" || req.Message == "" || req.CompanyID == uuid.Nil {
		return nil, ErrRequiredFields
	}

	var count int64
	if err := s.db.Model(&models.Company{}).Where("id = ? AND is_active = ?", req.CompanyID, true).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to look up company: %w", err)
	}
	if count == 0 {
		return nil, ErrCompanyNotFound
	}

	lead := models.Lead{
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		Status:    models.LeadStatusNew,
	}

	if err := s.db.Create(&lead).Error; err != nil {
		slog.Error("lead insert failed", "error", err, "company_id", req.CompanyID)
		return nil, ErrLeadSendFailed
	}

	return &dto.SendLeadResponse{Success: true, LeadID: lead.ID}, nil
}

// ListLeads returns a company's leads, newest first.
func (s *LeadService) ListLeads(companyID uuid.UUID) (*dto.LeadListResponse, error) {
	var leads []models.Lead
	if err := s.db.Where("company_id = ?", companyID).Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	resp := &dto.LeadListResponse{Leads: make([]dto.LeadResponse, 0, len(leads))}
	for _, l := range leads {
		resp.Leads = append(resp.Leads, dto.LeadResponse{
			ID:        l.ID,
			CompanyID: l.CompanyID,
			Name:      l.Name,
			Email:     l.Email,
			Phone:     l.Phone,
			Message:   l.Message,
			Status:    l.Status,
			CreatedAt: l.CreatedAt,
		})
	}
	resp.Total = len(resp.Leads)
	return resp, nil
}

// UpdateLeadStatus moves a lead along its lifecycle. The lead must
// belong to the given company.
func (s *LeadService) UpdateLeadStatus(companyID, leadID uuid.UUID, status string) error {
	if !models.ValidLeadStatus(status) {
		return ErrInvalidLeadStatus
	}

	result := s.db.Model(&models.Lead{}).
		Where("id = ? AND company_id = ?", leadID, companyID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update lead: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}
