package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/solarconecta/solarconecta-api/internal/dto"
	"github.com/solarconecta/solarconecta-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrRequiredFields      = errors.New("required fields missing")
	ErrInvalidCNPJ         = errors.New("invalid tax id format")
	ErrCNPJTaken           = errors.New("duplicate tax id")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrRegistrationFailed  = errors.New("registration failed")
	ErrInvalidPowerCap     = errors.New("power capacity must be positive")
	ErrInvalidProjectDate  = errors.New("completion date must be YYYY-MM-DD")
	ErrServiceNameRequired = errors.New("service name is required")
)

// DirectoryFilters are the search criteria applied to the company
// snapshot. MinRating is kept as a string because it arrives straight
// from a form select; anything that does not parse as a positive number
// means "no rating filter".
type DirectoryFilters struct {
	Search    string
	City      string
	MinRating string
}

type DirectoryService struct {
	db *gorm.DB
}

func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{db: db}
}

// ListCompanies loads every active company and projects it into the
// directory view. Full scan per call; fine at directory scale, and it
// doubles as the cache invalidation strategy: any write path simply
// reloads.
func (s *DirectoryService) ListCompanies() ([]dto.CompanyView, error) {
	var companies []models.Company
	if err := s.db.Where("is_active = ?", true).Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}

	views := make([]dto.CompanyView, 0, len(companies))
	for _, c := range companies {
		views = append(views, companyToView(&c))
	}
	return views, nil
}

// FilterCompanies narrows a company snapshot by search text, city and
// minimum rating, in that order, each stage feeding the next. It is a
// pure function: the input slice is never mutated and equal inputs give
// equal outputs.
func FilterCompanies(companies []dto.CompanyView, filters DirectoryFilters) []dto.CompanyView {
	filtered := make([]dto.CompanyView, len(companies))
	copy(filtered, companies)

	if filters.Search != "" {
		query := strings.ToLower(filters.Search)
		matched := filtered[:0]
		for _, c := range filtered {
			if strings.Contains(strings.ToLower(c.Name), query) ||
				strings.Contains(strings.ToLower(c.Description), query) {
				matched = append(matched, c)
			}
		}
		filtered = matched
	}

	if filters.City != "" {
		matched := filtered[:0]
		for _, c := range filtered {
			if strings.EqualFold(c.City, filters.City) {
				matched = append(matched, c)
			}
		}
		filtered = matched
	}

	if minRating, err := strconv.ParseFloat(filters.MinRating, 64); err == nil && minRating > 0 {
		matched := filtered[:0]
		for _, c := range filtered {
			if c.AverageRating >= minRating {
				matched = append(matched, c)
			}
		}
		filtered = matched
	}

	return filtered
}

// RegisterCompany validates and inserts a new company. The CNPJ
// pre-check yields a friendly conflict error; the unique index on
// companies.cnpj is the arbiter when two registrations race. If the
// registering user is a company account without a company yet, it is
// linked to the new row in the same transaction.
func (s *DirectoryService) RegisterCompany(userID uuid.UUID, req *dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error) {
	if req.Name == "" || req.CNPJ == "" || req.City == "" || req.State == "" {
		return nil, ErrRequiredFields
	}
	if len(req.CNPJ) != 14 {
		return nil, ErrInvalidCNPJ
	}

	var existing models.Company
	if err := s.db.Where("cnpj = ?", req.CNPJ).First(&existing).Error; err == nil {
		return nil, ErrCNPJTaken
	}

	company := models.Company{
		Name:        req.Name,
		Description: req.Description,
		CNPJ:        req.CNPJ,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
		IsActive:    true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		var owner models.User
		if err := tx.First(&owner, "id = ?", userID).Error; err == nil {
			if owner.UserType == models.UserTypeCompany && owner.CompanyID == nil {
				if err := tx.Model(&owner).Update("company_id", company.ID).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		slog.Error("company registration failed", "error", err, "cnpj", req.CNPJ)
		return nil, ErrRegistrationFailed
	}

	return &dto.RegisterCompanyResponse{
		Company:  companyToView(&company),
		Redirect: "/empresas",
	}, nil
}

// GetCompany returns an active company with its services, projects and
// reviews.
func (s *DirectoryService) GetCompany(id uuid.UUID) (*dto.CompanyDetailResponse, error) {
	var company models.Company
	err := s.db.
		Preload("Services", "is_active = ?", true).
		Preload("Projects").
		Where("is_active = ?", true).
		First(&company, "id = ?", id).Error
	if err != nil {
		return nil, ErrCompanyNotFound
	}

	var reviews []models.Review
	s.db.Preload("User").
		Where("company_id = ?", id).
		Order("created_at DESC").
		Limit(20).
		Find(&reviews)

	detail := &dto.CompanyDetailResponse{
		CompanyView: companyToView(&company),
		Address:     company.Address,
		LogoURL:     company.LogoURL,
		Services:    make([]dto.CompanyServiceResponse, 0, len(company.Services)),
		Projects:    make([]dto.CompanyProjectResponse, 0, len(company.Projects)),
		Reviews:     make([]dto.ReviewResponse, 0, len(reviews)),
	}

	for _, svc := range company.Services {
		detail.Services = append(detail.Services, dto.CompanyServiceResponse{
			ID:          svc.ID,
			Name:        svc.Name,
			Description: svc.Description,
			PriceRange:  svc.PriceRange,
		})
	}
	for _, p := range company.Projects {
		detail.Projects = append(detail.Projects, dto.CompanyProjectResponse{
			ID:             p.ID,
			Title:          p.Title,
			Description:    p.Description,
			Location:       p.Location,
			CompletionDate: p.CompletionDate,
			PowerCapacity:  p.PowerCapacity,
			ImageURLs:      p.ImageURLs,
		})
	}
	for _, r := range reviews {
		detail.Reviews = append(detail.Reviews, dto.ReviewResponse{
			ID:        r.ID,
			UserID:    r.UserID,
			UserName:  r.User.FullName,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}

	return detail, nil
}

// AddService attaches a service offering to a company.
func (s *DirectoryService) AddService(companyID uuid.UUID, req *dto.AddServiceRequest) (*dto.CompanyServiceResponse, error) {
	if req.Name == "" {
		return nil, ErrServiceNameRequired
	}

	if err := s.requireActiveCompany(companyID); err != nil {
		return nil, err
	}

	svc := models.CompanyService{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		PriceRange:  req.PriceRange,
		IsActive:    true,
	}
	if err := s.db.Create(&svc).Error; err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	return &dto.CompanyServiceResponse{
		ID:          svc.ID,
		Name:        svc.Name,
		Description: svc.Description,
		PriceRange:  svc.PriceRange,
	}, nil
}

// AddProject attaches a completed project to a company.
func (s *DirectoryService) AddProject(companyID uuid.UUID, req *dto.AddProjectRequest) (*dto.CompanyProjectResponse, error) {
	if req.Title == "" || req.Location == "" {
		return nil, ErrRequiredFields
	}
	if req.PowerCapacity <= 0 {
		return nil, ErrInvalidPowerCap
	}
	completionDate, err := time.Parse("2006-01-02", req.CompletionDate)
	if err != nil {
		return nil, ErrInvalidProjectDate
	}

	if err := s.requireActiveCompany(companyID); err != nil {
		return nil, err
	}

	project := models.CompanyProject{
		CompanyID:      companyID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		CompletionDate: completionDate,
		PowerCapacity:  req.PowerCapacity,
		ImageURLs:      req.ImageURLs,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &dto.CompanyProjectResponse{
		ID:             project.ID,
		Title:          project.Title,
		Description:    project.Description,
		Location:       project.Location,
		CompletionDate: project.CompletionDate,
		PowerCapacity:  project.PowerCapacity,
		ImageURLs:      project.ImageURLs,
	}, nil
}

// VerifyCompany marks a company as verified by an admin.
func (s *DirectoryService) VerifyCompany(id uuid.UUID) error {
	result := s.db.Model(&models.Company{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_verified", true)
	if result.Error != nil {
		return fmt.Errorf("failed to verify company: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (s *DirectoryService) requireActiveCompany(id uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Company{}).Where("id = ? AND is_active = ?", id, true).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up company: %w", err)
	}
	if count == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func companyToView(c *models.Company) dto.CompanyView {
	return dto.CompanyView{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		City:          c.City,
		State:         c.State,
		AverageRating: c.AverageRating,
		TotalReviews:  c.TotalReviews,
		Phone:         c.Phone,
		Email:         c.Email,
		Website:       c.Website,
		IsVerified:    c.IsVerified,
	}
}
