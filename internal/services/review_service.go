package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/solarconecta/solarconecta-api/internal/dto"
	"github.com/solarconecta/solarconecta-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrAlreadyReviewed = errors.New("company already reviewed by this user")
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// CreateReview inserts a review and recomputes the company's
// average_rating and total_reviews in the same transaction, so the
// denormalized counters never drift from the reviews table.
func (s *ReviewService) CreateReview(userID, companyID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var company models.Company
	if err := s.db.Where("is_active = ?", true).First(&company, "id = ?", companyID).Error; err != nil {
		return nil, ErrCompanyNotFound
	}

	var existing models.Review
	if err := s.db.Where("company_id = ? AND user_id = ?", companyID, userID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyReviewed
	}

	review := models.Review{
		CompanyID: companyID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var agg struct {
			Avg   float64
			Total int64
		}
		if err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS total").
			Where("company_id = ?", companyID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Company{}).
			Where("id = ?", companyID).
			Updates(map[string]interface{}{
				"average_rating": agg.Avg,
				"total_reviews":  agg.Total,
			}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	var user models.User
	s.db.First(&user, "id = ?", userID)

	return &dto.ReviewResponse{
		ID:        review.ID,
		UserID:    userID,
		UserName:  user.FullName,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}, nil
}

// ListReviews returns all reviews of a company, newest first.
func (s *ReviewService) ListReviews(companyID uuid.UUID) (*dto.ReviewListResponse, error) {
	var company models.Company
	if err := s.db.Where("is_active = ?", true).First(&company, "id = ?", companyID).Error; err != nil {
		return nil, ErrCompanyNotFound
	}

	var reviews []models.Review
	if err := s.db.Preload("User").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	resp := &dto.ReviewListResponse{
		Reviews:       make([]dto.ReviewResponse, 0, len(reviews)),
		AverageRating: company.AverageRating,
	}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, dto.ReviewResponse{
			ID:        r.ID,
			UserID:    r.UserID,
			UserName:  r.User.FullName,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}
	resp.Total = len(resp.Reviews)
	return resp, nil
}
