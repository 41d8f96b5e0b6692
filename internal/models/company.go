package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is a solar installer listed on the marketplace directory.
// AverageRating and TotalReviews are denormalized from the reviews table
// and recomputed inside the same transaction that inserts a Review.
type Company struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255;index" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CNPJ        string    `gorm:"not null;size:14;uniqueIndex" json:"cnpj"`
	Address     string    `gorm:"size:255" json:"address,omitempty"`
	City        string    `gorm:"not null;size:100;index" json:"city"`
	State       string    `gorm:"not null;size:2;index" json:"state"`
	Phone       string    `gorm:"size:20" json:"phone,omitempty"`
	Email       string    `gorm:"size:255" json:"email,omitempty"`
	Website     string    `gorm:"size:255" json:"website,omitempty"`
	LogoURL     string    `gorm:"size:500" json:"logo_url,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	IsVerified  bool      `gorm:"not null;default:false" json:"is_verified"`

	AverageRating float64 `gorm:"not null;default:0" json:"average_rating"`
	TotalReviews  int     `gorm:"not null;default:0" json:"total_reviews"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Services []CompanyService `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"services,omitempty"`
	Projects []CompanyProject `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"projects,omitempty"`
	Reviews  []Review         `gorm:"foreignKey:CompanyID" json:"-"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CompanyService is a service offering owned by exactly one Company.
type CompanyService struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	PriceRange  string    `gorm:"size:100" json:"price_range,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *CompanyService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// CompanyProject is a completed installation showcased by a Company.
// PowerCapacity is the installed capacity in kWp. ImageURLs holds
// comma-separated URLs.
type CompanyProject struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Title          string    `gorm:"not null;size:255" json:"title"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	Location       string    `gorm:"not null;size:255" json:"location"`
	CompletionDate time.Time `gorm:"not null" json:"completion_date"`
	PowerCapacity  float64   `gorm:"not null" json:"power_capacity"`
	ImageURLs      string    `gorm:"type:text" json:"image_urls,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *CompanyProject) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
