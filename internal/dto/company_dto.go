package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterCompanyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CNPJ        string `json:"cnpj"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city"`
	State       string `json:"state"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Website     string `json:"website,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// RegisterCompanyResponse carries the redirect target for the caller;
// navigation is the presentation layer's job, not the server's.
type RegisterCompanyResponse struct {
	Company  CompanyView `json:"company"`
	Redirect string      `json:"redirect"`
}

// CompanyView is the directory's lightweight projection of an active
// company. Optional fields are empty strings, never null.
type CompanyView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Website       string    `json:"website"`
	IsVerified    bool      `json:"is_verified"`
}

type CompanyListResponse struct {
	Companies []CompanyView `json:"companies"`
	Total     int           `json:"total"`
}

type CompanyDetailResponse struct {
	CompanyView
	Address  string                   `json:"address"`
	LogoURL  string                   `json:"logo_url"`
	Services []CompanyServiceResponse `json:"services"`
	Projects []CompanyProjectResponse `json:"projects"`
	Reviews  []ReviewResponse         `json:"reviews"`
}

type AddServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceRange  string `json:"price_range,omitempty"`
}

type CompanyServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceRange  string    `json:"price_range"`
}

type AddProjectRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	Location       string  `json:"location"`
	CompletionDate string  `json:"completion_date"`
	PowerCapacity  float64 `json:"power_capacity"`
	ImageURLs      string  `json:"image_urls,omitempty"`
}

type CompanyProjectResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	CompletionDate time.Time `json:"completion_date"`
	PowerCapacity  float64   `json:"power_capacity"`
	ImageURLs      string    `json:"image_urls"`
}
