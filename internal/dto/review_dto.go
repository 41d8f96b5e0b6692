package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	Total         int              `json:"total"`
	AverageRating float64          `json:"average_rating"`
}
