package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserTypeConsumer = "consumer"
	UserTypeCompany  = "company"
	UserTypeAdmin    = "admin"
)

// User is an account on the marketplace. Consumers review companies and
// send messages; company users manage a Company profile and its leads.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string     `gorm:"not null;size:255;uniqueIndex" json:"email"`
	HashedPassword string     `gorm:"not null" json:"-"`
	FullName       string     `gorm:"not null;size:255" json:"full_name"`
	UserType       string     `gorm:"size:20;not null;default:'consumer'" json:"user_type"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	CompanyID      *uuid.UUID `gorm:"type:uuid;index" json:"company_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
