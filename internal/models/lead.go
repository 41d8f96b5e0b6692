package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
	LeadStatusClosed    = "closed"
)

// Lead is a contact request from a prospective customer to a Company.
type Lead struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Email     string    `gorm:"not null;size:255" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Status    string    `gorm:"size:20;not null;default:'new'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ValidLeadStatus reports whether s is one of the lead lifecycle states.
func ValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted, LeadStatusClosed:
		return true
	}
	return false
}
