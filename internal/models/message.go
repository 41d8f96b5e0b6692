package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a directed message between two users. ReadAt stays null
// until the receiver opens the conversation.
type Message struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID uuid.UUID  `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	ReadAt     *time.Time `json:"read_at,omitempty"`

	Sender   User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
