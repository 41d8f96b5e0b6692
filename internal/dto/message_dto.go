package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
}

type MessageResponse struct {
	ID         uuid.UUID  `json:"id"`
	SenderID   uuid.UUID  `json:"sender_id"`
	ReceiverID uuid.UUID  `json:"receiver_id"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
}

type ConversationResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int               `json:"total"`
}

type InboxResponse struct {
	Messages    []MessageResponse `json:"messages"`
	UnreadCount int64             `json:"unread_count"`
}
