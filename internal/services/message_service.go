package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/solarconecta/solarconecta-api/internal/dto"
	"github.com/solarconecta/solarconecta-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmptyMessage      = errors.New("message content is required")
	ErrReceiverNotFound  = errors.New("receiver not found")
	ErrSelfMessage       = errors.New("cannot message yourself")
	ErrMessageSendFailed = errors.New("failed to send message")
)

type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Send delivers a message from one user to another.
func (s *MessageService) Send(senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if req.Content == "" {
		return nil, ErrEmptyMessage
	}
	if req.ReceiverID == senderID {
		return nil, ErrSelfMessage
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ? AND is_active = ?", req.ReceiverID, true).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to look up receiver: %w", err)
	}
	if count == 0 {
		return nil, ErrReceiverNotFound
	}

	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, ErrMessageSendFailed
	}

	return messageToResponse(&msg), nil
}

// Conversation returns the two-way thread between userID and otherID,
// oldest first, and marks the caller's unread incoming messages read.
func (s *MessageService) Conversation(userID, otherID uuid.UUID) (*dto.ConversationResponse, error) {
	var messages []models.Message
	err := s.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, otherID, otherID, userID,
	).Order("created_at ASC").Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	now := time.Now()
	if err := s.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read_at IS NULL", otherID, userID).
		Update("read_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to mark messages read: %w", err)
	}

	resp := &dto.ConversationResponse{Messages: make([]dto.MessageResponse, 0, len(messages))}
	for i := range messages {
		m := &messages[i]
		if m.SenderID == otherID && m.ReadAt == nil {
			m.ReadAt = &now
		}
		resp.Messages = append(resp.Messages, *messageToResponse(m))
	}
	resp.Total = len(resp.Messages)
	return resp, nil
}

// Inbox returns the user's received messages, newest first, with the
// unread count.
func (s *MessageService) Inbox(userID uuid.UUID) (*dto.InboxResponse, error) {
	var messages []models.Message
	err := s.db.Where("receiver_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load inbox: %w", err)
	}

	var unread int64
	if err := s.db.Model(&models.Message{}).
		Where("receiver_id = ? AND read_at IS NULL", userID).
		Count(&unread).Error; err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %w", err)
	}

	resp := &dto.InboxResponse{
		Messages:    make([]dto.MessageResponse, 0, len(messages)),
		UnreadCount: unread,
	}
	for i := range messages {
		resp.Messages = append(resp.Messages, *messageToResponse(&messages[i]))
	}
	return resp, nil
}

func messageToResponse(m *models.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
		ReadAt:     m.ReadAt,
	}
}
