package services

import (
	"errors"
	"testing"

	"github.com/solarconecta/solarconecta-api/internal/dto"
	"github.com/solarconecta/solarconecta-api/internal/models"
)

func TestSendMessageValidation(t *testing.T) {
	db := testDB(t)
	svc := NewMessageService(db)
	alice := seedUser(t, db, models.User{Email: "alice@x.com"})
	bob := seedUser(t, db, models.User{Email: "bob@x.com"})

	if _, err := svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverID: bob.ID}); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("Send() error = %v, want ErrEmptyMessage", err)
	}
	if _, err := svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverID: alice.ID, Content: "oi"}); !errors.Is(err, ErrSelfMessage) {
		t.Errorf("Send() error = %v, want ErrSelfMessage", err)
	}
}

func TestConversationMarksRead(t *testing.T) {
	db := testDB(t)
	svc := NewMessageService(db)
	alice := seedUser(t, db, models.User{Email: "alice@x.com"})
	bob := seedUser(t, db, models.User{Email: "bob@x.com"})

	if _, err := svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverID: bob.ID, Content: "Olá, tudo bem?"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if _, err := svc.Send(bob.ID, &dto.SendMessageRequest{ReceiverID: alice.ID, Content: "Tudo, e você?"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	inbox, err := svc.Inbox(bob.ID)
	if err != nil {
		t.Fatalf("Inbox() error = %v", err)
	}
	if inbox.UnreadCount != 1 {
		t.Errorf("UnreadCount = %d, want 1", inbox.UnreadCount)
	}

	conv, err := svc.Conversation(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("Conversation() error = %v", err)
	}
	if conv.Total != 2 {
		t.Fatalf("Total = %d, want 2", conv.Total)
	}
	// incoming message got its read stamp
	if conv.Messages[0].SenderID != alice.ID || conv.Messages[0].ReadAt == nil {
		t.Errorf("first message not marked read: %+v", conv.Messages[0])
	}
	// own message is untouched
	if conv.Messages[1].SenderID != bob.ID || conv.Messages[1].ReadAt != nil {
		t.Errorf("own message unexpectedly stamped: %+v", conv.Messages[1])
	}

	inbox, err = svc.Inbox(bob.ID)
	if err != nil {
		t.Fatalf("Inbox() error = %v", err)
	}
	if inbox.UnreadCount != 0 {
		t.Errorf("UnreadCount after read = %d, want 0", inbox.UnreadCount)
	}
}

// A failed receiver lookup is an internal error, not "receiver not found".
func TestSendLookupFailureIsNotNotFound(t *testing.T) {
	db := testDB(t)
	svc := NewMessageService(db)
	alice := seedUser(t, db, models.User{Email: "alice@x.com"})
	bob := seedUser(t, db, models.User{Email: "bob@x.com"})

	if err := db.Migrator().DropTable(&models.User{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := svc.Send(alice.ID, &dto.SendMessageRequest{ReceiverID: bob.ID, Content: "oi"})
	if err == nil {
		t.Fatal("Send() error = nil, want lookup failure")
	}
	if errors.Is(err, ErrReceiverNotFound) {
		t.Errorf("Send() error = %v, want internal error, not ErrReceiverNotFound", err)
	}
}
