package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	api_models "virtualagent-backend/internal/models"
	db_models "virtualagent-backend/internal/models"

	"github.com/google/uuid"
)

func TestConversationService_LogAndList(t *testing.T) {
	t.Parallel()

	s := &fakeStore{}
	svc := NewConversationService(s)
	ctx := context.Background()

	logged, err := svc.LogConversation(ctx, api_models.LogConversationRequest{
		Messages: []api_models.Message{
			{Role: "user", Content: "Bonjour"},
			{Role: "assistant", Content: "Bonjour, comment puis-je vous aider ?"},
		},
		Language:    "fr",
		UserContext: "returning visitor",
	})
	if err != nil {
		t.Fatalf("LogConversation: %v", err)
	}
	if len(logged.Messages) != 2 {
		t.Fatalf("logged %d messages, want 2", len(logged.Messages))
	}

	list, err := svc.ListConversations(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}
	if list[0].Language != "fr" || list[0].UserContext != "returning visitor" {
		t.Fatalf("conversation = %+v", list[0])
	}
	if list[0].Messages[0].Content != "Bonjour" {
		t.Fatalf("first message = %+v", list[0].Messages[0])
	}
}

func TestConversationService_Validation(t *testing.T) {
	t.Parallel()

	svc := NewConversationService(&fakeStore{})
	ctx := context.Background()

	_, err := svc.LogConversation(ctx, api_models.LogConversationRequest{})
	if !errors.Is(err, ErrConversationValidation) {
		t.Fatalf("empty messages: err = %v, want ErrConversationValidation", err)
	}

	oversized := make([]api_models.Message, maxConversationMessages+1)
	for i := range oversized {
		oversized[i] = api_models.Message{Role: "user", Content: "x"}
	}
	_, err = svc.LogConversation(ctx, api_models.LogConversationRequest{Messages: oversized})
	if !errors.Is(err, ErrConversationValidation) {
		t.Fatalf("oversized transcript: err = %v, want ErrConversationValidation", err)
	}
}

func TestConversationService_MalformedRowsSkipped(t *testing.T) {
	t.Parallel()

	good, _ := json.Marshal([]api_models.Message{{Role: "user", Content: "hi"}})
	s := &fakeStore{conversations: []db_models.Conversation{
		{ID: uuid.New(), Messages: json.RawMessage(`{not json`)},
		{ID: uuid.New(), Messages: good},
	}}
	svc := NewConversationService(s)

	list, err := svc.ListConversations(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list length = %d, want the malformed row skipped", len(list))
	}
}

func TestConversationService_LimitClamped(t *testing.T) {
	t.Parallel()

	s := &fakeStore{}
	for i := 0; i < 60; i++ {
		raw, _ := json.Marshal([]api_models.Message{{Role: "user", Content: "hi"}})
		s.conversations = append(s.conversations, db_models.Conversation{ID: uuid.New(), Messages: raw})
	}
	svc := NewConversationService(s)

	list, err := svc.ListConversations(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(list) != 50 {
		t.Fatalf("list length = %d, want default limit of 50", len(list))
	}

	list, err = svc.ListConversations(context.Background(), 1000, 0)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(list) != 50 {
		t.Fatalf("list length = %d, want oversized limit clamped to 50", len(list))
	}
}
