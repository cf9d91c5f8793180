package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"virtualagent-backend/internal/models"
	"virtualagent-backend/internal/services"
	"virtualagent-backend/pkg/httputil"
)

// ConversationService defines the interface expected from the conversation
// service.
type ConversationService interface {
	LogConversation(ctx context.Context, req models.LogConversationRequest) (*models.ConversationResponse, error)
	ListConversations(ctx context.Context, limit, offset int) ([]models.ConversationResponse, error)
}

type ConversationHandler struct {
	conversationService ConversationService
}

func NewConversationHandler(conversationSvc ConversationService) *ConversationHandler {
	return &ConversationHandler{
		conversationService: conversationSvc,
	}
}

// HandleLogConversation handles POST /api/conversations, the opt-in
// transcript logging endpoint used by the widget.
func (h *ConversationHandler) HandleLogConversation(w http.ResponseWriter, r *http.Request) {
	var req models.LogConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.conversationService.LogConversation(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [ConversationHandler] HandleLogConversation: %v", err)
		if errors.Is(err, services.ErrConversationValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		} else {
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to log conversation")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resp)
}

// HandleListConversations handles GET /v1/conversations?limit=&offset=
func (h *ConversationHandler) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	conversations, err := h.conversationService.ListConversations(r.Context(), limit, offset)
	if err != nil {
		log.Printf("ERROR [ConversationHandler] HandleListConversations: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list conversations")
		return
	}

	if conversations == nil {
		conversations = []models.ConversationResponse{}
	}
	httputil.RespondJSON(w, http.StatusOK, conversations)
}
