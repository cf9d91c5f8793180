package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"virtualagent-backend/internal/models"
	"virtualagent-backend/internal/openai"
	"virtualagent-backend/pkg/httputil"
)

// ChatProvider defines the completion call expected from the provider client.
type ChatProvider interface {
	ChatCompletion(ctx context.Context, apiKey string, messages []models.Message, systemPrompt, model string, temperature float64) (*openai.ChatResult, error)
}

// SystemPromptBuilder assembles the default system prompt when the request
// does not carry one.
type SystemPromptBuilder interface {
	BuildSystemPrompt(ctx context.Context, userContext, language string) (string, error)
}

type ChatHandler struct {
	provider ChatProvider
	keys     ProviderKeySource
	prompts  SystemPromptBuilder
}

func NewChatHandler(provider ChatProvider, keys ProviderKeySource, prompts SystemPromptBuilder) *ChatHandler {
	return &ChatHandler{
		provider: provider,
		keys:     keys,
		prompts:  prompts,
	}
}

// HandleChat handles POST /api/chat.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if len(req.Messages) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "messages cannot be empty")
		return
	}

	apiKey, err := resolveAPIKey(r.Context(), req.APIKey, h.keys)
	if err != nil {
		log.Printf("ERROR [ChatHandler] HandleChat: Key resolution failed: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to resolve provider credentials")
		return
	}
	if apiKey == "" {
		httputil.RespondError(w, http.StatusBadRequest, "No API key configured")
		return
	}

	model := req.Model
	var temperature float64
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	if model == "" || req.Temperature == nil {
		storedModel, storedTemp, _, err := h.keys.ModelSettings(r.Context())
		if err != nil {
			log.Printf("ERROR [ChatHandler] HandleChat: Failed to load model settings: %v", err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to load agent configuration")
			return
		}
		if model == "" {
			model = storedModel
		}
		if req.Temperature == nil {
			temperature = storedTemp
		}
	}

	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt, err = h.prompts.BuildSystemPrompt(r.Context(), req.UserContext, req.Language)
		if err != nil {
			log.Printf("ERROR [ChatHandler] HandleChat: Prompt build failed: %v", err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to build system prompt")
			return
		}
	}

	result, err := h.provider.ChatCompletion(r.Context(), apiKey, req.Messages, systemPrompt, model, temperature)
	if err != nil {
		log.Printf("ERROR [ChatHandler] HandleChat: Provider call failed: %v", err)
		respondProviderError(w, err, req.Language)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.ChatResponse{
		Response: result.Content,
		Model:    result.Model,
		Usage:    result.Usage,
		Success:  true,
	})
}
