package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"virtualagent-backend/internal/models"
	"virtualagent-backend/internal/services"
	"virtualagent-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RSSService defines the interface expected from the rss feed service.
type RSSService interface {
	CreateFeed(ctx context.Context, req models.CreateRSSFeedRequest) (*models.RSSFeedResponse, error)
	ListFeeds(ctx context.Context) ([]models.RSSFeedResponse, error)
	DeleteFeed(ctx context.Context, id uuid.UUID) error
}

// APIToolService defines the interface expected from the api tool service.
type APIToolService interface {
	CreateTool(ctx context.Context, req models.CreateAPIToolRequest) (*models.APIToolResponse, error)
	ListTools(ctx context.Context) ([]models.APIToolResponse, error)
	DeleteTool(ctx context.Context, id uuid.UUID) error
}

// PronunciationService defines the interface expected from the pronunciation
// service.
type PronunciationService interface {
	CreatePronunciation(ctx context.Context, req models.CreatePronunciationRequest) (*models.PronunciationResponse, error)
	ListPronunciations(ctx context.Context) ([]models.PronunciationResponse, error)
	DeletePronunciation(ctx context.Context, id uuid.UUID) error
}

// SourcesHandler exposes the small config collections that feed the system
// prompt and the speech pipeline: RSS feeds, API tools and pronunciations.
type SourcesHandler struct {
	rssService           RSSService
	toolService          APIToolService
	pronunciationService PronunciationService
}

func NewSourcesHandler(rssSvc RSSService, toolSvc APIToolService, pronSvc PronunciationService) *SourcesHandler {
	return &SourcesHandler{
		rssService:           rssSvc,
		toolService:          toolSvc,
		pronunciationService: pronSvc,
	}
}

// HandleCreateFeed handles POST /v1/rss-feeds
func (h *SourcesHandler) HandleCreateFeed(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRSSFeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.rssService.CreateFeed(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [SourcesHandler] HandleCreateFeed: %v", err)
		if errors.Is(err, services.ErrFeedValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		} else {
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to create rss feed")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resp)
}

// HandleListFeeds handles GET /v1/rss-feeds
func (h *SourcesHandler) HandleListFeeds(w http.ResponseWriter, r *http.Request) {
	feeds, err := h.rssService.ListFeeds(r.Context())
	if err != nil {
		log.Printf("ERROR [SourcesHandler] HandleListFeeds: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list rss feeds")
		return
	}

	if feeds == nil {
		feeds = []models.RSSFeedResponse{}
	}
	httputil.RespondJSON(w, http.StatusOK, feeds)
}

// HandleDeleteFeed handles DELETE /v1/rss-feeds/{feedID}
func (h *SourcesHandler) HandleDeleteFeed(w http.ResponseWriter, r *http.Request) {
	feedID, err := uuid.Parse(chi.URLParam(r, "feedID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid feed ID format")
		return
	}

	if err := h.rssService.DeleteFeed(r.Context(), feedID); err != nil {
		if errors.Is(err, services.ErrFeedNotFound) {
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		} else {
			log.Printf("ERROR [SourcesHandler] HandleDeleteFeed for ID %s: %v", feedID, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete rss feed")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateTool handles POST /v1/api-tools
func (h *SourcesHandler) HandleCreateTool(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAPIToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.toolService.CreateTool(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [SourcesHandler] HandleCreateTool: %v", err)
		if errors.Is(err, services.ErrToolValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		} else {
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to create api tool")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resp)
}

// HandleListTools handles GET /v1/api-tools
func (h *SourcesHandler) HandleListTools(w http.ResponseWriter, r *http.Request) {
	tools, err := h.toolService.ListTools(r.Context())
	if err != nil {
		log.Printf("ERROR [SourcesHandler] HandleListTools: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list api tools")
		return
	}

	if tools == nil {
		tools = []models.APIToolResponse{}
	}
	httputil.RespondJSON(w, http.StatusOK, tools)
}

// HandleDeleteTool handles DELETE /v1/api-tools/{toolID}
func (h *SourcesHandler) HandleDeleteTool(w http.ResponseWriter, r *http.Request) {
	toolID, err := uuid.Parse(chi.URLParam(r, "toolID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid tool ID format")
		return
	}

	if err := h.toolService.DeleteTool(r.Context(), toolID); err != nil {
		if errors.Is(err, services.ErrToolNotFound) {
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		} else {
			log.Printf("ERROR [SourcesHandler] HandleDeleteTool for ID %s: %v", toolID, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete api tool")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCreatePronunciation handles POST /v1/pronunciations
func (h *SourcesHandler) HandleCreatePronunciation(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePronunciationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.pronunciationService.CreatePronunciation(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [SourcesHandler] HandleCreatePronunciation: %v", err)
		if errors.Is(err, services.ErrPronunciationValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		} else {
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to create pronunciation")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resp)
}

// HandleListPronunciations handles GET /v1/pronunciations
func (h *SourcesHandler) HandleListPronunciations(w http.ResponseWriter, r *http.Request) {
	items, err := h.pronunciationService.ListPronunciations(r.Context())
	if err != nil {
		log.Printf("ERROR [SourcesHandler] HandleListPronunciations: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list pronunciations")
		return
	}

	if items == nil {
		items = []models.PronunciationResponse{}
	}
	httputil.RespondJSON(w, http.StatusOK, items)
}

// HandleDeletePronunciation handles DELETE /v1/pronunciations/{pronunciationID}
func (h *SourcesHandler) HandleDeletePronunciation(w http.ResponseWriter, r *http.Request) {
	pronunciationID, err := uuid.Parse(chi.URLParam(r, "pronunciationID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid pronunciation ID format")
		return
	}

	if err := h.pronunciationService.DeletePronunciation(r.Context(), pronunciationID); err != nil {
		if errors.Is(err, services.ErrPronunciationNotFound) {
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		} else {
			log.Printf("ERROR [SourcesHandler] HandleDeletePronunciation for ID %s: %v", pronunciationID, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete pronunciation")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
