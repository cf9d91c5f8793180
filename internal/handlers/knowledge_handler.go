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

// KnowledgeService defines the interface expected from the knowledge service.
type KnowledgeService interface {
	CreateItem(ctx context.Context, req models.CreateKnowledgeItemRequest) (*models.KnowledgeItemResponse, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.KnowledgeItemResponse, error)
	ListItems(ctx context.Context) ([]models.KnowledgeItemResponse, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ImportFromNotion(ctx context.Context, req models.ImportNotionRequest) (*models.KnowledgeItemResponse, error)
}

type KnowledgeHandler struct {
	knowledgeService KnowledgeService
}

func NewKnowledgeHandler(knowledgeSvc KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{
		knowledgeService: knowledgeSvc,
	}
}

// HandleCreateItem handles POST /v1/knowledge
func (h *KnowledgeHandler) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateKnowledgeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.knowledgeService.CreateItem(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [KnowledgeHandler] HandleCreateItem: %v", err)
		if errors.Is(err, services.ErrKnowledgeValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		} else {
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to create knowledge item")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resp)
}

// HandleListItems handles GET /v1/knowledge
func (h *KnowledgeHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.knowledgeService.ListItems(r.Context())
	if err != nil {
		log.Printf("ERROR [KnowledgeHandler] HandleListItems: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list knowledge items")
		return
	}

	if items == nil {
		items = []models.KnowledgeItemResponse{}
	}
	httputil.RespondJSON(w, http.StatusOK, items)
}

// HandleGetItem handles GET /v1/knowledge/{itemID}
func (h *KnowledgeHandler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid knowledge item ID format")
		return
	}

	resp, err := h.knowledgeService.GetItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, services.ErrKnowledgeNotFound) {
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		} else {
			log.Printf("ERROR [KnowledgeHandler] HandleGetItem for ID %s: %v", itemID, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to get knowledge item")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleDeleteItem handles DELETE /v1/knowledge/{itemID}
func (h *KnowledgeHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid knowledge item ID format")
		return
	}

	err = h.knowledgeService.DeleteItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, services.ErrKnowledgeNotFound) {
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		} else {
			log.Printf("ERROR [KnowledgeHandler] HandleDeleteItem for ID %s: %v", itemID, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete knowledge item")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleImportNotion handles POST /v1/knowledge/import/notion
func (h *KnowledgeHandler) HandleImportNotion(w http.ResponseWriter, r *http.Request) {
	var req models.ImportNotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.knowledgeService.ImportFromNotion(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [KnowledgeHandler] HandleImportNotion for page %s: %v", req.PageID, err)
		switch {
		case errors.Is(err, services.ErrKnowledgeValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrImportFailed):
			httputil.RespondError(w, http.StatusBadGateway, err.Error())
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to import page")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resp)
}
