package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"virtualagent-backend/internal/models"
	"virtualagent-backend/internal/services"
	"virtualagent-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AdvisorService defines the interface expected from the advisor service.
type AdvisorService interface {
	CreateAdvisor(ctx context.Context, req models.CreateAdvisorRequest) (*models.AdvisorResponse, error)
	GetAdvisor(ctx context.Context, id uuid.UUID) (*models.AdvisorResponse, error)
	ListAdvisors(ctx context.Context) ([]models.AdvisorResponse, error)
	UpdateAdvisor(ctx context.Context, id uuid.UUID, req models.UpdateAdvisorRequest) (*models.AdvisorResponse, error)
	DeleteAdvisor(ctx context.Context, id uuid.UUID) error
}

type AdvisorHandler struct {
	advisorService AdvisorService
}

func NewAdvisorHandler(advisorSvc AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{
		advisorService: advisorSvc,
	}
}

// HandleCreateAdvisor handles POST /v1/advisors
func (h *AdvisorHandler) HandleCreateAdvisor(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdvisorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.advisorService.CreateAdvisor(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [AdvisorHandler] HandleCreateAdvisor: %v", err)
		switch {
		case errors.Is(err, services.ErrAdvisorValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "already exists"):
			httputil.RespondError(w, http.StatusConflict, err.Error())
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to create advisor")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resp)
}

// HandleListAdvisors handles GET /v1/advisors (admin) and GET /api/advisors
// (widget roster).
func (h *AdvisorHandler) HandleListAdvisors(w http.ResponseWriter, r *http.Request) {
	advisors, err := h.advisorService.ListAdvisors(r.Context())
	if err != nil {
		log.Printf("ERROR [AdvisorHandler] HandleListAdvisors: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list advisors")
		return
	}

	if advisors == nil {
		advisors = []models.AdvisorResponse{}
	}
	httputil.RespondJSON(w, http.StatusOK, advisors)
}

// HandleGetAdvisor handles GET /v1/advisors/{advisorID}
func (h *AdvisorHandler) HandleGetAdvisor(w http.ResponseWriter, r *http.Request) {
	advisorID, err := uuid.Parse(chi.URLParam(r, "advisorID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid advisor ID format")
		return
	}

	resp, err := h.advisorService.GetAdvisor(r.Context(), advisorID)
	if err != nil {
		if errors.Is(err, services.ErrAdvisorNotFound) {
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		} else {
			log.Printf("ERROR [AdvisorHandler] HandleGetAdvisor for ID %s: %v", advisorID, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to get advisor")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleUpdateAdvisor handles PATCH /v1/advisors/{advisorID}
func (h *AdvisorHandler) HandleUpdateAdvisor(w http.ResponseWriter, r *http.Request) {
	advisorID, err := uuid.Parse(chi.URLParam(r, "advisorID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid advisor ID format")
		return
	}

	var req models.UpdateAdvisorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.advisorService.UpdateAdvisor(r.Context(), advisorID, req)
	if err != nil {
		log.Printf("ERROR [AdvisorHandler] HandleUpdateAdvisor for ID %s: %v", advisorID, err)
		switch {
		case errors.Is(err, services.ErrAdvisorNotFound):
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrAdvisorValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "already exists"):
			httputil.RespondError(w, http.StatusConflict, err.Error())
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to update advisor")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleDeleteAdvisor handles DELETE /v1/advisors/{advisorID}
func (h *AdvisorHandler) HandleDeleteAdvisor(w http.ResponseWriter, r *http.Request) {
	advisorID, err := uuid.Parse(chi.URLParam(r, "advisorID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid advisor ID format")
		return
	}

	err = h.advisorService.DeleteAdvisor(r.Context(), advisorID)
	if err != nil {
		if errors.Is(err, services.ErrAdvisorNotFound) {
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		} else {
			log.Printf("ERROR [AdvisorHandler] HandleDeleteAdvisor for ID %s: %v", advisorID, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete advisor")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
