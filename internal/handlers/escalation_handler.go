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
)

// EscalationService defines the interface expected from the escalation
// service.
type EscalationService interface {
	Escalate(ctx context.Context, req models.EscalationRequest) (*models.EscalationResponse, error)
}

type EscalationHandler struct {
	escalationService EscalationService
}

func NewEscalationHandler(escalationSvc EscalationService) *EscalationHandler {
	return &EscalationHandler{
		escalationService: escalationSvc,
	}
}

// HandleEscalate handles POST /api/escalate
func (h *EscalationHandler) HandleEscalate(w http.ResponseWriter, r *http.Request) {
	var req models.EscalationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.escalationService.Escalate(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [EscalationHandler] HandleEscalate for advisor %s: %v", req.AdvisorID, err)
		switch {
		case errors.Is(err, services.ErrEscalationValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrAdvisorNotFound):
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to escalate conversation")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
