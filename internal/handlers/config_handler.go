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

// AgentConfigService defines the interface expected from the agent config
// service.
type AgentConfigService interface {
	GetConfig(ctx context.Context) (*models.AgentConfigResponse, error)
	UpdateConfig(ctx context.Context, req models.UpdateAgentConfigRequest) (*models.AgentConfigResponse, error)
}

// BrandService defines the interface expected from the brand config service.
type BrandService interface {
	GetConfig(ctx context.Context) (*models.BrandConfigResponse, error)
	UpdateConfig(ctx context.Context, req models.UpdateBrandConfigRequest) (*models.BrandConfigResponse, error)
}

type ConfigHandler struct {
	agentService AgentConfigService
	brandService BrandService
}

func NewConfigHandler(agentSvc AgentConfigService, brandSvc BrandService) *ConfigHandler {
	return &ConfigHandler{
		agentService: agentSvc,
		brandService: brandSvc,
	}
}

// HandleGetAgentConfig handles GET /v1/config/agent
func (h *ConfigHandler) HandleGetAgentConfig(w http.ResponseWriter, r *http.Request) {
	resp, err := h.agentService.GetConfig(r.Context())
	if err != nil {
		log.Printf("ERROR [ConfigHandler] HandleGetAgentConfig: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get agent configuration")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleUpdateAgentConfig handles PATCH /v1/config/agent
func (h *ConfigHandler) HandleUpdateAgentConfig(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAgentConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.agentService.UpdateConfig(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [ConfigHandler] HandleUpdateAgentConfig: %v", err)
		if errors.Is(err, services.ErrConfigValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		} else {
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to update agent configuration")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleGetBrandConfig handles GET /v1/config/brand
func (h *ConfigHandler) HandleGetBrandConfig(w http.ResponseWriter, r *http.Request) {
	resp, err := h.brandService.GetConfig(r.Context())
	if err != nil {
		log.Printf("ERROR [ConfigHandler] HandleGetBrandConfig: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get brand configuration")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleUpdateBrandConfig handles PATCH /v1/config/brand
func (h *ConfigHandler) HandleUpdateBrandConfig(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBrandConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.brandService.UpdateConfig(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [ConfigHandler] HandleUpdateBrandConfig: %v", err)
		if errors.Is(err, services.ErrConfigValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		} else {
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to update brand configuration")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleGetPublicConfig handles GET /api/config. It returns the
// unauthenticated subset the widget needs to boot (persona display fields
// and branding, never the provider key).
func (h *ConfigHandler) HandleGetPublicConfig(w http.ResponseWriter, r *http.Request) {
	agent, err := h.agentService.GetConfig(r.Context())
	if err != nil {
		log.Printf("ERROR [ConfigHandler] HandleGetPublicConfig: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get configuration")
		return
	}
	brand, err := h.brandService.GetConfig(r.Context())
	if err != nil {
		log.Printf("ERROR [ConfigHandler] HandleGetPublicConfig: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get configuration")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.PublicConfigResponse{
		AgentName:       agent.Name,
		Voice:           agent.Voice,
		AvatarURL:       agent.AvatarURL,
		AvatarTransform: agent.AvatarTransform,
		Brand:           *brand,
	})
}
