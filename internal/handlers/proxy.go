package handlers

import (
	"context"
	"errors"
	"net/http"

	"virtualagent-backend/internal/i18n"
	"virtualagent-backend/internal/openai"
	"virtualagent-backend/internal/services"
	"virtualagent-backend/pkg/httputil"
)

// ProviderKeySource resolves the stored provider credentials and model
// settings used when a proxy request does not carry its own.
type ProviderKeySource interface {
	ProviderKey(ctx context.Context) (string, error)
	ModelSettings(ctx context.Context) (model string, temperature float64, voice string, err error)
}

// resolveAPIKey prefers the caller-supplied key, then the stored agent
// config key. Returns "" when neither is set.
func resolveAPIKey(ctx context.Context, requestKey string, src ProviderKeySource) (string, error) {
	if requestKey != "" {
		return requestKey, nil
	}
	key, err := src.ProviderKey(ctx)
	if err != nil {
		if errors.Is(err, services.ErrNoProviderKey) {
			return "", nil
		}
		return "", err
	}
	return key, nil
}

// respondProviderError translates an upstream provider failure into the
// localized error envelope. Transport failures surface as 502; API errors
// keep the provider's status so the browser can distinguish 401 from 429.
func respondProviderError(w http.ResponseWriter, err error, language string) {
	var transportErr *openai.TransportError
	if errors.As(err, &transportErr) {
		httputil.RespondErrorDetails(w, http.StatusBadGateway,
			i18n.ProviderMessage(language, openai.KindAPI), transportErr.Error())
		return
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		httputil.RespondErrorDetails(w, status,
			i18n.ProviderMessage(language, apiErr.Kind), apiErr.Message)
		return
	}

	httputil.RespondErrorDetails(w, http.StatusInternalServerError,
		i18n.ProviderMessage(language, openai.KindAPI), "")
}
