package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"virtualagent-backend/internal/models"
	"virtualagent-backend/internal/openai"
	"virtualagent-backend/pkg/httputil"
)

const (
	// Whisper rejects uploads above 25MB; enforce it here so oversized
	// recordings fail fast without an upstream round trip.
	maxTranscribeBytes = 25 << 20
	// Recordings shorter than this are header-only blobs with no speech.
	minTranscribeBytes = 1000
)

// TranscribeProvider defines the transcription call expected from the
// provider client.
type TranscribeProvider interface {
	Transcribe(ctx context.Context, apiKey, filename string, audio []byte, language string) (*openai.TranscriptResult, error)
}

type TranscribeHandler struct {
	provider TranscribeProvider
	keys     ProviderKeySource
}

func NewTranscribeHandler(provider TranscribeProvider, keys ProviderKeySource) *TranscribeHandler {
	return &TranscribeHandler{
		provider: provider,
		keys:     keys,
	}
}

// HandleTranscribe handles POST /api/transcribe (multipart: "audio" file
// plus optional "language" and "apiKey" fields).
func (h *TranscribeHandler) HandleTranscribe(w http.ResponseWriter, r *http.Request) {
	// Cap the wire body before parsing so an oversized upload is cut off
	// instead of spooled to disk and rejected afterwards. The slack covers
	// multipart boundaries and the small form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxTranscribeBytes+(1<<20))

	if err := r.ParseMultipartForm(maxTranscribeBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "Audio file exceeds 25MB limit")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Missing audio file")
		return
	}
	defer file.Close()

	if header.Size > maxTranscribeBytes {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "Audio file exceeds 25MB limit")
		return
	}

	audio, err := io.ReadAll(io.LimitReader(file, maxTranscribeBytes+1))
	if err != nil {
		log.Printf("ERROR [TranscribeHandler] HandleTranscribe: Failed to read upload: %v", err)
		httputil.RespondError(w, http.StatusBadRequest, "Failed to read audio file")
		return
	}
	if len(audio) > maxTranscribeBytes {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "Audio file exceeds 25MB limit")
		return
	}
	if len(audio) < minTranscribeBytes {
		httputil.RespondError(w, http.StatusBadRequest, "Audio file too short to contain speech")
		return
	}

	apiKey, err := resolveAPIKey(r.Context(), r.FormValue("apiKey"), h.keys)
	if err != nil {
		log.Printf("ERROR [TranscribeHandler] HandleTranscribe: Key resolution failed: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to resolve provider credentials")
		return
	}
	if apiKey == "" {
		httputil.RespondError(w, http.StatusBadRequest, "No API key configured")
		return
	}

	language := r.FormValue("language")

	result, err := h.provider.Transcribe(r.Context(), apiKey, header.Filename, audio, language)
	if err != nil {
		log.Printf("ERROR [TranscribeHandler] HandleTranscribe: Provider call failed: %v", err)
		respondProviderError(w, err, language)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.TranscribeResponse{
		Transcript: result.Text,
		Language:   result.Language,
		Success:    true,
	})
}
