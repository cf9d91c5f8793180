package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"virtualagent-backend/internal/models"
	"virtualagent-backend/pkg/httputil"
)

const maxSpeechTextLength = 4096

// SpeechProvider defines the synthesis call expected from the provider client.
type SpeechProvider interface {
	Synthesize(ctx context.Context, apiKey, text, voice string) ([]byte, error)
}

// PronunciationApplier rewrites text with the stored replacement pairs before
// synthesis.
type PronunciationApplier interface {
	ApplyAll(ctx context.Context, text string) (string, error)
}

type SpeechHandler struct {
	provider       SpeechProvider
	keys           ProviderKeySource
	pronunciations PronunciationApplier
}

func NewSpeechHandler(provider SpeechProvider, keys ProviderKeySource, pronunciations PronunciationApplier) *SpeechHandler {
	return &SpeechHandler{
		provider:       provider,
		keys:           keys,
		pronunciations: pronunciations,
	}
}

// HandleSpeech handles POST /api/speech. On success the response body is
// binary MP3, served as an attachment so browsers do not try to render it.
func (h *SpeechHandler) HandleSpeech(w http.ResponseWriter, r *http.Request) {
	var req models.SpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Text == "" {
		httputil.RespondError(w, http.StatusBadRequest, "text cannot be empty")
		return
	}
	if len(req.Text) > maxSpeechTextLength {
		httputil.RespondError(w, http.StatusBadRequest, "text exceeds maximum length")
		return
	}

	apiKey, err := resolveAPIKey(r.Context(), req.APIKey, h.keys)
	if err != nil {
		log.Printf("ERROR [SpeechHandler] HandleSpeech: Key resolution failed: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to resolve provider credentials")
		return
	}
	if apiKey == "" {
		httputil.RespondError(w, http.StatusBadRequest, "No API key configured")
		return
	}

	voice := req.Voice
	if voice == "" {
		_, _, storedVoice, err := h.keys.ModelSettings(r.Context())
		if err != nil {
			log.Printf("ERROR [SpeechHandler] HandleSpeech: Failed to load voice setting: %v", err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to load agent configuration")
			return
		}
		voice = storedVoice
	}

	text := req.Text
	if h.pronunciations != nil {
		text, err = h.pronunciations.ApplyAll(r.Context(), text)
		if err != nil {
			// Pronunciation failures never block speech; synthesize the raw text.
			log.Printf("ERROR [SpeechHandler] HandleSpeech: Pronunciation rewrite failed: %v", err)
			text = req.Text
		}
	}

	audio, err := h.provider.Synthesize(r.Context(), apiKey, text, voice)
	if err != nil {
		log.Printf("ERROR [SpeechHandler] HandleSpeech: Provider call failed: %v", err)
		respondProviderError(w, err, req.Language)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `attachment; filename="speech.mp3"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		log.Printf("ERROR [SpeechHandler] HandleSpeech: Failed to write audio response: %v", err)
	}
}
