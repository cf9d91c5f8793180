package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"virtualagent-backend/internal/models"
	"virtualagent-backend/internal/openai"
)

type fakeApplier struct {
	rewritten string
	err       error
}

func (f *fakeApplier) ApplyAll(ctx context.Context, text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.rewritten, nil
}

func TestHandleSpeech_ServesMP3Attachment(t *testing.T) {
	t.Parallel()

	audio := []byte("ID3mp3-bytes")
	provider := &fakeProvider{speechAudio: audio}
	keys := &fakeKeySource{key: "sk-stored", voice: "nova"}
	h := NewSpeechHandler(provider, keys, nil)

	rr := postJSON(t, h.HandleSpeech, models.SpeechRequest{Text: "Bonjour"})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Fatalf("Content-Type = %q", got)
	}
	if got := rr.Header().Get("Content-Disposition"); got != `attachment; filename="speech.mp3"` {
		t.Fatalf("Content-Disposition = %q", got)
	}
	if got := rr.Header().Get("Content-Length"); got != "12" {
		t.Fatalf("Content-Length = %q", got)
	}
	if rr.Body.String() != string(audio) {
		t.Fatal("response body is not the synthesized audio")
	}
	if provider.lastVoice != "nova" {
		t.Fatalf("voice = %q, want stored default", provider.lastVoice)
	}
}

func TestHandleSpeech_PronunciationsApplied(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{speechAudio: []byte("x")}
	h := NewSpeechHandler(provider, &fakeKeySource{key: "sk"}, &fakeApplier{rewritten: "ay eye assistant"})

	rr := postJSON(t, h.HandleSpeech, models.SpeechRequest{Text: "AI assistant", Voice: "alloy"})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if provider.lastText != "ay eye assistant" {
		t.Fatalf("synthesized %q, want rewritten text", provider.lastText)
	}
}

func TestHandleSpeech_PronunciationFailureFallsBackToRawText(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{speechAudio: []byte("x")}
	h := NewSpeechHandler(provider, &fakeKeySource{key: "sk"}, &fakeApplier{err: errors.New("db down")})

	rr := postJSON(t, h.HandleSpeech, models.SpeechRequest{Text: "AI assistant", Voice: "alloy"})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite rewrite failure", rr.Code)
	}
	if provider.lastText != "AI assistant" {
		t.Fatalf("synthesized %q, want original text", provider.lastText)
	}
}

func TestHandleSpeech_EmptyAndOversizeText(t *testing.T) {
	t.Parallel()

	h := NewSpeechHandler(&fakeProvider{}, &fakeKeySource{key: "sk"}, nil)

	rr := postJSON(t, h.HandleSpeech, models.SpeechRequest{Text: ""})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("empty text: status = %d, want 400", rr.Code)
	}

	rr = postJSON(t, h.HandleSpeech, models.SpeechRequest{Text: strings.Repeat("a", maxSpeechTextLength+1)})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("oversize text: status = %d, want 400", rr.Code)
	}
}

func TestHandleSpeech_ProviderErrorEnvelope(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{speechErr: &openai.Error{
		Kind:       openai.KindPayment,
		StatusCode: http.StatusPaymentRequired,
		Message:    "insufficient_quota",
	}}
	h := NewSpeechHandler(provider, &fakeKeySource{key: "sk"}, nil)

	rr := postJSON(t, h.HandleSpeech, models.SpeechRequest{Text: "hello", Voice: "alloy", Language: "fr"})

	if rr.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402 passed through", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want JSON error envelope", ct)
	}
	env := decodeError(t, rr)
	if env.Details != "insufficient_quota" {
		t.Fatalf("details = %q, want provider message", env.Details)
	}
	if env.Error == "" || env.Error == "insufficient_quota" {
		t.Fatalf("error = %q, want localized message", env.Error)
	}
}
