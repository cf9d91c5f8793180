// Package agentclient is the Go client for the widget-facing endpoints:
// chat completion, speech synthesis and transcription. Transient transport
// failures are retried with capped exponential backoff; API errors are
// returned typed so callers can apply their own policy.
package agentclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"virtualagent-backend/internal/models"
)

const (
	defaultTimeout     = 90 * time.Second
	transportAttempts  = 3
	transportBaseDelay = 500 * time.Millisecond
	transportMaxDelay  = 4 * time.Second
)

// Client talks to one backend instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Chat calls POST /api/chat.
func (c *Client) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, "chat", func() (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Content-Type", "application/json")
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}

	var out models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	return &out, nil
}

// Speech calls POST /api/speech and returns the MP3 bytes.
func (c *Client) Speech(ctx context.Context, req models.SpeechRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode speech request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, "speech", func() (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/speech", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Content-Type", "application/json")
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "speech", Err: err}
	}
	return audio, nil
}

// Transcribe calls POST /api/transcribe with the recording as a multipart
// upload.
func (c *Client) Transcribe(ctx context.Context, filename string, audio []byte, language string) (*models.TranscribeResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("audio", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("failed to build multipart form: %w", err)
	}
	if language != "" {
		if err := mw.WriteField("language", language); err != nil {
			return nil, fmt.Errorf("failed to build multipart form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart form: %w", err)
	}
	formBody := buf.Bytes()
	contentType := mw.FormDataContentType()

	resp, err := c.doWithRetry(ctx, "transcribe", func() (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/transcribe", bytes.NewReader(formBody))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Content-Type", contentType)
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}

	var out models.TranscribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode transcribe response: %w", err)
	}
	return &out, nil
}

// doWithRetry retries transport-level failures only. HTTP responses of any
// status are returned to the caller untouched.
func (c *Client) doWithRetry(ctx context.Context, op string, build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error
	delay := transportBaseDelay

	for attempt := 0; attempt < transportAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, &TransportError{Op: op, Err: ctx.Err()}
			case <-time.After(delay):
			}
			delay *= 2
			if delay > transportMaxDelay {
				delay = transportMaxDelay
			}
		}

		req, err := build()
		if err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}

		resp, err := c.httpClient.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	return nil, &TransportError{Op: op, Err: lastErr}
}

func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var envelope models.ErrorResponse
	message := http.StatusText(resp.StatusCode)
	details := ""
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
		message = envelope.Error
		details = envelope.Details
	}

	return &APIError{
		Kind:       kindFromStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Message:    message,
		Details:    details,
	}
}
