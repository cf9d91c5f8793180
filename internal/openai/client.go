// Package openai is a thin client for the LLM/speech provider API: chat
// completion, speech synthesis, and transcription. It attaches the
// caller-supplied key per request and normalizes provider failures into
// *Error values; all retry policy lives in the caller.
package openai

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
	defaultChatModel      = "gpt-4o-mini"
	defaultVoice          = "alloy"
	transcriptionModel    = "whisper-1"
	speechResponseFormat  = "mp3"
	defaultRequestTimeout = 60 * time.Second
)

// Client talks to the provider's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a provider client for the given base URL
// (e.g. https://api.openai.com/v1).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

// --- Chat Completion ---

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []chatCompletionMessage `json:"messages"`
	Temperature float64                 `json:"temperature"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
	} `json:"choices"`
	Usage models.Usage `json:"usage"`
}

// ChatResult is the normalized outcome of one completion call.
type ChatResult struct {
	Content string
	Model   string
	Usage   models.Usage
}

// ChatCompletion runs one completion over the given history. A non-empty
// systemPrompt is prepended as a system message.
func (c *Client) ChatCompletion(ctx context.Context, apiKey string, messages []models.Message, systemPrompt, model string, temperature float64) (*ChatResult, error) {
	if model == "" {
		model = defaultChatModel
	}

	reqBody := chatCompletionRequest{
		Model:       model,
		Temperature: temperature,
	}
	if systemPrompt != "" {
		reqBody.Messages = append(reqBody.Messages, chatCompletionMessage{Role: "system", Content: systemPrompt})
	}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, chatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "chat completion", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, &Error{Kind: KindAPI, StatusCode: resp.StatusCode, Message: "provider returned no choices"}
	}

	return &ChatResult{
		Content: parsed.Choices[0].Message.Content,
		Model:   parsed.Model,
		Usage:   parsed.Usage,
	}, nil
}

// --- Speech Synthesis ---

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// Synthesize converts text to MP3 audio with a fixed voice and format.
func (c *Client) Synthesize(ctx context.Context, apiKey, text, voice string) ([]byte, error) {
	if voice == "" {
		voice = defaultVoice
	}

	payload, err := json.Marshal(speechRequest{
		Model:          "tts-1",
		Input:          text,
		Voice:          voice,
		ResponseFormat: speechResponseFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/speech", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build speech request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "speech synthesis", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read speech response: %w", err)
	}

	return audio, nil
}

// --- Transcription ---

type transcriptionResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// TranscriptResult is the normalized outcome of one transcription call.
type TranscriptResult struct {
	Text     string
	Language string
}

// Transcribe converts audio to text. The upload's MIME type is inferred
// from the filename extension by the multipart writer on the provider side.
func (c *Client) Transcribe(ctx context.Context, apiKey, filename string, audio []byte, language string) (*TranscriptResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create multipart file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("write multipart file: %w", err)
	}
	if err := writer.WriteField("model", transcriptionModel); err != nil {
		return nil, fmt.Errorf("write model field: %w", err)
	}
	if language != "" {
		if err := writer.WriteField("language", language); err != nil {
			return nil, fmt.Errorf("write language field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return nil, fmt.Errorf("build transcription request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "transcription", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}

	var parsed transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode transcription response: %w", err)
	}

	return &TranscriptResult{Text: parsed.Text, Language: parsed.Language}, nil
}

// --- Error extraction ---

type providerErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// errorFromResponse reads a non-200 provider response into a canonical
// *Error. The body is bounded; provider error payloads are small.
func (c *Client) errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	message := strings.TrimSpace(string(raw))
	var parsed providerErrorBody
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error.Message != "" {
		message = parsed.Error.Message
	}

	kind := kindFromStatus(resp.StatusCode)
	// The provider reports exhausted credit as 429 with a quota code;
	// surface it as a payment problem, not a rate limit.
	if kind == KindRateLimit && parsed.Error.Code == "insufficient_quota" {
		kind = KindPayment
	}

	return &Error{
		Kind:       kind,
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}
