package voice

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"virtualagent-backend/internal/models"
	"virtualagent-backend/pkg/agentclient"
)

// State is the phase of the conversation loop.
type State string

const (
	StateIdle      State = "idle"
	StateListening State = "listening"
	StateThinking  State = "thinking"
	StateSpeaking  State = "speaking"
)

const (
	// Recordings below this size hold no usable speech (a WAV header and
	// a handful of frames) and are never submitted upstream.
	minAudioBytes = 1000
)

var (
	ErrConversationDisabled = errors.New("conversation mode is disabled")
	ErrAudioTooShort        = errors.New("recording too short to contain speech")
	ErrEmptyTranscript      = errors.New("transcription produced no text")
	ErrTurnStopped          = errors.New("turn stopped")
)

// BackendClient defines the calls the turn controller makes against the
// backend.
type BackendClient interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	Speech(ctx context.Context, req models.SpeechRequest) ([]byte, error)
	Transcribe(ctx context.Context, filename string, audio []byte, language string) (*models.TranscribeResponse, error)
}

// TurnControllerOptions configures a TurnController. All callbacks are
// optional.
type TurnControllerOptions struct {
	// OnState is called on every state transition.
	OnState func(State)
	// OnReply is called with the assistant's text and the animation clip
	// chosen for it, before playback starts.
	OnReply func(text string, animation Animation)
	// Play receives the synthesized reply audio and blocks until playback
	// finishes.
	Play func(ctx context.Context, audio []byte) error
}

// TurnController runs the listen -> think -> speak loop for one session.
// It is safe for one goroutine to submit audio while another calls Stop.
type TurnController struct {
	client  BackendClient
	session *Session
	opts    TurnControllerOptions

	mu      sync.Mutex
	state   State
	enabled bool
	stopped bool
}

// NewTurnController creates a controller in the idle state. Call Start
// before submitting audio.
func NewTurnController(client BackendClient, session *Session, opts TurnControllerOptions) *TurnController {
	return &TurnController{
		client:  client,
		session: session,
		opts:    opts,
		state:   StateIdle,
	}
}

// Start enables conversation mode and moves to listening.
func (c *TurnController) Start() {
	c.mu.Lock()
	c.enabled = true
	c.stopped = false
	c.mu.Unlock()
	c.setState(StateListening)
}

// Stop ends the current turn at the next stage boundary and returns the
// controller to idle. A reply that is still in flight is discarded: nothing
// from a stopped turn reaches the transcript.
func (c *TurnController) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.enabled = false
	c.mu.Unlock()
	c.setState(StateIdle)
}

// State reports the current phase.
func (c *TurnController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Enabled reports whether conversation mode is active.
func (c *TurnController) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *TurnController) setState(s State) {
	c.mu.Lock()
	c.state = s
	cb := c.opts.OnState
	c.mu.Unlock()
	if cb != nil {
		cb(s)
	}
}

func (c *TurnController) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

func (c *TurnController) disable() {
	c.mu.Lock()
	c.enabled = false
	c.mu.Unlock()
	c.setState(StateIdle)
}

// SubmitAudio runs one full turn from a finished recording. On success the
// transcript gains exactly one user message and one assistant message.
// Failures follow the retry table: authentication failures disable
// conversation mode, rate limits wait and retry the same call, and anything
// unrecoverable aborts the turn while leaving the conversation running.
func (c *TurnController) SubmitAudio(ctx context.Context, audio []byte) error {
	c.mu.Lock()
	if !c.enabled {
		c.mu.Unlock()
		return ErrConversationDisabled
	}
	c.mu.Unlock()

	if len(audio) < minAudioBytes {
		c.setState(StateListening)
		return ErrAudioTooShort
	}

	c.setState(StateThinking)

	var transcript *models.TranscribeResponse
	err := c.callWithPolicy(ctx, func() error {
		var err error
		transcript, err = c.client.Transcribe(ctx, "recording.wav", audio, c.session.Language())
		return err
	})
	if err != nil {
		return c.failTurn(err)
	}
	if c.isStopped() {
		return ErrTurnStopped
	}
	if strings.TrimSpace(transcript.Transcript) == "" {
		c.setState(StateListening)
		return ErrEmptyTranscript
	}

	userMsg := models.Message{
		Role:      "user",
		Content:   transcript.Transcript,
		Timestamp: time.Now().UTC(),
	}

	var reply *models.ChatResponse
	err = c.callWithPolicy(ctx, func() error {
		var err error
		reply, err = c.client.Chat(ctx, models.ChatRequest{
			Messages:    append(c.session.Messages(), userMsg),
			UserContext: c.session.UserContext(),
			Language:    c.session.Language(),
		})
		return err
	})
	if err != nil {
		return c.failTurn(err)
	}
	if c.isStopped() {
		return ErrTurnStopped
	}

	assistantMsg := models.Message{
		Role:      "assistant",
		Content:   reply.Response,
		Timestamp: time.Now().UTC(),
	}
	c.session.AppendTurn(userMsg, assistantMsg)

	if c.opts.OnReply != nil {
		c.opts.OnReply(reply.Response, AnimationForReply(reply.Response))
	}

	var speech []byte
	err = c.callWithPolicy(ctx, func() error {
		var err error
		speech, err = c.client.Speech(ctx, models.SpeechRequest{
			Text:     reply.Response,
			Language: c.session.Language(),
		})
		return err
	})
	if err != nil {
		// The exchange is already recorded; losing audio output is not
		// worth losing the turn.
		log.Printf("ERROR [TurnController] SubmitAudio: Speech synthesis failed: %v", err)
		c.setState(StateListening)
		return nil
	}
	if c.isStopped() {
		return ErrTurnStopped
	}

	c.setState(StateSpeaking)
	if c.opts.Play != nil {
		if err := c.opts.Play(ctx, speech); err != nil {
			log.Printf("ERROR [TurnController] SubmitAudio: Playback failed: %v", err)
		}
	}
	if c.isStopped() {
		return ErrTurnStopped
	}

	c.setState(StateListening)
	return nil
}

// failTurn applies the terminal policy for an error that survived retries.
func (c *TurnController) failTurn(err error) error {
	if c.isStopped() {
		return ErrTurnStopped
	}
	if PolicyFor(err).Action == ActionDisable {
		log.Printf("ERROR [TurnController] Disabling conversation mode: %v", err)
		c.disable()
		return err
	}
	c.setState(StateListening)
	return err
}

// callWithPolicy runs op, consulting the retry table on failure. Retried
// calls repeat with identical input so no user message is duplicated.
func (c *TurnController) callWithPolicy(ctx context.Context, op func() error) error {
	attempt := 0
	for {
		if c.isStopped() {
			return ErrTurnStopped
		}

		err := op()
		if err == nil {
			return nil
		}

		policy := PolicyFor(err)
		if policy.Action != ActionRetry {
			return err
		}
		attempt++
		if attempt >= policy.MaxAttempts {
			return err
		}

		log.Printf("[TurnController] %s failure, retrying in %s (attempt %d/%d): %v",
			agentclient.KindOf(err), policy.Delay, attempt+1, policy.MaxAttempts, err)

		select {
		case <-ctx.Done():
			return err
		case <-time.After(policy.Delay):
		}
	}
}
