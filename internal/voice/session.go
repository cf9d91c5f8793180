// Package voice implements the client side of the voice conversation loop:
// the session transcript, turn controller, silence detection, retry policy
// and the avatar animation heuristic.
package voice

import (
	"sync"

	"virtualagent-backend/internal/models"
)

// Session is the transcript of one conversation. A completed turn appends
// exactly one user message and one assistant message, atomically, so the
// history never holds a user message without its reply.
type Session struct {
	mu       sync.Mutex
	messages []models.Message
	language string
	context  string
}

// NewSession creates an empty Session.
func NewSession(language, userContext string) *Session {
	return &Session{
		language: language,
		context:  userContext,
	}
}

// AppendTurn records a completed exchange.
func (s *Session) AppendTurn(user, assistant models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, user, assistant)
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len reports the number of messages in the transcript.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Language reports the conversation language code.
func (s *Session) Language() string {
	return s.language
}

// UserContext reports the per-session visitor context.
func (s *Session) UserContext() string {
	return s.context
}

// Reset clears the transcript.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}
