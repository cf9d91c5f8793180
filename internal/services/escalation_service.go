package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"

	api_models "virtualagent-backend/internal/models"
	"virtualagent-backend/internal/store"
)

var ErrEscalationValidation = errors.New("escalation validation failed")

// EmailSender delivers a single HTML email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// AlertNotifier posts a short operational alert to a team channel.
type AlertNotifier interface {
	Notify(ctx context.Context, text string) error
}

// EscalationService hands a conversation over to a human advisor: it emails
// the advisor with the visitor's details and optionally pings a team channel.
type EscalationService struct {
	store          store.Store
	email          EmailSender
	notifier       AlertNotifier
	callWindowSecs int
}

// NewEscalationService creates a new EscalationService. notifier may be nil
// when no channel is configured.
func NewEscalationService(s store.Store, email EmailSender, notifier AlertNotifier, callWindowSecs int) *EscalationService {
	return &EscalationService{store: s, email: email, notifier: notifier, callWindowSecs: callWindowSecs}
}

// Escalate notifies the chosen advisor. The email failure is reported in the
// response rather than as an error so the visitor still gets the call window
// countdown.
func (s *EscalationService) Escalate(ctx context.Context, req api_models.EscalationRequest) (*api_models.EscalationResponse, error) {
	if strings.TrimSpace(req.UserName) == "" {
		return nil, fmt.Errorf("%w: user_name cannot be empty", ErrEscalationValidation)
	}

	advisor, err := s.store.GetAdvisorByID(ctx, req.AdvisorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAdvisorNotFound
		}
		log.Printf("ERROR [EscalationService] Escalate: Store call failed for advisor %s: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("failed to retrieve advisor: %w", err)
	}

	subject, body := escalationEmail(advisor.FirstName, req)

	emailSent := true
	if err := s.email.Send(ctx, advisor.Email, subject, body); err != nil {
		emailSent = false
		log.Printf("ERROR [EscalationService] Escalate: Email to %s failed: %v", advisor.Email, err)
	}

	if s.notifier != nil {
		text := fmt.Sprintf("Escalation: %s asked to speak with %s %s (email sent: %t)",
			req.UserName, advisor.FirstName, advisor.LastName, emailSent)
		if err := s.notifier.Notify(ctx, text); err != nil {
			log.Printf("ERROR [EscalationService] Escalate: Channel notification failed: %v", err)
		}
	}

	log.Printf("[EscalationService] Escalated to advisor %s %s (email sent: %t)", advisor.FirstName, advisor.LastName, emailSent)

	return &api_models.EscalationResponse{
		Success:           true,
		EmailSent:         emailSent,
		AdvisorName:       fmt.Sprintf("%s %s", advisor.FirstName, advisor.LastName),
		CallWindowSeconds: s.callWindowSecs,
	}, nil
}

func escalationEmail(advisorFirstName string, req api_models.EscalationRequest) (subject, body string) {
	name := html.EscapeString(req.UserName)
	email := html.EscapeString(req.UserEmail)
	context := html.EscapeString(req.UserContext)

	if req.Language == "fr" {
		subject = fmt.Sprintf("Un visiteur souhaite vous parler : %s", req.UserName)
		body = fmt.Sprintf(
			"<p>Bonjour %s,</p>"+
				"<p><strong>%s</strong> souhaite vous parler maintenant.</p>"+
				"<p>Email : %s</p>"+
				"<p>Contexte de la conversation :</p><blockquote>%s</blockquote>"+
				"<p>Le visiteur attend votre appel.</p>",
			html.EscapeString(advisorFirstName), name, email, context)
		return subject, body
	}

	subject = fmt.Sprintf("A visitor wants to talk to you: %s", req.UserName)
	body = fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p><strong>%s</strong> would like to speak with you now.</p>"+
			"<p>Email: %s</p>"+
			"<p>Conversation context:</p><blockquote>%s</blockquote>"+
			"<p>The visitor is waiting for your call.</p>",
		html.EscapeString(advisorFirstName), name, email, context)
	return subject, body
}
