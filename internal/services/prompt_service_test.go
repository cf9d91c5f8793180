package services

import (
	"context"
	"strings"
	"testing"

	db_models "virtualagent-backend/internal/models"

	"github.com/google/uuid"
)

func promptFixtureStore() *fakeStore {
	return &fakeStore{
		agentConfig: &db_models.AgentConfig{
			ID:          uuid.New(),
			Name:        "Eva",
			Mission:     "Help visitors discover our products.",
			Personality: "Warm and concise.",
		},
		knowledge: []db_models.KnowledgeItem{
			{ID: uuid.New(), Title: "Pricing", Content: "Plans start at 9 euros."},
		},
		rssFeeds: []db_models.RSSFeed{
			{ID: uuid.New(), Name: "Company blog", URL: "https://example.com/feed", IsActive: true},
			{ID: uuid.New(), Name: "Old feed", URL: "https://example.com/old", IsActive: false},
		},
		apiTools: []db_models.APITool{
			{ID: uuid.New(), Name: "Booking", URL: "https://example.com/book", IsActive: true},
			{ID: uuid.New(), Name: "Legacy CRM", URL: "https://example.com/crm", IsActive: false},
		},
	}
}

func TestBuildSystemPrompt_AllSections(t *testing.T) {
	t.Parallel()

	svc := NewPromptService(promptFixtureStore())

	prompt, err := svc.BuildSystemPrompt(context.Background(), "Visitor is a returning customer.", "en")
	if err != nil {
		t.Fatalf("BuildSystemPrompt: %v", err)
	}

	for _, want := range []string{
		"You are Eva, a virtual assistant.",
		"Your mission: Help visitors discover our products.",
		"Your personality: Warm and concise.",
		"Respond in English.",
		"spoken aloud",
		"## Knowledge base",
		"### Pricing\nPlans start at 9 euros.",
		"## News sources you can mention",
		"- Company blog (https://example.com/feed)",
		"## Available external services",
		"- Booking (https://example.com/book)",
		"## About the current user\nVisitor is a returning customer.",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}

	for _, absent := range []string{"Old feed", "Legacy CRM"} {
		if strings.Contains(prompt, absent) {
			t.Fatalf("prompt includes inactive entry %q", absent)
		}
	}
}

func TestBuildSystemPrompt_EmptySectionsOmitted(t *testing.T) {
	t.Parallel()

	s := &fakeStore{agentConfig: &db_models.AgentConfig{ID: uuid.New(), Name: "Eva"}}
	svc := NewPromptService(s)

	prompt, err := svc.BuildSystemPrompt(context.Background(), "", "en")
	if err != nil {
		t.Fatalf("BuildSystemPrompt: %v", err)
	}

	for _, absent := range []string{"## Knowledge base", "## News sources", "## Available external services", "## About the current user", "Your mission", "Your personality"} {
		if strings.Contains(prompt, absent) {
			t.Fatalf("prompt includes empty section %q:\n%s", absent, prompt)
		}
	}
}

func TestBuildSystemPrompt_LanguageDirective(t *testing.T) {
	t.Parallel()

	s := &fakeStore{agentConfig: &db_models.AgentConfig{ID: uuid.New(), Name: "Eva"}}
	svc := NewPromptService(s)

	cases := []struct {
		language string
		want     string
	}{
		{"fr", "Respond in French."},
		{"en", "Respond in English."},
		{"", "Respond in English."},
		{"de", `Respond in the language with code "de".`},
	}
	for _, tc := range cases {
		prompt, err := svc.BuildSystemPrompt(context.Background(), "", tc.language)
		if err != nil {
			t.Fatalf("BuildSystemPrompt(%q): %v", tc.language, err)
		}
		if !strings.Contains(prompt, tc.want) {
			t.Fatalf("prompt for %q missing %q", tc.language, tc.want)
		}
	}
}
