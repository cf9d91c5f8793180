package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"virtualagent-backend/internal/store"
)

// PromptService assembles the system prompt sent with every chat completion:
// the agent persona, then the knowledge base, registered feeds, tool
// definitions and any per-session user context.
type PromptService struct {
	store store.Store
}

// NewPromptService creates a new PromptService.
func NewPromptService(s store.Store) *PromptService {
	return &PromptService{store: s}
}

// BuildSystemPrompt renders the full system prompt. Sections with no data are
// omitted entirely rather than rendered empty.
func (s *PromptService) BuildSystemPrompt(ctx context.Context, userContext, language string) (string, error) {
	cfg, err := s.store.GetAgentConfig(ctx)
	if err != nil {
		log.Printf("ERROR [PromptService] BuildSystemPrompt: Failed to load agent config: %v", err)
		return "", fmt.Errorf("failed to load agent config: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a virtual assistant.\n", cfg.Name)
	if cfg.Mission != "" {
		fmt.Fprintf(&b, "\nYour mission: %s\n", cfg.Mission)
	}
	if cfg.Personality != "" {
		fmt.Fprintf(&b, "\nYour personality: %s\n", cfg.Personality)
	}

	switch language {
	case "fr":
		b.WriteString("\nRespond in French.\n")
	case "", "en":
		b.WriteString("\nRespond in English.\n")
	default:
		fmt.Fprintf(&b, "\nRespond in the language with code %q.\n", language)
	}

	b.WriteString("\nKeep answers short and conversational; they will be spoken aloud.\n")

	items, err := s.store.ListKnowledgeItems(ctx)
	if err != nil {
		log.Printf("ERROR [PromptService] BuildSystemPrompt: Failed to load knowledge base: %v", err)
		return "", fmt.Errorf("failed to load knowledge base: %w", err)
	}
	if len(items) > 0 {
		b.WriteString("\n## Knowledge base\n")
		for _, item := range items {
			fmt.Fprintf(&b, "\n### %s\n%s\n", item.Title, item.Content)
		}
	}

	feeds, err := s.store.ListRSSFeeds(ctx)
	if err != nil {
		log.Printf("ERROR [PromptService] BuildSystemPrompt: Failed to load rss feeds: %v", err)
		return "", fmt.Errorf("failed to load rss feeds: %w", err)
	}
	activeFeeds := 0
	for _, f := range feeds {
		if f.IsActive {
			activeFeeds++
		}
	}
	if activeFeeds > 0 {
		b.WriteString("\n## News sources you can mention\n")
		for _, f := range feeds {
			if f.IsActive {
				fmt.Fprintf(&b, "- %s (%s)\n", f.Name, f.URL)
			}
		}
	}

	tools, err := s.store.ListAPITools(ctx)
	if err != nil {
		log.Printf("ERROR [PromptService] BuildSystemPrompt: Failed to load api tools: %v", err)
		return "", fmt.Errorf("failed to load api tools: %w", err)
	}
	activeTools := 0
	for _, t := range tools {
		if t.IsActive {
			activeTools++
		}
	}
	if activeTools > 0 {
		b.WriteString("\n## Available external services\n")
		for _, t := range tools {
			if t.IsActive {
				fmt.Fprintf(&b, "- %s (%s)\n", t.Name, t.URL)
			}
		}
	}

	if strings.TrimSpace(userContext) != "" {
		fmt.Fprintf(&b, "\n## About the current user\n%s\n", userContext)
	}

	return b.String(), nil
}
