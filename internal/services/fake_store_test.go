package services

import (
	"context"
	"time"

	db_models "virtualagent-backend/internal/models"
	"virtualagent-backend/internal/store"

	"github.com/google/uuid"
)

// fakeStore is an in-memory store.Store. Slices keep insertion order so list
// assertions are deterministic. A non-nil forcedErr is returned from every
// method to exercise error paths.
type fakeStore struct {
	forcedErr error

	adminUsers     []db_models.AdminUser
	agentConfig    *db_models.AgentConfig
	brandConfig    *db_models.BrandConfig
	advisors       []db_models.Advisor
	knowledge      []db_models.KnowledgeItem
	rssFeeds       []db_models.RSSFeed
	apiTools       []db_models.APITool
	pronunciations []db_models.Pronunciation
	conversations  []db_models.Conversation
}

var _ store.Store = (*fakeStore)(nil)

func (f *fakeStore) GetAdminUserByEmail(ctx context.Context, email string) (*db_models.AdminUser, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	for i := range f.adminUsers {
		if f.adminUsers[i].Email == email {
			u := f.adminUsers[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) CreateAdminUser(ctx context.Context, user *db_models.AdminUser) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	f.adminUsers = append(f.adminUsers, *user)
	return nil
}

func (f *fakeStore) GetAgentConfig(ctx context.Context) (*db_models.AgentConfig, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	if f.agentConfig == nil {
		return nil, store.ErrNotFound
	}
	cfg := *f.agentConfig
	return &cfg, nil
}

func (f *fakeStore) CreateAgentConfig(ctx context.Context, cfg *db_models.AgentConfig) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	c := *cfg
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.agentConfig = &c
	return nil
}

func (f *fakeStore) UpdateAgentConfig(ctx context.Context, arg store.UpdateAgentConfigParams) (*db_models.AgentConfig, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	if f.agentConfig == nil || f.agentConfig.ID != arg.ID {
		return nil, store.ErrNotFound
	}
	cfg := f.agentConfig
	if arg.Name != nil {
		cfg.Name = *arg.Name
	}
	if arg.Mission != nil {
		cfg.Mission = *arg.Mission
	}
	if arg.Personality != nil {
		cfg.Personality = *arg.Personality
	}
	if arg.EncryptedAPIKey != nil {
		cfg.EncryptedAPIKey = arg.EncryptedAPIKey
	}
	if arg.Model != nil {
		cfg.Model = *arg.Model
	}
	if arg.Temperature != nil {
		cfg.Temperature = *arg.Temperature
	}
	if arg.Voice != nil {
		cfg.Voice = *arg.Voice
	}
	if arg.AvatarURL != nil {
		cfg.AvatarURL = *arg.AvatarURL
	}
	if arg.AvatarTransform != nil {
		cfg.AvatarTransform = arg.AvatarTransform
	}
	cfg.UpdatedAt = time.Now()
	out := *cfg
	return &out, nil
}

func (f *fakeStore) GetBrandConfig(ctx context.Context) (*db_models.BrandConfig, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	if f.brandConfig == nil {
		return nil, store.ErrNotFound
	}
	cfg := *f.brandConfig
	return &cfg, nil
}

func (f *fakeStore) CreateBrandConfig(ctx context.Context, cfg *db_models.BrandConfig) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	c := *cfg
	f.brandConfig = &c
	return nil
}

func (f *fakeStore) UpdateBrandConfig(ctx context.Context, arg store.UpdateBrandConfigParams) (*db_models.BrandConfig, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	if f.brandConfig == nil || f.brandConfig.ID != arg.ID {
		return nil, store.ErrNotFound
	}
	cfg := f.brandConfig
	if arg.LogoURL != nil {
		cfg.LogoURL = *arg.LogoURL
	}
	if arg.LogoSmallURL != nil {
		cfg.LogoSmallURL = *arg.LogoSmallURL
	}
	if arg.HelpText != nil {
		cfg.HelpText = *arg.HelpText
	}
	if arg.InfoTitle != nil {
		cfg.InfoTitle = *arg.InfoTitle
	}
	if arg.InfoContent != nil {
		cfg.InfoContent = *arg.InfoContent
	}
	if arg.InfoMediaURL != nil {
		cfg.InfoMediaURL = *arg.InfoMediaURL
	}
	cfg.UpdatedAt = time.Now()
	out := *cfg
	return &out, nil
}

func (f *fakeStore) CreateAdvisor(ctx context.Context, arg store.CreateAdvisorParams) (*db_models.Advisor, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	a := db_models.Advisor{
		ID:        arg.ID,
		FirstName: arg.FirstName,
		LastName:  arg.LastName,
		Email:     arg.Email,
		Phone:     arg.Phone,
		PhotoURL:  arg.PhotoURL,
		Position:  arg.Position,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.advisors = append(f.advisors, a)
	return &a, nil
}

func (f *fakeStore) GetAdvisorByID(ctx context.Context, id uuid.UUID) (*db_models.Advisor, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	for i := range f.advisors {
		if f.advisors[i].ID == id {
			a := f.advisors[i]
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListAdvisors(ctx context.Context) ([]db_models.Advisor, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	return append([]db_models.Advisor(nil), f.advisors...), nil
}

func (f *fakeStore) UpdateAdvisor(ctx context.Context, arg store.UpdateAdvisorParams) (*db_models.Advisor, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	for i := range f.advisors {
		if f.advisors[i].ID != arg.ID {
			continue
		}
		a := &f.advisors[i]
		if arg.FirstName != nil {
			a.FirstName = *arg.FirstName
		}
		if arg.LastName != nil {
			a.LastName = *arg.LastName
		}
		if arg.Email != nil {
			a.Email = *arg.Email
		}
		if arg.Phone != nil {
			a.Phone = *arg.Phone
		}
		if arg.PhotoURL != nil {
			a.PhotoURL = *arg.PhotoURL
		}
		if arg.Position != nil {
			a.Position = *arg.Position
		}
		a.UpdatedAt = time.Now()
		out := *a
		return &out, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) DeleteAdvisor(ctx context.Context, id uuid.UUID) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for i := range f.advisors {
		if f.advisors[i].ID == id {
			f.advisors = append(f.advisors[:i], f.advisors[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) CreateKnowledgeItem(ctx context.Context, arg store.CreateKnowledgeItemParams) (*db_models.KnowledgeItem, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	k := db_models.KnowledgeItem{
		ID:        arg.ID,
		Title:     arg.Title,
		Content:   arg.Content,
		FileType:  arg.FileType,
		FileURL:   arg.FileURL,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.knowledge = append(f.knowledge, k)
	return &k, nil
}

func (f *fakeStore) GetKnowledgeItemByID(ctx context.Context, id uuid.UUID) (*db_models.KnowledgeItem, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	for i := range f.knowledge {
		if f.knowledge[i].ID == id {
			k := f.knowledge[i]
			return &k, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListKnowledgeItems(ctx context.Context) ([]db_models.KnowledgeItem, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	return append([]db_models.KnowledgeItem(nil), f.knowledge...), nil
}

func (f *fakeStore) DeleteKnowledgeItem(ctx context.Context, id uuid.UUID) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for i := range f.knowledge {
		if f.knowledge[i].ID == id {
			f.knowledge = append(f.knowledge[:i], f.knowledge[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) CreateRSSFeed(ctx context.Context, arg store.CreateRSSFeedParams) (*db_models.RSSFeed, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	feed := db_models.RSSFeed{
		ID:        arg.ID,
		Name:      arg.Name,
		URL:       arg.URL,
		IsActive:  arg.IsActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.rssFeeds = append(f.rssFeeds, feed)
	return &feed, nil
}

func (f *fakeStore) ListRSSFeeds(ctx context.Context) ([]db_models.RSSFeed, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	return append([]db_models.RSSFeed(nil), f.rssFeeds...), nil
}

func (f *fakeStore) DeleteRSSFeed(ctx context.Context, id uuid.UUID) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for i := range f.rssFeeds {
		if f.rssFeeds[i].ID == id {
			f.rssFeeds = append(f.rssFeeds[:i], f.rssFeeds[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) CreateAPITool(ctx context.Context, arg store.CreateAPIToolParams) (*db_models.APITool, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	tool := db_models.APITool{
		ID:        arg.ID,
		Name:      arg.Name,
		URL:       arg.URL,
		IsActive:  arg.IsActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.apiTools = append(f.apiTools, tool)
	return &tool, nil
}

func (f *fakeStore) ListAPITools(ctx context.Context) ([]db_models.APITool, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	return append([]db_models.APITool(nil), f.apiTools...), nil
}

func (f *fakeStore) DeleteAPITool(ctx context.Context, id uuid.UUID) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for i := range f.apiTools {
		if f.apiTools[i].ID == id {
			f.apiTools = append(f.apiTools[:i], f.apiTools[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) CreatePronunciation(ctx context.Context, arg store.CreatePronunciationParams) (*db_models.Pronunciation, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	p := db_models.Pronunciation{
		ID:            arg.ID,
		Word:          arg.Word,
		Pronunciation: arg.Pronunciation,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.pronunciations = append(f.pronunciations, p)
	return &p, nil
}

func (f *fakeStore) ListPronunciations(ctx context.Context) ([]db_models.Pronunciation, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	return append([]db_models.Pronunciation(nil), f.pronunciations...), nil
}

func (f *fakeStore) DeletePronunciation(ctx context.Context, id uuid.UUID) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	for i := range f.pronunciations {
		if f.pronunciations[i].ID == id {
			f.pronunciations = append(f.pronunciations[:i], f.pronunciations[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) CreateConversation(ctx context.Context, arg store.CreateConversationParams) (*db_models.Conversation, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	c := db_models.Conversation{
		ID:          arg.ID,
		Messages:    arg.Messages,
		Language:    arg.Language,
		UserContext: arg.UserContext,
		CreatedAt:   time.Now(),
	}
	f.conversations = append(f.conversations, c)
	return &c, nil
}

func (f *fakeStore) ListConversations(ctx context.Context, limit, offset int) ([]db_models.Conversation, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	if offset >= len(f.conversations) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.conversations) {
		end = len(f.conversations)
	}
	return append([]db_models.Conversation(nil), f.conversations[offset:end]...), nil
}
