package services

import (
	"context"
	"errors"
	"testing"

	api_models "virtualagent-backend/internal/models"
)

type fakeImporter struct {
	title   string
	content string
	err     error

	lastSecret string
	lastPageID string
}

func (f *fakeImporter) ImportPage(ctx context.Context, integrationSecret, pageID string) (string, string, error) {
	f.lastSecret = integrationSecret
	f.lastPageID = pageID
	if f.err != nil {
		return "", "", f.err
	}
	return f.title, f.content, nil
}

func TestKnowledgeService_CreateValidation(t *testing.T) {
	t.Parallel()

	svc := NewKnowledgeService(&fakeStore{}, nil)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, api_models.CreateKnowledgeItemRequest{Content: "body"})
	if !errors.Is(err, ErrKnowledgeValidation) {
		t.Fatalf("missing title: err = %v, want ErrKnowledgeValidation", err)
	}

	_, err = svc.CreateItem(ctx, api_models.CreateKnowledgeItemRequest{Title: "Pricing"})
	if !errors.Is(err, ErrKnowledgeValidation) {
		t.Fatalf("no content or file: err = %v, want ErrKnowledgeValidation", err)
	}

	item, err := svc.CreateItem(ctx, api_models.CreateKnowledgeItemRequest{Title: "Brochure", FileURL: "https://cdn.example.com/brochure.pdf", FileType: "pdf"})
	if err != nil {
		t.Fatalf("file-only item: %v", err)
	}
	if item.FileURL == "" {
		t.Fatal("file URL was dropped")
	}
}

func TestKnowledgeService_ImportFromNotion(t *testing.T) {
	t.Parallel()

	s := &fakeStore{}
	importer := &fakeImporter{title: "Onboarding guide", content: "Step one."}
	svc := NewKnowledgeService(s, importer)

	item, err := svc.ImportFromNotion(context.Background(), api_models.ImportNotionRequest{
		PageID:            "page-123",
		IntegrationSecret: "secret_abc",
	})
	if err != nil {
		t.Fatalf("ImportFromNotion: %v", err)
	}
	if item.Title != "Onboarding guide" || item.Content != "Step one." {
		t.Fatalf("item = %+v", item)
	}
	if item.FileType != "notion" {
		t.Fatalf("file type = %q, want notion", item.FileType)
	}
	if importer.lastSecret != "secret_abc" || importer.lastPageID != "page-123" {
		t.Fatalf("importer called with (%q, %q)", importer.lastSecret, importer.lastPageID)
	}
	if len(s.knowledge) != 1 {
		t.Fatal("imported item was not stored")
	}
}

func TestKnowledgeService_ImportTitleOverride(t *testing.T) {
	t.Parallel()

	importer := &fakeImporter{title: "Untitled", content: "Body."}
	svc := NewKnowledgeService(&fakeStore{}, importer)

	item, err := svc.ImportFromNotion(context.Background(), api_models.ImportNotionRequest{
		PageID:            "page-123",
		IntegrationSecret: "secret_abc",
		Title:             "Renamed",
	})
	if err != nil {
		t.Fatalf("ImportFromNotion: %v", err)
	}
	if item.Title != "Renamed" {
		t.Fatalf("title = %q, want caller override", item.Title)
	}
}

func TestKnowledgeService_ImportFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	noImporter := NewKnowledgeService(&fakeStore{}, nil)
	_, err := noImporter.ImportFromNotion(ctx, api_models.ImportNotionRequest{PageID: "p", IntegrationSecret: "s"})
	if !errors.Is(err, ErrImportFailed) {
		t.Fatalf("nil importer: err = %v, want ErrImportFailed", err)
	}

	svc := NewKnowledgeService(&fakeStore{}, &fakeImporter{err: errors.New("notion rejected the integration secret")})
	_, err = svc.ImportFromNotion(ctx, api_models.ImportNotionRequest{PageID: "p", IntegrationSecret: "s"})
	if !errors.Is(err, ErrImportFailed) {
		t.Fatalf("importer error: err = %v, want ErrImportFailed", err)
	}

	empty := NewKnowledgeService(&fakeStore{}, &fakeImporter{title: "Empty page", content: "  "})
	_, err = empty.ImportFromNotion(ctx, api_models.ImportNotionRequest{PageID: "p", IntegrationSecret: "s"})
	if !errors.Is(err, ErrImportFailed) {
		t.Fatalf("empty page: err = %v, want ErrImportFailed", err)
	}

	_, err = svc.ImportFromNotion(ctx, api_models.ImportNotionRequest{PageID: "p"})
	if !errors.Is(err, ErrKnowledgeValidation) {
		t.Fatalf("missing secret: err = %v, want ErrKnowledgeValidation", err)
	}
}
