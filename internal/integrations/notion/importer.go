package notion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"
)

// Importer pulls page content out of a Notion workspace using the caller's
// internal integration secret.
type Importer struct{}

// NewImporter creates a new Importer.
func NewImporter() *Importer {
	return &Importer{}
}

// ImportPage fetches a page's title and flattens its block tree into plain
// text. The integration secret is used for this request only.
func (i *Importer) ImportPage(ctx context.Context, integrationSecret, pageID string) (string, string, error) {
	client := notionapi.NewClient(notionapi.Token(integrationSecret))

	page, err := client.Page.Get(ctx, notionapi.PageID(pageID))
	if err != nil {
		var notionErr *notionapi.Error
		if errors.As(err, &notionErr) {
			if notionErr.Status == 401 {
				return "", "", fmt.Errorf("notion rejected the integration secret (unauthorized)")
			}
			return "", "", fmt.Errorf("notion API error (%s): %s", notionErr.Code, notionErr.Message)
		}
		return "", "", fmt.Errorf("failed to fetch page %s: %w", pageID, err)
	}

	title := pageTitle(page)
	if title == "" {
		title = "Untitled"
	}

	var b strings.Builder
	if err := i.appendBlocks(ctx, client, notionapi.BlockID(pageID), &b, 0); err != nil {
		return "", "", err
	}

	return title, strings.TrimSpace(b.String()), nil
}

func pageTitle(page *notionapi.Page) string {
	for _, prop := range page.Properties {
		if tp, ok := prop.(*notionapi.TitleProperty); ok {
			var parts []string
			for _, rt := range tp.Title {
				parts = append(parts, rt.PlainText)
			}
			return strings.Join(parts, "")
		}
	}
	return ""
}

// appendBlocks walks the block tree depth-first, two levels deep at most.
// That covers the lists and toggles people actually put in knowledge pages
// without risking unbounded recursion on pathological workspaces.
func (i *Importer) appendBlocks(ctx context.Context, client *notionapi.Client, parent notionapi.BlockID, b *strings.Builder, depth int) error {
	if depth > 2 {
		return nil
	}

	cursor := notionapi.Cursor("")
	for {
		resp, err := client.Block.GetChildren(ctx, parent, &notionapi.Pagination{StartCursor: cursor, PageSize: 100})
		if err != nil {
			return fmt.Errorf("failed to fetch blocks of %s: %w", parent, err)
		}

		for _, block := range resp.Results {
			text := blockText(block)
			if text != "" {
				b.WriteString(strings.Repeat("  ", depth))
				b.WriteString(text)
				b.WriteString("\n")
			}
			if block.GetHasChildren() {
				if err := i.appendBlocks(ctx, client, notionapi.BlockID(block.GetID()), b, depth+1); err != nil {
					return err
				}
			}
		}

		if !resp.HasMore {
			return nil
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}
}

func blockText(block notionapi.Block) string {
	switch bl := block.(type) {
	case *notionapi.ParagraphBlock:
		return richText(bl.Paragraph.RichText)
	case *notionapi.Heading1Block:
		return "# " + richText(bl.Heading1.RichText)
	case *notionapi.Heading2Block:
		return "## " + richText(bl.Heading2.RichText)
	case *notionapi.Heading3Block:
		return "### " + richText(bl.Heading3.RichText)
	case *notionapi.BulletedListItemBlock:
		return "- " + richText(bl.BulletedListItem.RichText)
	case *notionapi.NumberedListItemBlock:
		return "- " + richText(bl.NumberedListItem.RichText)
	case *notionapi.ToDoBlock:
		return "- " + richText(bl.ToDo.RichText)
	case *notionapi.QuoteBlock:
		return "> " + richText(bl.Quote.RichText)
	case *notionapi.CalloutBlock:
		return richText(bl.Callout.RichText)
	case *notionapi.ToggleBlock:
		return richText(bl.Toggle.RichText)
	case *notionapi.CodeBlock:
		return richText(bl.Code.RichText)
	default:
		return ""
	}
}

func richText(rts []notionapi.RichText) string {
	var parts []string
	for _, rt := range rts {
		parts = append(parts, rt.PlainText)
	}
	return strings.Join(parts, "")
}
