package mcptools

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/shell"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateEntryHandler returns the handler function for the create_entry MCP tool.
// When the service fails and drafts are configured, the text is kept as the
// day's draft.
func CreateEntryHandler(deps Deps) func(ctx context.Context, req *mcp.CallToolRequest, input CreateEntryInput) (*mcp.CallToolResult, CreateEntryOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateEntryInput) (*mcp.CallToolResult, CreateEntryOutput, error) {
		text := strings.TrimSpace(input.Text)
		if err := entry.ValidateContent(text); err != nil {
			return nil, CreateEntryOutput{}, err
		}
		date := entry.FormatDate(deps.Now())

		rec, err := deps.Service.CreateEntry(ctx, text)
		if err != nil {
			if deps.Drafts != nil {
				if derr := deps.Drafts.Save(storage.Draft{Date: date, Text: text}); derr != nil {
					log.Printf("error keeping draft for %s: %v", date, derr)
				} else {
					return nil, CreateEntryOutput{}, fmt.Errorf("creating entry: %w (kept as draft for %s)", err, date)
				}
			}
			return nil, CreateEntryOutput{}, fmt.Errorf("creating entry: %w", err)
		}

		if deps.Drafts != nil {
			if err := deps.Drafts.Discard(date); err != nil {
				log.Printf("error discarding draft for %s: %v", date, err)
			}
		}

		// Invalidate shell prompt cache (best-effort)
		if deps.DataDir != "" {
			_ = shell.InvalidateCache(deps.DataDir)
		}

		return nil, CreateEntryOutput{
			Date:     date,
			Analysis: toAnalysis(rec, text),
		}, nil
	}
}
