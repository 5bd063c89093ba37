package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris-regnier/moodctl/internal/api"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListEntriesHandler returns the handler function for the list_entries MCP tool.
func ListEntriesHandler(svc api.Service) func(ctx context.Context, req *mcp.CallToolRequest, input ListEntriesInput) (*mcp.CallToolResult, ListEntriesOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListEntriesInput) (*mcp.CallToolResult, ListEntriesOutput, error) {
		start, err := optionalDate(input.StartDate)
		if err != nil {
			return nil, ListEntriesOutput{}, fmt.Errorf("start_date: %w", err)
		}
		end, err := optionalDate(input.EndDate)
		if err != nil {
			return nil, ListEntriesOutput{}, fmt.Errorf("end_date: %w", err)
		}

		items, err := svc.ListEntries(ctx)
		if err != nil && !errors.Is(err, api.ErrMalformed) {
			return nil, ListEntriesOutput{}, err
		}

		results := []EntryResult{}
		for _, it := range items {
			if !inRange(it.Date, start, end) {
				continue
			}
			results = append(results, EntryResult{
				Date:    it.Date,
				Risk:    string(it.OverallRiskLevel),
				Theme:   it.EssenceTheme,
				Preview: it.Preview(100),
			})
			if input.Limit > 0 && len(results) == input.Limit {
				break
			}
		}

		return nil, ListEntriesOutput{Entries: results}, nil
	}
}
