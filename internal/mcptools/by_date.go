package mcptools

import (
	"context"
	"errors"

	"github.com/chris-regnier/moodctl/internal/api"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// EntryByDateHandler returns the handler function for the entry_by_date MCP
// tool. A date with nothing available is a normal result, not an error.
func EntryByDateHandler(svc api.Service) func(ctx context.Context, req *mcp.CallToolRequest, input EntryByDateInput) (*mcp.CallToolResult, EntryByDateOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input EntryByDateInput) (*mcp.CallToolResult, EntryByDateOutput, error) {
		if _, err := entry.ParseDate(input.Date); err != nil {
			return nil, EntryByDateOutput{}, err
		}

		rec, err := svc.EntryByDate(ctx, input.Date)
		if errors.Is(err, api.ErrUnavailable) {
			return nil, EntryByDateOutput{Date: input.Date}, nil
		}
		if err != nil {
			return nil, EntryByDateOutput{}, err
		}

		return nil, EntryByDateOutput{
			Date:  input.Date,
			Found: true,
			Entry: toAnalysis(rec, ""),
		}, nil
	}
}
