package mcptools

import (
	"context"
	"time"

	"github.com/chris-regnier/moodctl/internal/api"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Deps are what the tools need. Drafts may be nil; Now defaults to
// time.Now.
type Deps struct {
	Service api.Service
	Drafts  storage.Drafts
	// DataDir is used for prompt cache invalidation after writes; "" skips it.
	DataDir string
	Now     func() time.Time
}

// NewJournalMCPServer creates an in-memory MCP server exposing journal tools.
// Returns the server and a client transport for connecting to it.
func NewJournalMCPServer(deps Deps) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(deps)

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with registered journal tools.
func CreateMCPServer(deps Deps) *mcp.Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "moodctl",
		Version: "1.0.0",
	}, nil)

	// Read tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_entries",
		Description: "List journal entries with date, risk level and theme, optionally within a date range",
	}, ListEntriesHandler(deps.Service))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "entry_by_date",
		Description: "Fetch the analysed journal entry for one date",
	}, EntryByDateHandler(deps.Service))

	// Write tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_entry",
		Description: "Write today's journal entry and return its analysis",
	}, CreateEntryHandler(deps))

	return server
}
