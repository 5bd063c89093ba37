package mcptools_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/chris-regnier/moodctl/internal/analysis"
	"github.com/chris-regnier/moodctl/internal/api"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/mcptools"
	"github.com/chris-regnier/moodctl/internal/storage/markdown"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type stubService struct {
	listing   []entry.Summary
	listErr   error
	byDate    map[string]analysis.Record
	record    analysis.Record
	createErr error
	created   []string
}

func (s *stubService) ListEntries(ctx context.Context) ([]entry.Summary, error) {
	return s.listing, s.listErr
}

func (s *stubService) CreateEntry(ctx context.Context, text string) (analysis.Record, error) {
	s.created = append(s.created, text)
	return s.record, s.createErr
}

func (s *stubService) EntryByDate(ctx context.Context, date string) (analysis.Record, error) {
	rec, ok := s.byDate[date]
	if !ok {
		return analysis.Record{}, api.ErrUnavailable
	}
	return rec, nil
}

func connect(t *testing.T, deps mcptools.Deps) *mcp.ClientSession {
	t.Helper()
	_, clientTransport := mcptools.NewJournalMCPServer(deps)
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), clientTransport, nil)
	if err != nil {
		t.Fatalf("failed to connect client: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args any, out any) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool %s failed: %v", name, err)
	}
	if result.IsError {
		t.Fatalf("CallTool %s returned a tool error: %+v", name, result.Content)
	}
	outputJSON, _ := json.Marshal(result.StructuredContent)
	if err := json.Unmarshal(outputJSON, out); err != nil {
		t.Fatalf("failed to unmarshal structured content: %v", err)
	}
}

func toolFails(t *testing.T, session *mcp.ClientSession, name string, args any) bool {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	return err != nil || result.IsError
}

func TestMCPServer_ListEntries(t *testing.T) {
	svc := &stubService{listing: []entry.Summary{
		{Date: "2024-01-05", Text: "Walked by the river.", Record: analysis.Record{OverallRiskLevel: analysis.RiskLow, EssenceTheme: "Calm"}},
		{Date: "2024-01-02", Record: analysis.Record{OverallRiskLevel: analysis.RiskHigh, EssenceTheme: "Overwhelm"}},
		{Record: analysis.Record{EssenceTheme: "Undated"}},
	}}
	session := connect(t, mcptools.Deps{Service: svc})

	t.Run("all entries", func(t *testing.T) {
		var out mcptools.ListEntriesOutput
		callTool(t, session, "list_entries", mcptools.ListEntriesInput{}, &out)
		if len(out.Entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(out.Entries))
		}
		if out.Entries[0].Preview != "Walked by the river." || out.Entries[0].Risk != "LOW" {
			t.Errorf("first entry = %+v", out.Entries[0])
		}
		if out.Entries[1].Preview != "Overwhelm" {
			t.Errorf("preview should fall back to theme, got %q", out.Entries[1].Preview)
		}
	})

	t.Run("date range", func(t *testing.T) {
		var out mcptools.ListEntriesOutput
		callTool(t, session, "list_entries", mcptools.ListEntriesInput{StartDate: "2024-01-04", EndDate: "2024-01-31"}, &out)
		if len(out.Entries) != 1 || out.Entries[0].Date != "2024-01-05" {
			t.Errorf("entries = %+v", out.Entries)
		}
	})

	t.Run("limit", func(t *testing.T) {
		var out mcptools.ListEntriesOutput
		callTool(t, session, "list_entries", mcptools.ListEntriesInput{Limit: 1}, &out)
		if len(out.Entries) != 1 {
			t.Errorf("expected 1 entry, got %d", len(out.Entries))
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		if !toolFails(t, session, "list_entries", mcptools.ListEntriesInput{StartDate: "05/01/2024"}) {
			t.Error("expected error for malformed start_date")
		}
	})
}

func TestMCPServer_ListEntriesMalformedListingIsEmpty(t *testing.T) {
	svc := &stubService{listErr: api.ErrMalformed}
	session := connect(t, mcptools.Deps{Service: svc})

	var out mcptools.ListEntriesOutput
	callTool(t, session, "list_entries", mcptools.ListEntriesInput{}, &out)
	if out.Entries == nil || len(out.Entries) != 0 {
		t.Errorf("entries = %#v, want empty list", out.Entries)
	}
}

func TestMCPServer_EntryByDate(t *testing.T) {
	svc := &stubService{byDate: map[string]analysis.Record{
		"2024-01-05": {
			EntryText:         "Long week.",
			EssenceTheme:      "Tired but hopeful",
			OverallRiskLevel:  analysis.RiskMedium,
			CopingSuggestions: []string{"Stretch"},
			ConfidenceScore:   analysis.Score{Value: 0.7, Valid: true},
		},
	}}
	session := connect(t, mcptools.Deps{Service: svc})

	var out mcptools.EntryByDateOutput
	callTool(t, session, "entry_by_date", mcptools.EntryByDateInput{Date: "2024-01-05"}, &out)
	if !out.Found || out.Entry == nil {
		t.Fatalf("expected entry, got %+v", out)
	}
	if out.Entry.Text != "Long week." || out.Entry.Risk != "MEDIUM" || len(out.Entry.Cues) != 1 {
		t.Errorf("entry = %+v", out.Entry)
	}
	if out.Entry.Confidence == nil || *out.Entry.Confidence != 0.7 {
		t.Errorf("confidence = %v", out.Entry.Confidence)
	}

	out = mcptools.EntryByDateOutput{}
	callTool(t, session, "entry_by_date", mcptools.EntryByDateInput{Date: "2024-01-06"}, &out)
	if out.Found || out.Entry != nil || out.Date != "2024-01-06" {
		t.Errorf("missing date = %+v", out)
	}

	if !toolFails(t, session, "entry_by_date", mcptools.EntryByDateInput{Date: "yesterday"}) {
		t.Error("expected error for malformed date")
	}
}

func TestMCPServer_CreateEntry(t *testing.T) {
	drafts, err := markdown.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create draft storage: %v", err)
	}
	fixed := func() time.Time { return time.Date(2024, 1, 5, 20, 0, 0, 0, time.Local) }
	svc := &stubService{record: analysis.Record{EssenceTheme: "Steadier", OverallRiskLevel: analysis.RiskLow}}
	session := connect(t, mcptools.Deps{Service: svc, Drafts: drafts, Now: fixed})

	t.Run("creates entry", func(t *testing.T) {
		var out mcptools.CreateEntryOutput
		callTool(t, session, "create_entry", mcptools.CreateEntryInput{Text: "  Felt calmer.  "}, &out)
		if out.Date != "2024-01-05" {
			t.Errorf("date = %q", out.Date)
		}
		if out.Analysis == nil || out.Analysis.Theme != "Steadier" || out.Analysis.Text != "Felt calmer." {
			t.Errorf("analysis = %+v", out.Analysis)
		}
		if len(svc.created) != 1 || svc.created[0] != "Felt calmer." {
			t.Errorf("created = %v", svc.created)
		}
	})

	t.Run("rejects empty text", func(t *testing.T) {
		if !toolFails(t, session, "create_entry", mcptools.CreateEntryInput{Text: "   "}) {
			t.Error("expected error for empty text")
		}
	})

	t.Run("keeps draft on failure", func(t *testing.T) {
		svc.createErr = errors.New("connection refused")
		defer func() { svc.createErr = nil }()

		if !toolFails(t, session, "create_entry", mcptools.CreateEntryInput{Text: "Unsent thoughts"}) {
			t.Fatal("expected error when the service fails")
		}
		d, err := drafts.Load("2024-01-05")
		if err != nil {
			t.Fatalf("draft not kept: %v", err)
		}
		if d.Text != "Unsent thoughts" {
			t.Errorf("draft = %q", d.Text)
		}
	})
}
