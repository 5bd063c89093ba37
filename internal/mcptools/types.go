package mcptools

// ListEntriesInput is the input schema for the list_entries MCP tool.
type ListEntriesInput struct {
	StartDate string `json:"start_date,omitempty" jsonschema-description:"ISO date lower bound (inclusive)"`
	EndDate   string `json:"end_date,omitempty" jsonschema-description:"ISO date upper bound (inclusive)"`
	Limit     int    `json:"limit,omitempty" jsonschema-description:"Maximum number of results"`
}

// ListEntriesOutput is the output schema for the list_entries MCP tool.
type ListEntriesOutput struct {
	Entries []EntryResult `json:"entries"`
}

// EntryResult is one row of list_entries output.
type EntryResult struct {
	Date    string `json:"date,omitempty"`
	Risk    string `json:"risk,omitempty"`
	Theme   string `json:"theme,omitempty"`
	Preview string `json:"preview"`
}

// EntryByDateInput is the input schema for the entry_by_date MCP tool.
type EntryByDateInput struct {
	Date string `json:"date" jsonschema-description:"ISO date (YYYY-MM-DD)"`
}

// EntryByDateOutput is the output schema for the entry_by_date MCP tool.
// Found is false when the service has nothing for the date.
type EntryByDateOutput struct {
	Date  string    `json:"date"`
	Found bool      `json:"found"`
	Entry *Analysis `json:"entry,omitempty"`
}

// Analysis is the reflection returned for one entry.
type Analysis struct {
	Text           string   `json:"text,omitempty"`
	Risk           string   `json:"risk,omitempty"`
	Theme          string   `json:"theme,omitempty"`
	Strengths      []string `json:"strengths,omitempty"`
	Pattern        string   `json:"pattern,omitempty"`
	Reframe        string   `json:"reframe,omitempty"`
	Cues           []string `json:"cues,omitempty"`
	ActionRequired string   `json:"action_required,omitempty"`
	Confidence     *float64 `json:"confidence,omitempty"`
}

// CreateEntryInput is the input schema for the create_entry MCP tool.
type CreateEntryInput struct {
	Text string `json:"text" jsonschema-description:"Journal entry text (at most 1000 characters)"`
}

// CreateEntryOutput is the output schema for the create_entry MCP tool.
type CreateEntryOutput struct {
	Date     string    `json:"date"`
	Analysis *Analysis `json:"analysis"`
}
