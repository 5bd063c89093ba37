package entry

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/chris-regnier/moodctl/internal/analysis"
)

func TestDraftTypingCount(t *testing.T) {
	text := "Today felt lighter. Walked by the river, called mum."
	d := Draft{}
	for i, r := range []rune(text) {
		d = d.Insert(string(r))
		if d.Len() != i+1 {
			t.Fatalf("after %d chars count = %d", i+1, d.Len())
		}
	}
	if d.Text() != text {
		t.Errorf("text = %q", d.Text())
	}
}

func TestDraftLimitEnforcedOnInput(t *testing.T) {
	d := Draft{}
	for i := 0; i < MaxDraftLength+50; i++ {
		d = d.Insert("a")
		if d.Len() > MaxDraftLength {
			t.Fatalf("count %d exceeds limit", d.Len())
		}
	}
	if d.Len() != MaxDraftLength {
		t.Errorf("count = %d, want %d", d.Len(), MaxDraftLength)
	}

	d = NewDraft(strings.Repeat("é", MaxDraftLength+1))
	if d.Len() != MaxDraftLength {
		t.Errorf("NewDraft count = %d", d.Len())
	}
	if !utf8.ValidString(d.Text()) {
		t.Error("truncation split a rune")
	}

	d = Draft{}.Set(strings.Repeat("x", 990)).Insert(strings.Repeat("y", 20))
	if d.Len() != MaxDraftLength || !strings.HasSuffix(d.Text(), strings.Repeat("y", 10)) {
		t.Errorf("partial insert: len=%d", d.Len())
	}
}

func TestDraftBlankAndBackspace(t *testing.T) {
	if !NewDraft("  \n\t").Blank() {
		t.Error("whitespace draft should be blank")
	}
	d := NewDraft("hé")
	d = d.Backspace()
	if d.Text() != "h" {
		t.Errorf("backspace = %q", d.Text())
	}
	if d.Clear().Len() != 0 {
		t.Error("clear should empty the draft")
	}
}

func TestSanitize(t *testing.T) {
	got := Sanitize("café ok\n\ttabs ~done")
	if got != "caf oktabs ~done" {
		t.Errorf("Sanitize = %q", got)
	}
}

func TestValidateContent(t *testing.T) {
	if err := ValidateContent("   "); err == nil {
		t.Error("blank content should fail")
	}
	if err := ValidateContent(strings.Repeat("a", MaxDraftLength+1)); err == nil {
		t.Error("oversized content should fail")
	}
	if err := ValidateContent("fine"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFormatDateUsesLocalCalendarDay(t *testing.T) {
	d := time.Date(2024, 1, 5, 0, 30, 0, 0, time.FixedZone("UTC+5", 5*3600))
	if got := FormatDate(d); got != "2024-01-05" {
		t.Errorf("FormatDate = %q, want 2024-01-05", got)
	}
	if _, err := ParseDate("05/01/2024"); err == nil {
		t.Error("expected parse error")
	}
}

func TestNewSummaryPrefersLocalText(t *testing.T) {
	s, err := NewSummary(analysis.Record{EntryText: "server copy"}, "my words", "2024-01-05")
	if err != nil {
		t.Fatalf("NewSummary: %v", err)
	}
	if err := ValidateID(s.ID); err != nil {
		t.Error(err)
	}
	if s.Text != "my words" || s.Date != "2024-01-05" || !s.Local {
		t.Errorf("summary = %+v", s)
	}

	s, _ = NewSummary(analysis.Record{EntryText: "server copy"}, "", "2024-01-05")
	if s.Text != "server copy" {
		t.Errorf("fallback text = %q", s.Text)
	}
}

func TestSummaryKey(t *testing.T) {
	a := Summary{Date: "2024-01-05", Text: "same"}
	b := Summary{Date: "2024-01-05", Text: "same"}
	c := Summary{Date: "2024-01-05", Text: "other"}

	if a.Key() != b.Key() {
		t.Error("equal date and text should share a key")
	}
	if a.Key() == c.Key() {
		t.Error("different text should change the key")
	}
	if (Summary{Text: "x"}).Key() != "" {
		t.Error("undated summaries have no key")
	}
}

func TestSummaryKeyMatchesSanitizedEcho(t *testing.T) {
	local := Summary{Date: "2024-01-05", Text: "Long day.\nFelt better later, café."}
	echo := Summary{Date: "2024-01-05", Record: analysis.Record{EntryText: "Long day.Felt better later, caf."}}

	if local.Key() != echo.Key() {
		t.Errorf("local key %q should match the echoed text key %q", local.Key(), echo.Key())
	}
}

func TestPreview(t *testing.T) {
	s := Summary{Text: "line one\nline two"}
	if got := s.Preview(80); got != "line one line two" {
		t.Errorf("Preview = %q", got)
	}
	s = Summary{Record: analysis.Record{EssenceTheme: "Quiet resilience"}}
	if got := s.Preview(10); got != "Quiet r..." {
		t.Errorf("Preview = %q", got)
	}
}
