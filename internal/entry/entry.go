package entry

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/chris-regnier/moodctl/internal/analysis"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8

	// DateLayout is the ISO calendar date used as the lookup key.
	DateLayout = "2006-01-02"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]{8}$`)

// Summary is one item of the entry store. The service assigns no
// identifier; ID is local to this client and never sent anywhere.
type Summary struct {
	ID   string `json:"id"`
	Date string `json:"date,omitempty"`
	// Text is known for entries written in this session, or when the
	// service echoes it back.
	Text  string `json:"text,omitempty"`
	Local bool   `json:"local,omitempty"`

	analysis.Record
}

// UnmarshalJSON decodes the local fields alongside the embedded record,
// whose own decoder would otherwise swallow them.
func (s *Summary) UnmarshalJSON(data []byte) error {
	var rec analysis.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	var local struct {
		ID    string `json:"id"`
		Date  string `json:"date"`
		Text  string `json:"text"`
		Local bool   `json:"local"`
	}
	if err := json.Unmarshal(data, &local); err != nil {
		return err
	}
	*s = Summary{ID: local.ID, Date: local.Date, Text: local.Text, Local: local.Local, Record: rec}
	return nil
}

// NewID generates a new client-local nanoid.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// ValidateID checks whether an ID matches the expected pattern.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("invalid entry ID: %q (must be 8 lowercase alphanumeric characters)", id)
	}
	return nil
}

// ValidateContent checks whether content is non-empty and within the
// draft limit.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("entry content must not be empty")
	}
	if n := utf8.RuneCountInString(content); n > MaxDraftLength {
		return fmt.Errorf("entry content is %d characters (limit %d)", n, MaxDraftLength)
	}
	return nil
}

// FormatDate formats t as the ISO calendar date of its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses an ISO calendar date in the local timezone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// Sanitize keeps only printable ASCII (0x20-0x7E), which is what the
// service accepts.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if c := text[i]; c >= 0x20 && c <= 0x7E {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// NewSummary builds a local summary from a service record plus the text and
// date the client already knows. An echoed text from the service never
// overrides the local one.
func NewSummary(rec analysis.Record, text, date string) (Summary, error) {
	id, err := NewID()
	if err != nil {
		return Summary{}, fmt.Errorf("generating id: %w", err)
	}
	if text == "" {
		text = rec.EntryText
	}
	return Summary{ID: id, Date: date, Text: text, Local: true, Record: rec}, nil
}

// Key identifies a summary by date and text hash, the closest thing to
// identity the service contract allows. The text is hashed as the service
// stores it, so a local summary matches its own echo. Summaries without a
// date have no key.
func (s Summary) Key() string {
	if s.Date == "" {
		return ""
	}
	text := Sanitize(s.KnownText())
	if text == "" {
		return s.Date
	}
	sum := sha256.Sum256([]byte(text))
	return s.Date + ":" + hex.EncodeToString(sum[:8])
}

// KnownText returns the text known for the summary, from either side.
func (s Summary) KnownText() string {
	if s.Text != "" {
		return s.Text
	}
	return s.EntryText
}

// Preview returns a truncated single-line preview of the text, falling back
// to the essence theme.
func (s Summary) Preview(maxLen int) string {
	content := s.KnownText()
	if content == "" {
		content = s.EssenceTheme
	}
	content = strings.ReplaceAll(content, "\n", " ")
	if utf8.RuneCountInString(content) <= maxLen {
		return content
	}
	r := []rune(content)
	return string(r[:maxLen-3]) + "..."
}
