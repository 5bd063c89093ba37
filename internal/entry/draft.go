package entry

import (
	"strings"
	"unicode/utf8"
)

// MaxDraftLength is the most characters a draft may hold.
const MaxDraftLength = 1000

// Draft is the in-progress text buffer. Its length never exceeds
// MaxDraftLength; the limit is applied on every mutation.
type Draft struct {
	text string
}

// NewDraft returns a draft holding text truncated to the limit.
func NewDraft(text string) Draft {
	return Draft{text: clamp(text)}
}

// Text returns the buffer content.
func (d Draft) Text() string { return d.text }

// Len returns the character count shown next to the editor.
func (d Draft) Len() int { return utf8.RuneCountInString(d.text) }

// Remaining returns how many characters may still be typed.
func (d Draft) Remaining() int { return MaxDraftLength - d.Len() }

// Blank reports whether the draft is empty or whitespace-only.
func (d Draft) Blank() bool { return strings.TrimSpace(d.text) == "" }

// Set replaces the content.
func (d Draft) Set(text string) Draft { return Draft{text: clamp(text)} }

// Insert appends s, dropping whatever would exceed the limit.
func (d Draft) Insert(s string) Draft {
	room := d.Remaining()
	if room <= 0 {
		return d
	}
	if utf8.RuneCountInString(s) > room {
		s = string([]rune(s)[:room])
	}
	return Draft{text: d.text + s}
}

// Backspace removes the last character.
func (d Draft) Backspace() Draft {
	if d.text == "" {
		return d
	}
	_, size := utf8.DecodeLastRuneInString(d.text)
	return Draft{text: d.text[:len(d.text)-size]}
}

// Clear empties the buffer.
func (d Draft) Clear() Draft { return Draft{} }

func clamp(text string) string {
	if utf8.RuneCountInString(text) <= MaxDraftLength {
		return text
	}
	return string([]rune(text)[:MaxDraftLength])
}
