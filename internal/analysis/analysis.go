// Package analysis holds the analysis record returned by the journaling
// service and the panels it is presented as.
package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RiskLevel is the categorical severity attached to an analysed entry.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "HIGH"
	RiskMedium RiskLevel = "MEDIUM"
	RiskLow    RiskLevel = "LOW"
)

// Known reports whether the level is one of HIGH, MEDIUM or LOW.
// The service reports "Error" (and sometimes nothing) when analysis fails.
func (r RiskLevel) Known() bool {
	switch r {
	case RiskHigh, RiskMedium, RiskLow:
		return true
	}
	return false
}

// Color returns the fixed marker color for the level, or "" when the level
// is unknown and no marker should be drawn.
func (r RiskLevel) Color() string {
	switch r {
	case RiskHigh:
		return "#FF4D4F"
	case RiskMedium:
		return "#FFA940"
	case RiskLow:
		return "#52C41A"
	}
	return ""
}

// ParseRiskLevel normalizes a free-form level string.
func ParseRiskLevel(s string) RiskLevel {
	return RiskLevel(strings.ToUpper(strings.TrimSpace(s)))
}

// Score is the service's confidence score. It arrives as a JSON number, a
// numeric string, or null.
type Score struct {
	Value float64
	Valid bool
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = Score{}
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*s = Score{}
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("confidence score %q: %w", raw, err)
	}
	*s = Score{Value: v, Valid: true}
	return nil
}

// MarshalJSON writes the score as a number or null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(s.Value, 'f', -1, 64)), nil
}

// QA is one follow-up question prepared by the service for a later chat.
type QA struct {
	Q string `json:"Q"`
	A string `json:"A"`
}

// Record is the structured result of analysing one journal text. Every
// field is optional from the client's point of view.
type Record struct {
	EssenceTheme        string    `json:"essence_theme,omitempty"`
	IdentifiedStrengths []string  `json:"identified_strengths,omitempty"`
	HistoricalPattern   string    `json:"historical_pattern,omitempty"`
	ReappraisalMessage  string    `json:"reappraisal_message,omitempty"`
	CopingSuggestions   []string  `json:"coping_suggestions,omitempty"`
	OverallRiskLevel    RiskLevel `json:"overall_risk_level,omitempty"`

	// Safety check fields.
	ActionRequired  string `json:"action_required,omitempty"`
	ConfidenceScore Score  `json:"confidence_score"`
	SelfHarmFlag    string `json:"self_harm_flag,omitempty"`
	ViolenceFlag    string `json:"violence_flag,omitempty"`
	SafetyComment   string `json:"safety_comment,omitempty"`

	ChatbotContext []QA `json:"chatbot_context,omitempty"`

	// EntryText is the original text when the service echoes it back,
	// under either "entry_text" or "text".
	EntryText string `json:"entry_text,omitempty"`

	// Message is set when the service answers 200 with only a message
	// (its way of saying "nothing for that date").
	Message string `json:"message,omitempty"`
}

// UnmarshalJSON decodes a record, folding the "text" alias into EntryText
// and normalizing the risk level.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var aux struct {
		plain
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Record(aux.plain)
	if r.EntryText == "" {
		r.EntryText = aux.Text
	}
	r.OverallRiskLevel = ParseRiskLevel(string(r.OverallRiskLevel))
	return nil
}

// IsMessageOnly reports whether the record carries nothing but a service
// message.
func (r Record) IsMessageOnly() bool {
	if r.Message == "" {
		return false
	}
	r.Message = ""
	return r.IsZero()
}

// IsZero reports whether no analysis field is set.
func (r Record) IsZero() bool {
	return r.EssenceTheme == "" &&
		len(r.IdentifiedStrengths) == 0 &&
		r.HistoricalPattern == "" &&
		r.ReappraisalMessage == "" &&
		len(r.CopingSuggestions) == 0 &&
		r.OverallRiskLevel == "" &&
		r.ActionRequired == "" &&
		!r.ConfidenceScore.Valid &&
		r.SelfHarmFlag == "" &&
		r.ViolenceFlag == "" &&
		r.SafetyComment == "" &&
		len(r.ChatbotContext) == 0 &&
		r.EntryText == "" &&
		r.Message == ""
}

// Blocked reports whether the service's safety check asked to block.
func (r Record) Blocked() bool {
	return strings.EqualFold(r.ActionRequired, "BLOCK")
}
