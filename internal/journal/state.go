// Package journal is the client-side view-state machine of the journal
// dashboard. State is a single owned record; each transition returns the
// next state plus the effects (network calls, notifications) the owner
// must run. Nothing in this package performs I/O.
package journal

import (
	"log"
	"time"

	"github.com/chris-regnier/moodctl/internal/analysis"
	"github.com/chris-regnier/moodctl/internal/entry"
)

// ViewState decides which panel renders and which actions are enabled.
type ViewState int

const (
	// Drafting shows the editor with no saved entry loaded.
	Drafting ViewState = iota
	// Viewing shows a saved or fetched entry read-only.
	Viewing
	// EditingExisting shows the editor seeded with a displayed entry's text.
	EditingExisting
	// NoEntry follows a lookup that failed or found nothing: the editor is
	// shown empty and no analysis renders.
	NoEntry
)

func (v ViewState) String() string {
	switch v {
	case Drafting:
		return "drafting"
	case Viewing:
		return "viewing"
	case EditingExisting:
		return "editing"
	case NoEntry:
		return "no-entry"
	}
	return "unknown"
}

// EditorVisible reports whether the draft editor is on screen.
func (v ViewState) EditorVisible() bool {
	return v != Viewing
}

// State is everything the dashboard knows.
type State struct {
	View      ViewState
	Draft     entry.Draft
	Displayed *entry.Summary
	Selected  time.Time
	SafeMode  bool
	Store     Store

	// Revision counts completed saves; a change triggers a listing refresh.
	Revision int
	// PendingSaves counts creation requests in flight.
	PendingSaves int
	// Status is a one-line, developer-facing note about the last outcome.
	Status string
}

// New returns the initial state for the given selected day.
func New(selected time.Time) State {
	return State{
		View:     Drafting,
		Selected: dayOf(selected),
		Store:    Store{items: []entry.Summary{}},
	}
}

// Start returns the effects to run when the dashboard opens.
func (s State) Start() (State, []Effect) {
	return s, []Effect{RefreshEffect{Revision: s.Revision}}
}

// SelectedDate is the ISO date of the selected calendar day.
func (s State) SelectedDate() string {
	return entry.FormatDate(s.Selected)
}

// CanSave reports whether Save would issue a request.
func (s State) CanSave() bool {
	return s.View.EditorVisible() && !s.Draft.Blank()
}

// CanEdit reports whether the displayed entry's text is known.
func (s State) CanEdit() bool {
	return s.View == Viewing && s.Displayed != nil && s.Displayed.KnownText() != ""
}

// AnalysisVisible reports whether analysis panels render.
func (s State) AnalysisVisible() bool {
	return !s.SafeMode && s.View == Viewing && s.Displayed != nil
}

// Type replaces the draft with text, truncated to the limit. Ignored while
// the editor is hidden.
func (s State) Type(text string) State {
	if !s.View.EditorVisible() {
		return s
	}
	s.Draft = s.Draft.Set(text)
	return s
}

// Insert appends text to the draft, truncated to the limit.
func (s State) Insert(text string) State {
	if !s.View.EditorVisible() {
		return s
	}
	s.Draft = s.Draft.Insert(text)
	return s
}

// Save issues one creation request for the current draft. A blank draft
// issues nothing.
func (s State) Save() (State, []Effect) {
	if !s.CanSave() {
		return s, nil
	}
	s.PendingSaves++
	s.Status = "saving..."
	return s, []Effect{CreateEffect{
		Text:  entry.Sanitize(s.Draft.Text()),
		Draft: s.Draft.Text(),
		Date:  s.SelectedDate(),
	}}
}

// SaveSucceeded merges the returned record with the draft text and date
// known when the save was issued, displays it and prepends it to the store.
func (s State) SaveSucceeded(res SaveResult) (State, []Effect) {
	s.PendingSaves = decr(s.PendingSaves)

	sum, err := entry.NewSummary(res.Record, res.Draft, res.Date)
	if err != nil {
		return s.SaveFailed(err)
	}

	s.Displayed = &sum
	s.Draft = s.Draft.Clear()
	s.View = Viewing
	s.Store = s.Store.Prepend(sum)
	s.Revision++
	s.Status = "saved " + res.Date
	return s, []Effect{RefreshEffect{Revision: s.Revision}, DiscardDraftEffect{Date: res.Date}}
}

// SaveFailed leaves the draft and view untouched so the user can retry.
func (s State) SaveFailed(err error) (State, []Effect) {
	s.PendingSaves = decr(s.PendingSaves)
	log.Printf("error creating journal entry: %v", err)
	s.Status = "save failed; draft kept"
	return s, nil
}

// SelectDate moves the calendar to day and looks up its entry.
func (s State) SelectDate(day time.Time) (State, []Effect) {
	s.Selected = dayOf(day)
	date := s.SelectedDate()
	log.Printf("fetching entry for date %s", date)
	return s, []Effect{LookupEffect{Date: date}}
}

// LookupSucceeded displays the fetched record. Its text, when echoed,
// also seeds the draft.
func (s State) LookupSucceeded(res LookupResult) State {
	text := res.Record.EntryText
	sum := entry.Summary{Date: res.Date, Text: text, Record: res.Record}
	s.Displayed = &sum
	s.View = Viewing
	s.Draft = s.Draft.Set(text)
	s.Status = ""
	return s
}

// LookupFailed clears the display. A transport error and a date with no
// entry end in the same place.
func (s State) LookupFailed(date string, err error) State {
	log.Printf("no entry for %s: %v", date, err)
	s.Displayed = nil
	s.View = NoEntry
	s.Draft = s.Draft.Clear()
	s.Status = "no entry for " + date
	return s
}

// Edit moves a displayed entry with known text into the editor. Otherwise
// the action is disabled and nothing changes.
func (s State) Edit() State {
	if !s.CanEdit() {
		return s
	}
	s.View = EditingExisting
	s.Draft = s.Draft.Set(s.Displayed.KnownText())
	return s
}

// Cancel abandons the current edit. From EditingExisting it returns to
// Viewing with the known text restored; from the plain editor it discards
// the draft.
func (s State) Cancel() State {
	switch s.View {
	case EditingExisting:
		s.View = Viewing
		if s.Displayed != nil && s.Displayed.KnownText() != "" {
			s.Draft = s.Draft.Set(s.Displayed.KnownText())
		} else {
			s.Draft = s.Draft.Clear()
		}
	case Drafting, NoEntry:
		s.Draft = s.Draft.Clear()
	}
	return s
}

// Delete clears the displayed entry and the draft. The service has no
// delete endpoint, so the store keeps the entry.
func (s State) Delete() State {
	if s.View != Viewing && s.View != EditingExisting {
		return s
	}
	s.Displayed = nil
	s.Draft = s.Draft.Clear()
	s.View = Drafting
	s.Status = ""
	return s
}

// ToggleSafeMode flips analysis visibility without touching the record.
func (s State) ToggleSafeMode() State {
	s.SafeMode = !s.SafeMode
	return s
}

// ListingLoaded reconciles a fresh listing into the store. Results for an
// older revision are applied too, in arrival order.
func (s State) ListingLoaded(items []entry.Summary) State {
	s.Store = s.Store.Reconcile(items)
	return s
}

// ListingFailed degrades the store to empty.
func (s State) ListingFailed(err error) State {
	log.Printf("error fetching entries: %v", err)
	s.Store = s.Store.Degrade()
	return s
}

// ScheduleReminders acknowledges the cue scheduling action. There is no
// backend for it.
func (s State) ScheduleReminders() (State, []Effect) {
	if !s.AnalysisVisible() {
		return s, nil
	}
	s.Status = analysis.RemindAck
	return s, []Effect{RemindEffect{Cues: s.Displayed.CopingSuggestions}}
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func decr(n int) int {
	if n > 0 {
		return n - 1
	}
	return 0
}
