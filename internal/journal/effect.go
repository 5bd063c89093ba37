package journal

import "github.com/chris-regnier/moodctl/internal/analysis"

// Effect is a side effect requested by a transition.
type Effect interface {
	effect()
}

// CreateEffect sends Text to the creation endpoint. Draft and Date are the
// values known when the save was issued; they come back in SaveResult.
type CreateEffect struct {
	Text  string
	Draft string
	Date  string
}

// LookupEffect fetches the entry for Date.
type LookupEffect struct {
	Date string
}

// RefreshEffect fetches the full listing.
type RefreshEffect struct {
	Revision int
}

// RemindEffect acknowledges the cue scheduling action locally.
type RemindEffect struct {
	Cues []string
}

// DiscardDraftEffect removes any saved draft for Date.
type DiscardDraftEffect struct {
	Date string
}

func (CreateEffect) effect()       {}
func (LookupEffect) effect()       {}
func (RefreshEffect) effect()      {}
func (RemindEffect) effect()       {}
func (DiscardDraftEffect) effect() {}

// SaveResult is the outcome of a CreateEffect.
type SaveResult struct {
	Record analysis.Record
	Draft  string
	Date   string
}

// LookupResult is the outcome of a LookupEffect.
type LookupResult struct {
	Record analysis.Record
	Date   string
}
