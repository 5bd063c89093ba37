package journal

import (
	"github.com/chris-regnier/moodctl/internal/analysis"
	"github.com/chris-regnier/moodctl/internal/entry"
)

// Store is the ordered collection of entry summaries used to decorate the
// calendar. The zero value is an empty store; Items never returns nil.
type Store struct {
	items []entry.Summary
}

// NewStore returns a store holding items in order.
func NewStore(items []entry.Summary) Store {
	return Store{items: append([]entry.Summary{}, items...)}
}

// Items returns the summaries in order.
func (s Store) Items() []entry.Summary {
	if s.items == nil {
		return []entry.Summary{}
	}
	return s.items
}

// Len returns the number of summaries.
func (s Store) Len() int { return len(s.items) }

// Prepend puts a new summary first, dropping any existing summary with the
// same key.
func (s Store) Prepend(sum entry.Summary) Store {
	key := sum.Key()
	out := make([]entry.Summary, 0, len(s.items)+1)
	out = append(out, sum)
	for _, it := range s.items {
		if key != "" && it.Key() == key {
			continue
		}
		out = append(out, it)
	}
	return Store{items: out}
}

// Reconcile merges a fresh server listing with the summaries this client
// created locally. Local summaries stay first, in their current order; a
// server item is dropped when it has the same date as a local summary and
// either carries no text or the same text. Local wins on conflict.
func (s Store) Reconcile(listing []entry.Summary) Store {
	var local []entry.Summary
	byDate := make(map[string][]entry.Summary)
	for _, it := range s.items {
		if !it.Local {
			continue
		}
		local = append(local, it)
		byDate[it.Date] = append(byDate[it.Date], it)
	}

	out := make([]entry.Summary, 0, len(local)+len(listing))
	out = append(out, local...)
	for _, it := range listing {
		if conflicts(it, byDate[it.Date]) {
			continue
		}
		it.Local = false
		out = append(out, it)
	}
	return Store{items: out}
}

func conflicts(remote entry.Summary, local []entry.Summary) bool {
	if remote.Date == "" {
		return false
	}
	for _, l := range local {
		if remote.KnownText() == "" || remote.Key() == l.Key() {
			return true
		}
	}
	return false
}

// Degrade empties the store after a failed or malformed listing.
func (s Store) Degrade() Store {
	return Store{items: []entry.Summary{}}
}

// Find returns the first summary dated date.
func (s Store) Find(date string) (entry.Summary, bool) {
	for _, it := range s.items {
		if it.Date == date {
			return it, true
		}
	}
	return entry.Summary{}, false
}

// RiskFor returns the risk level of the first summary dated date, or ""
// when there is none or its level is unknown.
func (s Store) RiskFor(date string) analysis.RiskLevel {
	it, ok := s.Find(date)
	if !ok || !it.OverallRiskLevel.Known() {
		return ""
	}
	return it.OverallRiskLevel
}

// Risks maps every dated summary's date to its risk level, first match
// winning, for one render pass over a month.
func (s Store) Risks() map[string]analysis.RiskLevel {
	out := make(map[string]analysis.RiskLevel)
	seen := make(map[string]bool)
	for _, it := range s.items {
		if it.Date == "" || seen[it.Date] {
			continue
		}
		seen[it.Date] = true
		if it.OverallRiskLevel.Known() {
			out[it.Date] = it.OverallRiskLevel
		}
	}
	return out
}
