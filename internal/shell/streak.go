package shell

import (
	"context"
	"errors"
	"time"

	"github.com/chris-regnier/moodctl/internal/analysis"
	"github.com/chris-regnier/moodctl/internal/api"
	"github.com/chris-regnier/moodctl/internal/entry"
)

// Status is what the prompt shows: whether today has an entry, the run of
// consecutive days with entries ending today (or yesterday, so the streak
// survives until the evening entry), and the most recent risk level.
type Status struct {
	Today      bool
	Streak     int
	LatestRisk analysis.RiskLevel
}

// ComputeStatus derives the prompt status from a listing. Undated entries
// are ignored.
func ComputeStatus(items []entry.Summary, now time.Time) Status {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	daySet := make(map[string]bool, len(items))
	latest := ""
	var st Status
	for _, it := range items {
		if it.Date == "" {
			continue
		}
		daySet[it.Date] = true
		if it.Date > latest && it.OverallRiskLevel.Known() {
			latest = it.Date
			st.LatestRisk = it.OverallRiskLevel
		}
	}

	st.Today = daySet[entry.FormatDate(today)]

	check := today
	if !st.Today {
		check = today.AddDate(0, 0, -1)
	}
	for daySet[entry.FormatDate(check)] {
		st.Streak++
		check = check.AddDate(0, 0, -1)
	}
	return st
}

// FetchStatus lists entries from the service and computes the status. A
// listing that is not an array counts as no entries.
func FetchStatus(ctx context.Context, svc api.Service, now time.Time) (Status, error) {
	items, err := svc.ListEntries(ctx)
	if err != nil && !errors.Is(err, api.ErrMalformed) {
		return Status{}, err
	}
	return ComputeStatus(items, now), nil
}
