// Package storage persists unsaved journal drafts on the local disk so a
// failed save or an interrupted session does not lose text.
package storage

import (
	"errors"
	"time"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound   = errors.New("draft not found")
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
)

// Draft is the text typed for a date that has not reached the service.
type Draft struct {
	Date    string    `json:"date"` // YYYY-MM-DD, local calendar day
	Text    string    `json:"text"`
	SavedAt time.Time `json:"saved_at"`
}

// Drafts defines the interface for draft persistence. There is at most one
// draft per date; Save replaces it.
type Drafts interface {
	Save(d Draft) error
	Load(date string) (Draft, error)
	Discard(date string) error
	List() ([]Draft, error)
}
