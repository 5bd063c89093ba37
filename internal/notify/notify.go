// Package notify sends desktop notifications for the reminder action.
package notify

import (
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"
)

// Notifier delivers one desktop notification.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop sends notifications through the OS notification service.
type Desktop struct{}

// Notify implements Notifier.
func (Desktop) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Discard drops every notification.
type Discard struct{}

// Notify implements Notifier.
func (Discard) Notify(string, string) error { return nil }

// FormatCues builds the reminder notification for a set of coping cues.
func FormatCues(cues []string) (string, string) {
	title := "Habit cues scheduled"
	if len(cues) == 0 {
		return title, "No coping suggestions to schedule."
	}
	n := min(len(cues), 3)
	return title, fmt.Sprintf("%d new cues:\n- %s", n, strings.Join(cues[:n], "\n- "))
}
