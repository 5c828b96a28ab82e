// Package reminder keeps the scheme deadlines a user asked to be reminded
// about and announces the ones that are close.
package reminder

import (
	"errors"
	"fmt"
	"time"

	"github.com/teslashibe/go-voxtend/pkg/scheme"
)

// DueWithinDays is how close a deadline must be before it is announced.
const DueWithinDays = 7

var (
	ErrNotFound        = errors.New("reminder: not found")
	ErrMissingScheme   = errors.New("reminder: scheme id is required")
	ErrMissingDeadline = errors.New("reminder: deadline is required")
)

// Reminder is a saved deadline for one scheme.
type Reminder struct {
	SchemeID   string    `json:"scheme_id"`
	SchemeName string    `json:"scheme_name"`
	Deadline   time.Time `json:"deadline"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the required fields.
func (r *Reminder) Validate() error {
	if r.SchemeID == "" {
		return ErrMissingScheme
	}
	if r.Deadline.IsZero() {
		return ErrMissingDeadline
	}
	return nil
}

// FromScheme builds a reminder for a catalog scheme with a deadline.
func FromScheme(s *scheme.Scheme) (Reminder, error) {
	if s.Deadline == nil {
		return Reminder{}, fmt.Errorf("%w: %s has no deadline", ErrMissingDeadline, s.ID)
	}
	return Reminder{
		SchemeID:   s.ID,
		SchemeName: s.Name,
		Deadline:   *s.Deadline,
	}, nil
}

// Notification is a reminder whose deadline falls inside the due window.
type Notification struct {
	Reminder Reminder `json:"reminder"`
	DaysLeft int      `json:"days_left"`
	Message  string   `json:"message"`
}

// Due returns the reminders with 0 to DueWithinDays days left at now,
// in input order.
func Due(reminders []Reminder, now time.Time) []Notification {
	var out []Notification
	for _, r := range reminders {
		days := scheme.DaysUntil(r.Deadline, now)
		if days < 0 || days > DueWithinDays {
			continue
		}
		out = append(out, Notification{
			Reminder: r,
			DaysLeft: days,
			Message:  Message(r.SchemeName, days),
		})
	}
	return out
}

// Message formats the announcement text.
func Message(name string, days int) string {
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return fmt.Sprintf("%s deadline in %d %s. Apply soon!", name, days, unit)
}
