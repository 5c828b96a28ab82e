package scheme

import (
	"math"
	"time"
)

// UrgentWithinDays marks a deadline as urgent in the catalog browser.
const UrgentWithinDays = 30

// DaysUntil returns the whole days from now until deadline, rounded up
// (a deadline later today is 1 day away, one already passed is <= 0).
func DaysUntil(deadline, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}

// DaysLeft returns the days until the scheme deadline and whether it has one.
func (s *Scheme) DaysLeft(now time.Time) (int, bool) {
	if s.Deadline == nil {
		return 0, false
	}
	return DaysUntil(*s.Deadline, now), true
}

// IsUrgent reports whether the deadline is still open and within UrgentWithinDays.
func (s *Scheme) IsUrgent(now time.Time) bool {
	days, ok := s.DaysLeft(now)
	return ok && days >= 0 && days <= UrgentWithinDays
}
