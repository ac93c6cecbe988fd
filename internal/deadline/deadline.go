// Package deadline turns a reference date plus a recurrence interval
// into the next due occurrence and the overdue state of the obligation
// that precedes it. The two dates are deliberately kept apart: NextDue
// is always rolled forward to "now" or later, while FirstMissed is the
// earliest occurrence the business failed to satisfy and is what drives
// severity banding and penalty accrual.
package deadline

import (
	"fmt"
	"math"
	"time"
)

const oneDay = 24 * time.Hour

// Occurrence describes one recurring obligation at a point in time.
type Occurrence struct {
	NextDue      time.Time
	DaysUntilDue int
	FirstMissed  *time.Time
	DaysOverdue  int
}

// IsOverdue reports whether an earlier occurrence of the obligation was
// missed, regardless of the rolled-forward NextDue.
func (o *Occurrence) IsOverdue() bool {
	return o.FirstMissed != nil
}

// DaysUntil returns ceil((due − now) / one day). The result is negative
// when due is in the past.
func DaysUntil(due, now time.Time) int {
	return int(math.Ceil(float64(due.Sub(now)) / float64(oneDay)))
}

// NextOccurrence rolls reference + interval forward in whole intervals
// until the result is no longer before now. The returned date is never
// strictly before now for any positive interval.
func NextOccurrence(reference time.Time, intervalMonths int, now time.Time) time.Time {
	next := reference.AddDate(0, intervalMonths, 0)
	for next.Before(now) {
		next = next.AddDate(0, intervalMonths, 0)
	}
	return next
}

// Compute resolves the schedule for one recurring obligation. The
// reference date is the registration (or other anchor) date; when the
// business has already filed, lastFiled restarts the cycle from that
// filing. The first occurrence after the effective reference that fell
// before now without a covering filing becomes FirstMissed.
func Compute(reference time.Time, intervalMonths int, lastFiled *time.Time, now time.Time) (*Occurrence, error) {
	if intervalMonths <= 0 {
		return nil, fmt.Errorf("recurrence interval must be positive, got %d months", intervalMonths)
	}

	effective := reference
	if lastFiled != nil && lastFiled.After(reference) {
		effective = *lastFiled
	}

	occ := &Occurrence{}
	firstDue := effective.AddDate(0, intervalMonths, 0)
	if firstDue.Before(now) {
		missed := firstDue
		occ.FirstMissed = &missed
		occ.DaysOverdue = int(now.Sub(missed) / oneDay)
	}

	occ.NextDue = NextOccurrence(effective, intervalMonths, now)
	occ.DaysUntilDue = DaysUntil(occ.NextDue, now)
	return occ, nil
}
