package booking

import "fmt"

// ConflictMode selects how a candidate booking is compared with existing ones.
type ConflictMode string

const (
	// ConflictExact flags bookings sharing staff, date and start time.
	ConflictExact ConflictMode = "exact"
	// ConflictOverlap additionally flags overlapping [start, start+duration)
	// intervals for the same staff and date.
	ConflictOverlap ConflictMode = "overlap"
)

// ParseConflictMode validates a configured mode; empty means exact.
func ParseConflictMode(s string) (ConflictMode, error) {
	switch ConflictMode(s) {
	case "", ConflictExact:
		return ConflictExact, nil
	case ConflictOverlap:
		return ConflictOverlap, nil
	}
	return "", fmt.Errorf("unknown conflict mode %q", s)
}

// HasConflict reports whether any non-cancelled booking occupies the exact
// slot (staffID, date, startTime). Unassigned bookings (empty staffID)
// collide with each other.
func HasConflict(existing []*Booking, staffID, date, startTime string) bool {
	for _, b := range existing {
		if b.Status == StatusCancelled {
			continue
		}
		if b.StaffID == staffID && b.Date == date && b.StartTime == startTime {
			return true
		}
	}
	return false
}

// HasOverlap reports whether the interval starting at startTime and lasting
// duration minutes intersects any non-cancelled booking of the same staff on
// the same date. Zero durations count as one minute so equal starts always
// collide.
func HasOverlap(existing []*Booking, staffID, date, startTime string, duration int) bool {
	start, ok := clockMinutes(startTime)
	if !ok {
		return HasConflict(existing, staffID, date, startTime)
	}
	end := start + max(duration, 1)

	for _, b := range existing {
		if b.Status == StatusCancelled || b.StaffID != staffID || b.Date != date {
			continue
		}
		bStart, ok := clockMinutes(b.StartTime)
		if !ok {
			if b.StartTime == startTime {
				return true
			}
			continue
		}
		bEnd := bStart + max(b.ProductDuration, 1)
		if start < bEnd && bStart < end {
			return true
		}
	}
	return false
}

// Validator applies the configured conflict mode to a candidate booking.
type Validator struct {
	Mode ConflictMode
}

// Conflicts reports whether candidate collides with existing.
func (v Validator) Conflicts(existing []*Booking, candidate *Booking) bool {
	if v.Mode == ConflictOverlap {
		return HasOverlap(existing, candidate.StaffID, candidate.Date, candidate.StartTime, candidate.ProductDuration)
	}
	return HasConflict(existing, candidate.StaffID, candidate.Date, candidate.StartTime)
}

// conflictQuery returns the equality filters that fetch the bookings a
// candidate could collide with.
func (v Validator) conflictQuery(candidate *Booking) map[string]string {
	q := map[string]string{
		"staffId": candidate.StaffID,
		"date":    candidate.Date,
	}
	if v.Mode != ConflictOverlap {
		q["startTime"] = candidate.StartTime
	}
	return q
}
