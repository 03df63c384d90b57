package booking

import (
	"sort"
	"strings"
	"time"
)

// Date filter keywords accepted by Filter.Date.
const (
	DateAll      = "all"
	DateToday    = "today"
	DateTomorrow = "tomorrow"
	DateWeek     = "week"
	DateMonth    = "month"
	DateUpcoming = "upcoming"
)

// ValidateFilter rejects date keywords that are neither known nor a literal
// YYYY-MM-DD date.
func ValidateFilter(f Filter) error {
	switch strings.ToLower(strings.TrimSpace(f.Date)) {
	case "", DateAll, DateToday, DateTomorrow, DateWeek, DateMonth, DateUpcoming:
		return nil
	}
	if _, err := time.Parse(DateLayout, strings.TrimSpace(f.Date)); err != nil {
		return ErrInvalidDateFilter
	}
	return nil
}

// ApplyFilter returns the bookings matching f, sorted by date and start time
// descending. today anchors the relative date keywords; only its calendar
// date is used. The input slice is not modified.
func ApplyFilter(bookings []*Booking, f Filter, today time.Time) []*Booking {
	match := dateMatcher(strings.TrimSpace(f.Date), today)

	status := strings.TrimSpace(f.Status)
	var wantStatus Status
	if status != "" && !strings.EqualFold(status, "all") {
		wantStatus = Normalize(status)
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if !match(b.Date) {
			continue
		}
		if wantStatus != "" && Normalize(string(b.Status)) != wantStatus {
			continue
		}
		if search != "" && !matchesSearch(b, search) {
			continue
		}
		out = append(out, b)
	}
	SortBookings(out)
	return out
}

// SortBookings orders bookings by (date DESC, startTime DESC), newest
// createdAt first on ties.
func SortBookings(bookings []*Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.StartTime != b.StartTime {
			return a.StartTime > b.StartTime
		}
		return a.CreatedAt > b.CreatedAt
	})
}

func matchesSearch(b *Booking, needle string) bool {
	for _, field := range []string{b.ClientName, b.ClientPhone, b.ClientEmail, b.ProductName} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// dateMatcher builds the predicate for a date keyword. ISO dates are fixed
// width and zero padded, so string comparison orders them correctly.
func dateMatcher(keyword string, today time.Time) func(string) bool {
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(DateLayout)
	}
	todayStr := day(0)

	switch strings.ToLower(keyword) {
	case "", DateAll:
		return func(string) bool { return true }
	case DateToday:
		return func(d string) bool { return d == todayStr }
	case DateTomorrow:
		tomorrow := day(1)
		return func(d string) bool { return d == tomorrow }
	case DateWeek:
		from, to := day(-3), day(3)
		return func(d string) bool { return d >= from && d <= to }
	case DateMonth:
		prefix := todayStr[:7]
		return func(d string) bool { return strings.HasPrefix(d, prefix) }
	case DateUpcoming:
		return func(d string) bool { return d >= todayStr }
	default:
		return func(d string) bool { return d == keyword }
	}
}
