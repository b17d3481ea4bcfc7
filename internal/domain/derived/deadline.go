package derived

import (
	"strings"
	"time"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
)

const (
	closingSoonDays = 2
	thisWeekDays    = 7
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseDate reads an ISO-8601 date or timestamp and returns it in loc
func parseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}

	if len(s) >= 10 {
		if t, err := time.ParseInLocation(time.DateOnly, s[:10], loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// DaysUntil counts whole days from today to lastDate at day granularity.
// It returns nil when lastDate is empty, unparseable, or already past;
// a deadline equal to today yields 0.
func DaysUntil(lastDate string, today time.Time, loc *time.Location) *int {
	if loc == nil {
		loc = time.UTC
	}

	deadline, ok := parseDate(lastDate, loc)
	if !ok {
		return nil
	}

	today = today.In(loc)
	from := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)

	// both are UTC midnights, so the second difference divides exactly
	days := int((to.Unix() - from.Unix()) / 86400)
	if days < 0 {
		return nil
	}
	return &days
}

// UrgencyBucket maps a countdown to its bucket; nil means expired
func UrgencyBucket(days *int) domain.Urgency {
	switch {
	case days == nil || *days < 0:
		return domain.UrgencyExpired
	case *days == 0:
		return domain.UrgencyToday
	case *days <= closingSoonDays:
		return domain.UrgencyClosingSoon
	case *days <= thisWeekDays:
		return domain.UrgencyClosingThisWeek
	default:
		return domain.UrgencyNormal
	}
}

// MatchesUrgency reports whether a countdown satisfies the filter.
// A nil countdown never matches a deadline filter.
func MatchesUrgency(days *int, f domain.UrgencyFilter) bool {
	if f.Kind == domain.UrgencyAny {
		return true
	}
	if days == nil {
		return false
	}

	switch f.Kind {
	case domain.UrgencyDueToday:
		return *days == 0
	case domain.UrgencyDueSoon:
		return *days <= closingSoonDays
	case domain.UrgencyDueThisWeek:
		return *days <= thisWeekDays
	case domain.UrgencyDueWithin:
		return *days <= f.Days
	default:
		return false
	}
}
