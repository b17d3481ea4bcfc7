package derived

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
)

var withinDays = regexp.MustCompile(`^within-([0-9]+)-days?$`)

// ParseUrgencyFilter reads an urgency token: "today", "closing-soon",
// "this-week", or "within-N-days". Empty and "all" disable the filter.
func ParseUrgencyFilter(s string) (domain.UrgencyFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", domain.AllToken:
		return domain.UrgencyFilter{Kind: domain.UrgencyAny}, nil
	case "today":
		return domain.UrgencyFilter{Kind: domain.UrgencyDueToday}, nil
	case "closing-soon":
		return domain.UrgencyFilter{Kind: domain.UrgencyDueSoon}, nil
	case "this-week":
		return domain.UrgencyFilter{Kind: domain.UrgencyDueThisWeek}, nil
	}

	if m := withinDays.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return domain.UrgencyFilter{}, fmt.Errorf("urgency %q: %w", s, err)
		}
		return domain.UrgencyFilter{Kind: domain.UrgencyDueWithin, Days: n}, nil
	}

	return domain.UrgencyFilter{}, fmt.Errorf("unknown urgency %q", s)
}

// ParseSortOrder reads a sort token; empty keeps catalog order
func ParseSortOrder(s string) (domain.SortOrder, error) {
	switch domain.SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case domain.SortCatalog:
		return domain.SortCatalog, nil
	case domain.SortRecent:
		return domain.SortRecent, nil
	case domain.SortDeadline:
		return domain.SortDeadline, nil
	default:
		return domain.SortCatalog, fmt.Errorf("unknown sort %q", s)
	}
}
