package derived

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
)

const (
	maxSlugPart = 30
	// idSeparator never occurs inside the descriptive prefix, which has its
	// hyphen runs collapsed and trimmed
	idSeparator = "--"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	slugPrefix = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*-[0-9]{4}$`)
)

func slugPart(s, fallback string) string {
	p := strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if len(p) > maxSlugPart {
		p = strings.TrimRight(p[:maxSlugPart], "-")
	}
	if p == "" {
		return fallback
	}
	return p
}

// slugYear picks the year component: deadline, then publish date, then fallback
func slugYear(r domain.JobRecord, fallback int) int {
	for _, s := range []string{r.LastDate, r.PublishedAt} {
		if t, ok := parseDate(s, time.UTC); ok {
			return t.Year()
		}
	}
	return fallback
}

// SlugOf builds "<organization>-<title>-<year>--<id>".
// fallbackYear is used when the record carries no parseable date.
func SlugOf(r domain.JobRecord, fallbackYear int) string {
	var b strings.Builder
	b.WriteString(slugPart(r.Organization, "government"))
	b.WriteByte('-')
	b.WriteString(slugPart(r.Title, "job"))
	b.WriteByte('-')
	fmt.Fprintf(&b, "%04d", slugYear(r, fallbackYear))
	b.WriteString(idSeparator)
	b.WriteString(r.ID)
	return b.String()
}

// IDFromSlug recovers the job id from a slug. It accepts the current
// decorated form, the older "...-<uuid>" form, and bare ids, which are
// returned unchanged.
func IDFromSlug(slug string) string {
	if i := strings.Index(slug, idSeparator); i > 0 {
		if id := slug[i+len(idSeparator):]; id != "" && slugPrefix.MatchString(slug[:i]) {
			return id
		}
	}

	parts := strings.Split(slug, "-")
	if len(parts) >= 5 {
		candidate := strings.Join(parts[len(parts)-5:], "-")
		if len(candidate) == 36 {
			if _, err := uuid.Parse(candidate); err == nil {
				return candidate
			}
		}
	}

	return slug
}
