package job

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
)

// IndexEntry is one element of the aggregated lightweight index. Link URLs
// are reduced to presence flags.
type IndexEntry struct {
	ID                   string `json:"id"`
	Title                string `json:"title"`
	Organization         string `json:"organization"`
	TotalPosts           *int   `json:"totalPosts,omitempty"`
	LastDate             string `json:"lastDate,omitempty"`
	ApplicationStartDate string `json:"applicationStartDate,omitempty"`
	Qualification        string `json:"qualification,omitempty"`
	Salary               string `json:"salary,omitempty"`
	Department           string `json:"department,omitempty"`
	Location             string `json:"location,omitempty"`
	PostedDate           string `json:"postedDate,omitempty"`
	HasApplicationForm   bool   `json:"hasApplicationForm"`
	HasOfficialLink      bool   `json:"hasOfficialLink"`
	HasNotification      bool   `json:"hasNotification"`
}

// ScanRecords builds a catalog from the per-job documents only, ignoring any index
func (l *Loader) ScanRecords(ctx context.Context) (*Catalog, error) {
	records, skipped, err := l.fromRecords(ctx)
	if err != nil {
		return emptyCatalog(l.source.Name(), l.clock()), fmt.Errorf("scan records: %w", err)
	}
	return newCatalog(records, skipped, l.source.Name(), StrategyRecords, l.clock()), nil
}

// BuildIndex flattens a catalog into index entries, newest posting first
// (posted date, then deadline)
func BuildIndex(c *Catalog) []IndexEntry {
	entries := make([]IndexEntry, 0, c.Len())
	for _, r := range c.Records() {
		entries = append(entries, indexEntryOf(r))
	}

	slices.SortStableFunc(entries, func(a, b IndexEntry) int {
		return strings.Compare(postedKey(b), postedKey(a))
	})
	return entries
}

func indexEntryOf(r domain.JobRecord) IndexEntry {
	return IndexEntry{
		ID:                   r.ID,
		Title:                r.Title,
		Organization:         r.Organization,
		TotalPosts:           r.TotalPosts,
		LastDate:             r.LastDate,
		ApplicationStartDate: r.ApplicationStartDate,
		Qualification:        r.Qualification,
		Salary:               r.Salary,
		Department:           r.Department,
		Location:             r.Location,
		PostedDate:           r.PublishedAt,
		HasApplicationForm:   r.Links.HasApplicationForm,
		HasOfficialLink:      r.Links.HasOfficialWebsite,
		HasNotification:      r.Links.HasNotification,
	}
}

func postedKey(e IndexEntry) string {
	if e.PostedDate != "" {
		return e.PostedDate
	}
	return e.LastDate
}
