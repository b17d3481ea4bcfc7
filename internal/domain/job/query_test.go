package job

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestQueryPagination(t *testing.T) {
	records := make([]domain.JobRecord, 55)
	for i := range records {
		records[i] = domain.JobRecord{ID: fmt.Sprintf("%02d", i), Title: "Clerk", Organization: "SBI"}
	}
	cat := catalogOf(records...)
	engine := NewEngine(fixedCalc())

	tests := []struct {
		name      string
		page      *domain.PageRequest
		wantLen   int
		wantFirst string
		wantPage  int
		wantSize  int
	}{
		{"first page", &domain.PageRequest{Number: 1, Size: 20}, 20, "00", 1, 20},
		{"last partial page", &domain.PageRequest{Number: 3, Size: 20}, 15, "40", 3, 20},
		{"past the end", &domain.PageRequest{Number: 4, Size: 20}, 0, "", 4, 20},
		{"far past the end", &domain.PageRequest{Number: 1 << 30, Size: 20}, 0, "", 1 << 30, 20},
		{"zero page clamps to first", &domain.PageRequest{Number: 0, Size: 20}, 20, "00", 1, 20},
		{"zero size clamps to one", &domain.PageRequest{Number: 2, Size: 0}, 1, "01", 2, 1},
		{"negative size clamps to one", &domain.PageRequest{Number: 1, Size: -5}, 1, "00", 1, 1},
		{"huge size returns everything", &domain.PageRequest{Number: 1, Size: math.MaxInt}, 55, "00", 1, math.MaxInt},
		{"huge size second page is empty", &domain.PageRequest{Number: 2, Size: math.MaxInt}, 0, "", 2, math.MaxInt},
		{"no paging returns everything", nil, 55, "00", 1, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Query(cat, domain.JobQuery{Page: tt.page})

			if got.Total != 55 {
				t.Errorf("Total = %d, want 55", got.Total)
			}
			if len(got.Jobs) != tt.wantLen {
				t.Fatalf("len(Jobs) = %d, want %d", len(got.Jobs), tt.wantLen)
			}
			if got.Jobs == nil {
				t.Error("Jobs is nil, want empty slice")
			}
			if tt.wantLen > 0 && got.Jobs[0].ID != tt.wantFirst {
				t.Errorf("first = %q, want %q", got.Jobs[0].ID, tt.wantFirst)
			}
			if got.Page != tt.wantPage || got.PageSize != tt.wantSize {
				t.Errorf("Page/PageSize = %d/%d, want %d/%d", got.Page, got.PageSize, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestQueryFilters(t *testing.T) {
	cat := catalogOf(
		domain.JobRecord{ID: "rail", Title: "Loco Pilot", Organization: "RRB Chennai", Location: "Chennai", LastDate: "2025-03-15"},
		domain.JobRecord{ID: "cs", Title: "Assistant", Organization: "Municipal Office", Qualification: "B.Tech Computer Science", LastDate: "2025-03-17"},
		domain.JobRecord{ID: "bank", Title: "Probationary Officer", Organization: "State Bank of India", LastDate: "2025-03-20"},
		domain.JobRecord{ID: "nation", Title: "Constable", Organization: "Delhi Police"},
		domain.JobRecord{ID: "labelled", Title: "Clerk", Organization: "Post Office", Location: "All India", LastDate: "2025-03-10"},
		domain.JobRecord{ID: "delhi", Title: "Teacher", Organization: "Delhi University", Location: "Delhi", LastDate: "2025-05-01"},
	)
	engine := NewEngine(fixedCalc())

	tests := []struct {
		name  string
		query domain.JobQuery
		want  []string
	}{
		{"no filters keep order", domain.JobQuery{}, []string{"delhi", "bank", "cs", "rail", "labelled", "nation"}},
		{"qualification-only hit", domain.JobQuery{Text: "computer"}, []string{"cs"}},
		{"case-insensitive title", domain.JobQuery{Text: "LOCO"}, []string{"rail"}},
		{"organization hit", domain.JobQuery{Text: "delhi"}, []string{"delhi", "nation"}},
		{"whitespace text is absent", domain.JobQuery{Text: "   "}, []string{"delhi", "bank", "cs", "rail", "labelled", "nation"}},
		{"location all", domain.JobQuery{Location: strPtr("all")}, []string{"delhi", "bank", "cs", "rail", "labelled", "nation"}},
		{"location exact", domain.JobQuery{Location: strPtr("Delhi")}, []string{"delhi"}},
		{"location is case-sensitive", domain.JobQuery{Location: strPtr("delhi")}, []string{}},
		{"nationwide matches empty location", domain.JobQuery{Location: strPtr("All India")}, []string{"bank", "cs", "labelled", "nation"}},
		{"category", domain.JobQuery{Category: "Banking"}, []string{"bank"}},
		{"category all", domain.JobQuery{Category: "all"}, []string{"delhi", "bank", "cs", "rail", "labelled", "nation"}},
		{"due today", domain.JobQuery{Urgency: domain.UrgencyFilter{Kind: domain.UrgencyDueToday}}, []string{"rail"}},
		{"closing soon", domain.JobQuery{Urgency: domain.UrgencyFilter{Kind: domain.UrgencyDueSoon}}, []string{"cs", "rail"}},
		{"this week", domain.JobQuery{Urgency: domain.UrgencyFilter{Kind: domain.UrgencyDueThisWeek}}, []string{"bank", "cs", "rail"}},
		{"within 60 days skips undated and expired", domain.JobQuery{Urgency: domain.UrgencyFilter{Kind: domain.UrgencyDueWithin, Days: 60}}, []string{"delhi", "bank", "cs", "rail"}},
		{
			"filters combine",
			domain.JobQuery{Text: "o", Location: strPtr("All India"), Urgency: domain.UrgencyFilter{Kind: domain.UrgencyDueThisWeek}},
			[]string{"bank", "cs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Query(cat, tt.query)
			if gotIDs := ids(got.Jobs); !slices.Equal(gotIDs, tt.want) {
				t.Errorf("ids = %v, want %v", gotIDs, tt.want)
			}
			if got.Total != len(tt.want) {
				t.Errorf("Total = %d, want %d", got.Total, len(tt.want))
			}
		})
	}
}

func TestQuerySortOrders(t *testing.T) {
	cat := catalogOf(
		domain.JobRecord{ID: "far", Title: "T", Organization: "O", LastDate: "2025-06-01", PublishedAt: "2025-01-01"},
		domain.JobRecord{ID: "near", Title: "T", Organization: "O", LastDate: "2025-03-16", ProcessedAt: "2025-02-10"},
		domain.JobRecord{ID: "open", Title: "T", Organization: "O", PublishedAt: "2025-03-01"},
		domain.JobRecord{ID: "near-too", Title: "T", Organization: "O", LastDate: "2025-03-16"},
	)
	engine := NewEngine(fixedCalc())
	before := ids(cat.records)

	tests := []struct {
		sort domain.SortOrder
		want []string
	}{
		{domain.SortCatalog, []string{"far", "near", "near-too", "open"}},
		{domain.SortDeadline, []string{"near", "near-too", "far", "open"}},
		{domain.SortRecent, []string{"open", "near", "far", "near-too"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			got := ids(engine.Query(cat, domain.JobQuery{Sort: tt.sort}).Jobs)
			if !slices.Equal(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}

	if after := ids(cat.records); !slices.Equal(before, after) {
		t.Errorf("catalog order mutated: %v -> %v", before, after)
	}
}

func TestQueryNilCatalog(t *testing.T) {
	got := NewEngine(nil).Query(nil, domain.JobQuery{Page: &domain.PageRequest{Number: 1, Size: 10}})
	if got.Total != 0 || len(got.Jobs) != 0 {
		t.Errorf("Query(nil) = %+v, want empty", got)
	}
}
