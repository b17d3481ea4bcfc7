package derived

import (
	"testing"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
)

func TestSlugOf(t *testing.T) {
	tests := []struct {
		name string
		rec  domain.JobRecord
		want string
	}{
		{
			name: "deadline year",
			rec: domain.JobRecord{
				ID:           "550e8400-e29b-41d4-a716-446655440001",
				Title:        "Junior Engineer (Civil)",
				Organization: "Staff Selection Commission",
				LastDate:     "2025-04-30",
			},
			want: "staff-selection-commission-junior-engineer-civil-2025--550e8400-e29b-41d4-a716-446655440001",
		},
		{
			name: "publish year when no deadline",
			rec: domain.JobRecord{
				ID:           "job42",
				Title:        "Clerk",
				Organization: "SBI",
				PublishedAt:  "2024-12-01T09:00:00Z",
			},
			want: "sbi-clerk-2024--job42",
		},
		{
			name: "fallback year and empty parts",
			rec:  domain.JobRecord{ID: "x1", Title: "!!!", Organization: "भारतीय रेल"},
			want: "government-job-2026--x1",
		},
		{
			name: "long parts are truncated without trailing hyphen",
			rec: domain.JobRecord{
				ID:           "id",
				Title:        "Assistant Professor in Computer Science and Engineering",
				Organization: "Indian Institute of Technology Bombay",
				LastDate:     "2025-01-01",
			},
			want: "indian-institute-of-technology-assistant-professor-in-compute-2025--id",
		},
		{
			name: "early year is zero padded",
			rec:  domain.JobRecord{ID: "job_1", Title: "T", Organization: "O", LastDate: "0999-01-01"},
			want: "o-t-0999--job_1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlugOf(tt.rec, 2026)
			if got != tt.want {
				t.Errorf("SlugOf() = %q, want %q", got, tt.want)
			}
			if id := IDFromSlug(got); id != tt.rec.ID {
				t.Errorf("IDFromSlug(%q) = %q, want %q", got, id, tt.rec.ID)
			}
		})
	}
}

func TestIDFromSlugRoundTrip(t *testing.T) {
	ids := []string{
		"550e8400-e29b-41d4-a716-446655440001",
		"job_17",
		"a--b",
		"2025-001",
		"ssc-cgl-2025",
		"X",
	}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			rec := domain.JobRecord{ID: id, Title: "Constable 2025", Organization: "Delhi Police", LastDate: "2025-05-01"}
			slug := SlugOf(rec, 2026)
			if got := IDFromSlug(slug); got != id {
				t.Errorf("IDFromSlug(%q) = %q, want %q", slug, got, id)
			}
			if got := IDFromSlug(id); got != id {
				t.Errorf("IDFromSlug(bare %q) = %q, want unchanged", id, got)
			}
		})
	}
}

func TestIDFromSlugLegacyForm(t *testing.T) {
	slug := "staff-selection-commission-junior-engineer-2025-550e8400-e29b-41d4-a716-446655440001"
	want := "550e8400-e29b-41d4-a716-446655440001"

	if got := IDFromSlug(slug); got != want {
		t.Errorf("IDFromSlug(legacy) = %q, want %q", got, want)
	}
}
