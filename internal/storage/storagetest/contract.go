// Package storagetest holds behaviour checks shared by every saved-jobs backend
package storagetest

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/repository"
)

// RunSavedJobRepository exercises repo with fresh random user ids so it can
// run against shared databases
func RunSavedJobRepository(t *testing.T, repo repository.SavedJobRepository) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

	user := "user-" + uuid.NewString()
	other := "user-" + uuid.NewString()

	t.Run("empty list", func(t *testing.T) {
		got, err := repo.List(ctx, user)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("List() = %v, want empty", got)
		}
	})

	t.Run("most recent first", func(t *testing.T) {
		for i, id := range []string{"job-a", "job-b", "job-c"} {
			if err := repo.Save(ctx, user, id, base.Add(time.Duration(i)*time.Hour)); err != nil {
				t.Fatalf("Save(%q) error = %v", id, err)
			}
		}
		if err := repo.Save(ctx, other, "job-a", base); err != nil {
			t.Fatalf("Save(other) error = %v", err)
		}

		got, err := repo.List(ctx, user)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if ids := jobIDs(got); !slices.Equal(ids, []string{"job-c", "job-b", "job-a"}) {
			t.Fatalf("List() = %v", ids)
		}
		for _, sj := range got {
			if sj.UserID != user {
				t.Errorf("UserID = %q, want %q", sj.UserID, user)
			}
		}
		if !got[0].SavedAt.Equal(base.Add(2 * time.Hour)) {
			t.Errorf("SavedAt = %v, want %v", got[0].SavedAt, base.Add(2*time.Hour))
		}
	})

	t.Run("saving again moves to front", func(t *testing.T) {
		if err := repo.Save(ctx, user, "job-a", base.Add(5*time.Hour)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := repo.List(ctx, user)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if ids := jobIDs(got); !slices.Equal(ids, []string{"job-a", "job-c", "job-b"}) {
			t.Fatalf("List() = %v", ids)
		}
	})

	t.Run("remove is idempotent and scoped to the user", func(t *testing.T) {
		for range 2 {
			if err := repo.Remove(ctx, user, "job-a"); err != nil {
				t.Fatalf("Remove() error = %v", err)
			}
		}
		got, err := repo.List(ctx, user)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if ids := jobIDs(got); !slices.Equal(ids, []string{"job-c", "job-b"}) {
			t.Fatalf("List() = %v", ids)
		}

		others, err := repo.List(ctx, other)
		if err != nil {
			t.Fatalf("List(other) error = %v", err)
		}
		if ids := jobIDs(others); !slices.Equal(ids, []string{"job-a"}) {
			t.Fatalf("List(other) = %v", ids)
		}
	})

	t.Cleanup(func() {
		for _, u := range []string{user, other} {
			for _, id := range []string{"job-a", "job-b", "job-c"} {
				_ = repo.Remove(context.Background(), u, id)
			}
		}
	})
}

func jobIDs(rows []domain.SavedJob) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.JobID)
	}
	return out
}
