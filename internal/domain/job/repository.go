package job

import (
	"context"
	"time"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
)

// SavedStore persists (user, job) bookmarks
type SavedStore interface {
	// Save records the association; saving twice keeps the newer timestamp
	Save(ctx context.Context, userID, jobID string, at time.Time) error

	// Remove deletes the association; removing a missing one is not an error
	Remove(ctx context.Context, userID, jobID string) error

	// List returns the user's saved jobs, most recently saved first
	List(ctx context.Context, userID string) ([]domain.SavedJob, error)
}
