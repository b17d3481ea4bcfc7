package repository

import (
	"context"
	"errors"
	"time"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
)

// ErrNoUser is returned when a saved-jobs operation has no user to act for
var ErrNoUser = errors.New("no user in session")

// SavedJobRepository defines the interface for saved-job storage operations
type SavedJobRepository interface {
	Save(ctx context.Context, userID, jobID string, at time.Time) error
	Remove(ctx context.Context, userID, jobID string) error
	List(ctx context.Context, userID string) ([]domain.SavedJob, error)
}
