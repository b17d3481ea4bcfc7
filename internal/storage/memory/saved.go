package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/repository"
)

var _ repository.SavedJobRepository = (*SavedJobRepository)(nil)

// SavedJobRepository keeps saved jobs in process memory
type SavedJobRepository struct {
	mu    sync.RWMutex
	saved map[string]map[string]time.Time // user -> job -> savedAt
}

func NewSavedJobRepository() *SavedJobRepository {
	return &SavedJobRepository{saved: make(map[string]map[string]time.Time)}
}

func (r *SavedJobRepository) Save(_ context.Context, userID, jobID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	jobs, ok := r.saved[userID]
	if !ok {
		jobs = make(map[string]time.Time)
		r.saved[userID] = jobs
	}
	jobs[jobID] = at
	return nil
}

func (r *SavedJobRepository) Remove(_ context.Context, userID, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if jobs, ok := r.saved[userID]; ok {
		delete(jobs, jobID)
		if len(jobs) == 0 {
			delete(r.saved, userID)
		}
	}
	return nil
}

func (r *SavedJobRepository) List(_ context.Context, userID string) ([]domain.SavedJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.SavedJob, 0, len(r.saved[userID]))
	for jobID, at := range r.saved[userID] {
		out = append(out, domain.SavedJob{UserID: userID, JobID: jobID, SavedAt: at})
	}

	slices.SortFunc(out, func(a, b domain.SavedJob) int {
		if c := b.SavedAt.Compare(a.SavedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.JobID, b.JobID)
	})
	return out, nil
}
