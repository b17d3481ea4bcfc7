package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/repository"
)

var _ repository.SavedJobRepository = (*SavedJobRepository)(nil)

const schema = `
	CREATE TABLE IF NOT EXISTS saved_jobs (
		user_id  TEXT        NOT NULL,
		job_id   TEXT        NOT NULL,
		saved_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, job_id)
	);
	CREATE INDEX IF NOT EXISTS saved_jobs_user_saved_at ON saved_jobs (user_id, saved_at DESC);
`

// SavedJobRepository stores bookmarks in the saved_jobs table
type SavedJobRepository struct {
	pool *pgxpool.Pool
}

func NewSavedJobRepository(pool *pgxpool.Pool) *SavedJobRepository {
	return &SavedJobRepository{pool: pool}
}

// EnsureSchema creates the saved_jobs table when missing
func (r *SavedJobRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("saved_jobs schema: %w", err)
	}
	return nil
}

func (r *SavedJobRepository) Save(ctx context.Context, userID, jobID string, at time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO saved_jobs (user_id, job_id, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, job_id) DO UPDATE SET saved_at = EXCLUDED.saved_at`,
		userID, jobID, at,
	)
	if err != nil {
		return fmt.Errorf("saveJob exec: %w", err)
	}
	return nil
}

func (r *SavedJobRepository) Remove(ctx context.Context, userID, jobID string) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID,
	); err != nil {
		return fmt.Errorf("removeJob exec: %w", err)
	}
	return nil
}

func (r *SavedJobRepository) List(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT job_id, saved_at
		FROM saved_jobs
		WHERE user_id = $1
		ORDER BY saved_at DESC, job_id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listSaved query: %w", err)
	}
	defer rows.Close()

	saved := make([]domain.SavedJob, 0)
	for rows.Next() {
		sj := domain.SavedJob{UserID: userID}
		if err := rows.Scan(&sj.JobID, &sj.SavedAt); err != nil {
			return nil, fmt.Errorf("listSaved scan: %w", err)
		}
		sj.SavedAt = sj.SavedAt.UTC()
		saved = append(saved, sj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listSaved rows: %w", err)
	}
	return saved, nil
}
