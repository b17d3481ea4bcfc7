package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/repository"

	pkgneo4j "github.com/venkatajanapareddy/sarkarijobs.cc/pkg/neo4j"
)

// Ensure SavedJobRepository implements repository.SavedJobRepository
var _ repository.SavedJobRepository = (*SavedJobRepository)(nil)

// SavedJobRepository stores bookmarks as (:User)-[:SAVED {savedAt}]->(:Job) edges
type SavedJobRepository struct {
	client *pkgneo4j.Client
}

// NewSavedJobRepository creates a SavedJobRepository with a Neo4j client
func NewSavedJobRepository(client *pkgneo4j.Client) *SavedJobRepository {
	return &SavedJobRepository{
		client: client,
	}
}

// EnsureConstraints creates the uniqueness constraints the MERGEs rely on
func (r *SavedJobRepository) EnsureConstraints(ctx context.Context) error {
	for _, stmt := range []string{
		`CREATE CONSTRAINT user_id IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`,
		`CREATE CONSTRAINT job_id IF NOT EXISTS FOR (j:Job) REQUIRE j.id IS UNIQUE`,
	} {
		if err := r.client.Write(ctx, stmt, nil); err != nil {
			return fmt.Errorf("neo4j constraint: %w", err)
		}
	}
	return nil
}

// Save merges the user, the job and the SAVED edge, refreshing savedAt
func (r *SavedJobRepository) Save(ctx context.Context, userID, jobID string, at time.Time) error {
	query := `
		MERGE (u:User {id: $userId})
		MERGE (j:Job {id: $jobId})
		MERGE (u)-[s:SAVED]->(j)
		SET s.savedAt = datetime({epochMillis: $savedAt})
	`

	return r.client.Write(ctx, query, map[string]any{
		"userId":  userID,
		"jobId":   jobID,
		"savedAt": at.UnixMilli(),
	})
}

// Remove deletes the SAVED edge if present
func (r *SavedJobRepository) Remove(ctx context.Context, userID, jobID string) error {
	query := `
		MATCH (:User {id: $userId})-[s:SAVED]->(:Job {id: $jobId})
		DELETE s
	`

	return r.client.Write(ctx, query, map[string]any{
		"userId": userID,
		"jobId":  jobID,
	})
}

// List loads the user's saved jobs, newest first
func (r *SavedJobRepository) List(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	query := `
		MATCH (:User {id: $userId})-[s:SAVED]->(j:Job)
		RETURN j.id AS jobId, s.savedAt AS savedAt
		ORDER BY s.savedAt DESC, j.id ASC
	`

	records, err := r.client.Read(ctx, query, map[string]any{"userId": userID})
	if err != nil {
		return nil, err
	}

	saved := make([]domain.SavedJob, 0, len(records))
	for _, record := range records {
		jobVal, ok := record.Get("jobId")
		if !ok {
			continue
		}
		jobID, ok := jobVal.(string)
		if !ok {
			continue
		}

		var savedAt time.Time
		if v, ok := record.Get("savedAt"); ok {
			switch dt := v.(type) {
			case time.Time:
				savedAt = dt
			case neo4j.LocalDateTime:
				savedAt = dt.Time()
			}
		}

		saved = append(saved, domain.SavedJob{
			UserID:  userID,
			JobID:   jobID,
			SavedAt: savedAt.UTC(),
		})
	}

	return saved, nil
}
