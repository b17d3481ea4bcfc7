package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/repository"
)

var _ repository.SavedJobRepository = (*SavedJobRepository)(nil)

// DefaultKeyPrefix namespaces the per-user sorted sets
const DefaultKeyPrefix = "sarkarijobs:saved:"

// SavedJobRepository keeps one sorted set per user: member = job id, score = savedAt in ms
type SavedJobRepository struct {
	rdb    *goredis.Client
	prefix string
}

func NewSavedJobRepository(rdb *goredis.Client, prefix string) *SavedJobRepository {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &SavedJobRepository{rdb: rdb, prefix: prefix}
}

func (r *SavedJobRepository) Save(ctx context.Context, userID, jobID string, at time.Time) error {
	err := r.rdb.ZAdd(ctx, r.key(userID), goredis.Z{
		Score:  float64(at.UnixMilli()),
		Member: jobID,
	}).Err()
	if err != nil {
		return fmt.Errorf("redis zadd: %w", err)
	}
	return nil
}

func (r *SavedJobRepository) Remove(ctx context.Context, userID, jobID string) error {
	if err := r.rdb.ZRem(ctx, r.key(userID), jobID).Err(); err != nil {
		return fmt.Errorf("redis zrem: %w", err)
	}
	return nil
}

func (r *SavedJobRepository) List(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	zs, err := r.rdb.ZRangeArgsWithScores(ctx, goredis.ZRangeArgs{
		Key:   r.key(userID),
		Start: 0,
		Stop:  -1,
		Rev:   true,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("redis zrange: %w", err)
	}

	saved := make([]domain.SavedJob, 0, len(zs))
	for _, z := range zs {
		jobID, ok := z.Member.(string)
		if !ok {
			continue
		}
		saved = append(saved, domain.SavedJob{
			UserID:  userID,
			JobID:   jobID,
			SavedAt: time.UnixMilli(int64(z.Score)).UTC(),
		})
	}
	return saved, nil
}

func (r *SavedJobRepository) key(userID string) string {
	return r.prefix + userID
}
