package job

import (
	"context"
	"errors"
)

var (
	// ErrIndexNotFound is returned by Source.ReadIndex when no aggregated index exists
	ErrIndexNotFound = errors.New("catalog index not found")

	// ErrNotFound is returned when a job or one of its documents does not exist
	ErrNotFound = errors.New("job not found")
)

// Source is the read-only store holding job documents (local directory, bucket mirror, etc.)
type Source interface {
	// e.g. "localfs:/srv/data/jobs"
	Name() string

	// ReadIndex returns the aggregated lightweight index, or ErrIndexNotFound
	ReadIndex(ctx context.Context) ([]byte, error)

	// ListRecords enumerates the per-job documents in a stable order
	ListRecords(ctx context.Context) ([]string, error)

	// ReadRecord returns one document named by ListRecords
	ReadRecord(ctx context.Context, name string) ([]byte, error)

	// ReadDetail returns the full document for a job id, or ErrNotFound
	ReadDetail(ctx context.Context, id string) ([]byte, error)

	// ReadRaw returns the scraped raw document for a job id, or ErrNotFound
	ReadRaw(ctx context.Context, id string) ([]byte, error)
}

// Strategy records which path produced a catalog
type Strategy string

const (
	StrategyNone    Strategy = "none"
	StrategyIndex   Strategy = "index"
	StrategyRecords Strategy = "records"
)
