package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
)

const defaultParallelism = 8

// LoadState is the loader lifecycle: Empty -> Loading -> Ready | Failed
type LoadState int32

const (
	StateEmpty LoadState = iota
	StateLoading
	StateReady
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "empty"
	}
}

// LoaderOption configures Loader
type LoaderOption func(*Loader)

// WithNormalizer sets the normalizer used for every document
func WithNormalizer(n *Normalizer) LoaderOption {
	return func(l *Loader) {
		if n != nil {
			l.normalizer = n
		}
	}
}

// WithParallelism bounds concurrent document reads on the per-record path
func WithParallelism(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.parallelism = n
		}
	}
}

// WithLoaderClock sets the clock stamped on loaded catalogs
func WithLoaderClock(clock func() time.Time) LoaderOption {
	return func(l *Loader) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// Loader reads a Source into a Catalog
type Loader struct {
	source      Source
	normalizer  *Normalizer
	parallelism int
	clock       func() time.Time
	log         *logging.Logger
	state       atomic.Int32
}

// NewLoader builds a Loader for src
func NewLoader(src Source, log *logging.Logger, opts ...LoaderOption) *Loader {
	l := &Loader{
		source:      src,
		normalizer:  NewNormalizer(),
		parallelism: defaultParallelism,
		clock:       time.Now,
		log:         log,
	}
	if l.log == nil {
		l.log = logging.NewNop()
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State reports the outcome of the most recent Load
func (l *Loader) State() LoadState {
	return LoadState(l.state.Load())
}

// Load builds a catalog from the aggregated index when it is present and
// parses, otherwise from every per-job document. A source that cannot be
// read at all yields an empty catalog together with the error.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	l.state.Store(int32(StateLoading))
	name := l.source.Name()

	if records, skipped, ok := l.fromIndex(ctx); ok {
		l.state.Store(int32(StateReady))
		c := newCatalog(records, skipped, name, StrategyIndex, l.clock())
		l.log.Info("catalog loaded", "source", name, "strategy", StrategyIndex, "count", c.Len(), "skipped", c.Skipped())
		return c, nil
	}

	records, skipped, err := l.fromRecords(ctx)
	if err != nil {
		l.state.Store(int32(StateFailed))
		return emptyCatalog(name, l.clock()), fmt.Errorf("load catalog from %s: %w", name, err)
	}

	l.state.Store(int32(StateReady))
	c := newCatalog(records, skipped, name, StrategyRecords, l.clock())
	l.log.Info("catalog loaded", "source", name, "strategy", StrategyRecords, "count", c.Len(), "skipped", c.Skipped())
	return c, nil
}

func (l *Loader) fromIndex(ctx context.Context) ([]domain.JobRecord, int, bool) {
	data, err := l.source.ReadIndex(ctx)
	if err != nil {
		if !errors.Is(err, ErrIndexNotFound) {
			l.log.Warn("index unreadable, scanning records", "error", err)
		} else {
			l.log.Debug("index not found, scanning records")
		}
		return nil, 0, false
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		l.log.Warn("index is not a json array, scanning records", "error", err)
		return nil, 0, false
	}

	records := make([]domain.JobRecord, 0, len(entries))
	skipped := 0
	for i, entry := range entries {
		rec, ok := l.normalizer.Normalize(entry)
		if !ok {
			skipped++
			l.log.Debug("index entry skipped", "position", i)
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, true
}

type slot struct {
	rec domain.JobRecord
	ok  bool
}

func (l *Loader) fromRecords(ctx context.Context) ([]domain.JobRecord, int, error) {
	names, err := l.source.ListRecords(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}

	slots := make([]slot, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.parallelism)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := l.source.ReadRecord(gctx, name)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				l.log.Warn("record unreadable", "name", name, "error", err)
				return nil
			}
			rec, ok := l.normalizer.Normalize(json.RawMessage(data))
			if !ok {
				l.log.Debug("record skipped", "name", name)
				return nil
			}
			slots[i] = slot{rec: rec, ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	records := make([]domain.JobRecord, 0, len(slots))
	skipped := 0
	for _, s := range slots {
		if !s.ok {
			skipped++
			continue
		}
		records = append(records, s.rec)
	}
	return records, skipped, nil
}
