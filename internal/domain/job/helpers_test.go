package job

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/derived"
)

var ist = time.FixedZone("IST", 5*3600+1800)

// fixedNow is 2025-03-15 10:00 IST
var fixedNow = time.Date(2025, time.March, 15, 10, 0, 0, 0, ist)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func fixedCalc() *derived.Calculator {
	return derived.NewCalculator(
		derived.WithClock(func() time.Time { return fixedNow }),
		derived.WithLocation(ist),
	)
}

// memSource is an in-memory Source
type memSource struct {
	index    []byte
	indexErr error
	names    []string
	records  map[string][]byte
	listErr  error
	details  map[string][]byte
	raws     map[string][]byte
}

func (s *memSource) Name() string { return "mem" }

func (s *memSource) ReadIndex(context.Context) ([]byte, error) {
	if s.indexErr != nil {
		return nil, s.indexErr
	}
	if s.index == nil {
		return nil, ErrIndexNotFound
	}
	return s.index, nil
}

func (s *memSource) ListRecords(context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return slices.Clone(s.names), nil
}

func (s *memSource) ReadRecord(_ context.Context, name string) ([]byte, error) {
	b, ok := s.records[name]
	if !ok {
		return nil, errors.New("no such record")
	}
	return b, nil
}

func (s *memSource) ReadDetail(_ context.Context, id string) ([]byte, error) {
	b, ok := s.details[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *memSource) ReadRaw(_ context.Context, id string) ([]byte, error) {
	b, ok := s.raws[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

// addRecord stores doc as a per-job file named after its position
func (s *memSource) addRecord(t *testing.T, name string, doc any) {
	t.Helper()
	if s.records == nil {
		s.records = make(map[string][]byte)
	}
	switch v := doc.(type) {
	case string:
		s.records[name] = []byte(v)
	default:
		s.records[name] = mustJSON(t, doc)
	}
	s.names = append(s.names, name)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return b
}

// memSaved is an in-memory SavedStore
type memSaved struct {
	mu   sync.Mutex
	rows []domain.SavedJob
}

func (m *memSaved) Save(_ context.Context, userID, jobID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = slices.DeleteFunc(m.rows, func(r domain.SavedJob) bool {
		return r.UserID == userID && r.JobID == jobID
	})
	m.rows = append(m.rows, domain.SavedJob{UserID: userID, JobID: jobID, SavedAt: at})
	return nil
}

func (m *memSaved) Remove(_ context.Context, userID, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = slices.DeleteFunc(m.rows, func(r domain.SavedJob) bool {
		return r.UserID == userID && r.JobID == jobID
	})
	return nil
}

func (m *memSaved) List(_ context.Context, userID string) ([]domain.SavedJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SavedJob
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

func catalogOf(records ...domain.JobRecord) *Catalog {
	return newCatalog(records, 0, "test", StrategyIndex, fixedNow)
}

func ids(records []domain.JobRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
