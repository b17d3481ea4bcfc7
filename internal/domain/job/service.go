package job

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/derived"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/repository"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
)

const maxUrgentJobs = 3

type Service interface {
	Search(ctx context.Context, q domain.JobQuery) (domain.JobSearchResult, error)
	Detail(ctx context.Context, slugOrID string) (domain.JobDetail, error)
	Saved(ctx context.Context, userID string) ([]domain.SavedJobEntry, error)
	Save(ctx context.Context, userID, jobID string) error
	Unsave(ctx context.Context, userID, jobID string) error
	Stats(ctx context.Context) (domain.CatalogStats, error)
	Refresh(ctx context.Context) (domain.CatalogStats, error)
}

// Option configures Service
type Option func(*config)

type config struct {
	cache  *Cache
	source Source
	saved  SavedStore
	calc   *derived.Calculator
	clock  func() time.Time
	log    *logging.Logger
}

// WithCache sets the catalog cache
func WithCache(cache *Cache) Option {
	return func(c *config) {
		c.cache = cache
	}
}

// WithSource sets the store used for job detail documents
func WithSource(src Source) Option {
	return func(c *config) {
		c.source = src
	}
}

// WithSavedStore sets the saved-jobs store
func WithSavedStore(store SavedStore) Option {
	return func(c *config) {
		c.saved = store
	}
}

// WithCalculator sets the derived-field calculator
func WithCalculator(calc *derived.Calculator) Option {
	return func(c *config) {
		c.calc = calc
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(log *logging.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.cache == nil {
		return nil, fmt.Errorf("job.Service: cache is required")
	}
	if cfg.source == nil {
		return nil, fmt.Errorf("job.Service: source is required")
	}
	if cfg.saved == nil {
		return nil, fmt.Errorf("job.Service: saved store is required")
	}
	if cfg.calc == nil {
		cfg.calc = derived.NewCalculator(derived.WithClock(cfg.clock))
	}
	if cfg.log == nil {
		cfg.log = logging.NewNop()
	}

	return &service{
		cache:  cfg.cache,
		engine: NewEngine(cfg.calc),
		source: cfg.source,
		saved:  cfg.saved,
		calc:   cfg.calc,
		clock:  cfg.clock,
		log:    cfg.log,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(
	cache *Cache,
	src Source,
	saved SavedStore,
	calc *derived.Calculator,
	log *logging.Logger,
) (Service, error) {
	return NewService(
		WithCache(cache),
		WithSource(src),
		WithSavedStore(saved),
		WithCalculator(calc),
		WithLogger(log),
	)
}

type service struct {
	cache  *Cache
	engine *Engine
	source Source
	saved  SavedStore
	calc   *derived.Calculator
	clock  func() time.Time
	log    *logging.Logger
}

// Search runs q against the current catalog snapshot
func (s *service) Search(ctx context.Context, q domain.JobQuery) (domain.JobSearchResult, error) {
	cat := s.cache.Get(ctx)
	page := s.engine.Query(cat, q)

	summaries := make([]domain.JobSummary, 0, len(page.Jobs))
	for _, r := range page.Jobs {
		summaries = append(summaries, s.calc.Summarize(r))
	}

	return domain.JobSearchResult{
		Jobs:       summaries,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(),
		LoadedAt:   cat.LoadedAt(),
		Source:     cat.Source(),
	}, nil
}

// Detail resolves a slug or bare id and loads the job's full document.
// A catalog entry without a per-job document still yields its summary.
func (s *service) Detail(ctx context.Context, slugOrID string) (domain.JobDetail, error) {
	slugOrID = strings.TrimSpace(slugOrID)
	if slugOrID == "" {
		return domain.JobDetail{}, ErrNotFound
	}

	rec, ok := resolve(s.cache.Get(ctx), slugOrID)
	if !ok {
		return domain.JobDetail{}, fmt.Errorf("%w: %s", ErrNotFound, slugOrID)
	}

	detail := domain.JobDetail{Summary: s.calc.Summarize(rec)}

	doc, err := s.readDocument(ctx, rec.ID, s.source.ReadDetail)
	switch {
	case errors.Is(err, ErrNotFound):
		s.log.Debug("job document missing, serving summary", "id", rec.ID)
		return detail, nil
	case err != nil:
		return domain.JobDetail{}, fmt.Errorf("job detail %s: %w", rec.ID, err)
	}

	if links, ok := doc["links"].(map[string]any); ok {
		if _, has := links["applicationForm"]; has {
			links["applicationFormLocal"] = true
		}
	}
	detail.Document = doc

	raw, err := s.readDocument(ctx, rec.ID, s.source.ReadRaw)
	switch {
	case err == nil:
		detail.RawContent = raw["rawContent"]
	case !errors.Is(err, ErrNotFound):
		s.log.Warn("raw job document unreadable", "id", rec.ID, "error", err)
	}

	return detail, nil
}

// resolve finds a job by its literal id first, then by the id decoded
// from a slug
func resolve(cat *Catalog, slugOrID string) (domain.JobRecord, bool) {
	if rec, ok := cat.Find(slugOrID); ok {
		return rec, true
	}
	if id := derived.IDFromSlug(slugOrID); id != slugOrID {
		return cat.Find(id)
	}
	return domain.JobRecord{}, false
}

func (s *service) readDocument(
	ctx context.Context,
	id string,
	read func(context.Context, string) ([]byte, error),
) (map[string]any, error) {
	data, err := read(ctx, id)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// Saved lists the user's saved jobs that are still in the catalog
func (s *service) Saved(ctx context.Context, userID string) ([]domain.SavedJobEntry, error) {
	if userID == "" {
		return nil, repository.ErrNoUser
	}

	saved, err := s.saved.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved jobs: %w", err)
	}

	cat := s.cache.Get(ctx)
	entries := make([]domain.SavedJobEntry, 0, len(saved))
	for _, sj := range saved {
		rec, ok := cat.Find(sj.JobID)
		if !ok {
			continue
		}
		entries = append(entries, domain.SavedJobEntry{
			Job:     s.calc.Summarize(rec),
			SavedAt: sj.SavedAt,
		})
	}
	return entries, nil
}

// Save bookmarks a catalog job for the user
func (s *service) Save(ctx context.Context, userID, jobID string) error {
	if userID == "" {
		return repository.ErrNoUser
	}

	rec, ok := resolve(s.cache.Get(ctx), jobID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}

	if err := s.saved.Save(ctx, userID, rec.ID, s.clock().UTC()); err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return nil
}

// Unsave removes a bookmark; ids no longer in the catalog can still be removed
func (s *service) Unsave(ctx context.Context, userID, jobID string) error {
	if userID == "" {
		return repository.ErrNoUser
	}
	id := derived.IDFromSlug(jobID)
	if rec, ok := resolve(s.cache.Get(ctx), jobID); ok {
		id = rec.ID
	}
	if err := s.saved.Remove(ctx, userID, id); err != nil {
		return fmt.Errorf("remove saved job: %w", err)
	}
	return nil
}

// Stats summarizes the current snapshot
func (s *service) Stats(ctx context.Context) (domain.CatalogStats, error) {
	return s.stats(s.cache.Get(ctx)), nil
}

// Refresh reloads the catalog now. On failure the stats describe the
// snapshot still being served.
func (s *service) Refresh(ctx context.Context) (domain.CatalogStats, error) {
	cat, err := s.cache.Refresh(ctx)
	if err != nil {
		return s.stats(cat), fmt.Errorf("refresh catalog: %w", err)
	}
	return s.stats(cat), nil
}

func (s *service) stats(cat *Catalog) domain.CatalogStats {
	if cat == nil {
		cat = emptyCatalog("", s.clock())
	}
	st := domain.CatalogStats{
		Total:      cat.Len(),
		Skipped:    cat.Skipped(),
		Source:     cat.Source(),
		LoadedAt:   cat.LoadedAt(),
		ByCategory: make(map[domain.Category]int, len(domain.Categories)),
		ByUrgency:  make(map[domain.Urgency]int),
		Locations:  []string{},
		Urgent:     []domain.UrgentJob{},
	}
	for _, c := range domain.Categories {
		st.ByCategory[c] = 0
	}

	locations := make(map[string]struct{})
	for _, r := range cat.records {
		st.ByCategory[derived.CategoryOf(r.Organization)]++
		st.ByUrgency[s.calc.Urgency(r)]++
		locations[r.EffectiveLocation()] = struct{}{}

		if days := s.calc.DaysLeft(r); days != nil && *days <= 1 {
			st.Urgent = append(st.Urgent, domain.UrgentJob{
				ID:       r.ID,
				Slug:     s.calc.Slug(r),
				Title:    r.Title,
				DaysLeft: *days,
			})
		}
	}

	for loc := range locations {
		st.Locations = append(st.Locations, loc)
	}
	slices.Sort(st.Locations)

	slices.SortStableFunc(st.Urgent, func(a, b domain.UrgentJob) int {
		return cmp.Compare(a.DaysLeft, b.DaysLeft)
	})
	if len(st.Urgent) > maxUrgentJobs {
		st.Urgent = st.Urgent[:maxUrgentJobs]
	}

	return st
}
