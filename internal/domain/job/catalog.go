package job

import (
	"slices"
	"strings"
	"time"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
)

// Catalog is an immutable, sorted snapshot of normalized job records
type Catalog struct {
	records  []domain.JobRecord
	byID     map[string]int
	loadedAt time.Time
	source   string
	strategy Strategy
	skipped  int
}

// newCatalog drops duplicate ids (first wins) and sorts by effective date
// descending. Records without any date sort last; ties keep input order.
func newCatalog(records []domain.JobRecord, skipped int, source string, strategy Strategy, loadedAt time.Time) *Catalog {
	c := &Catalog{
		records:  make([]domain.JobRecord, 0, len(records)),
		byID:     make(map[string]int, len(records)),
		loadedAt: loadedAt,
		source:   source,
		strategy: strategy,
		skipped:  skipped,
	}

	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			c.skipped++
			continue
		}
		seen[r.ID] = struct{}{}
		c.records = append(c.records, r)
	}

	slices.SortStableFunc(c.records, func(a, b domain.JobRecord) int {
		return strings.Compare(b.EffectiveDate(), a.EffectiveDate())
	})

	for i, r := range c.records {
		c.byID[r.ID] = i
	}
	return c
}

func emptyCatalog(source string, loadedAt time.Time) *Catalog {
	return newCatalog(nil, 0, source, StrategyNone, loadedAt)
}

// Len returns the number of records; a nil catalog is empty
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Records returns a copy of the records in catalog order
func (c *Catalog) Records() []domain.JobRecord {
	if c == nil {
		return nil
	}
	return slices.Clone(c.records)
}

// Find looks a record up by id
func (c *Catalog) Find(id string) (domain.JobRecord, bool) {
	if c == nil {
		return domain.JobRecord{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return domain.JobRecord{}, false
	}
	return c.records[i], true
}

func (c *Catalog) LoadedAt() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.loadedAt
}

func (c *Catalog) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

func (c *Catalog) Strategy() Strategy {
	if c == nil {
		return StrategyNone
	}
	return c.strategy
}

// Skipped counts source documents dropped during the load
func (c *Catalog) Skipped() int {
	if c == nil {
		return 0
	}
	return c.skipped
}
