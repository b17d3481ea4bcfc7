package job

import (
	"slices"
	"strings"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/derived"
)

// Engine filters, orders and paginates catalog snapshots
type Engine struct {
	calc *derived.Calculator
}

// NewEngine builds an Engine; urgency filters use calc's clock and time zone
func NewEngine(calc *derived.Calculator) *Engine {
	if calc == nil {
		calc = derived.NewCalculator()
	}
	return &Engine{calc: calc}
}

// Query applies q to c. Filtering keeps catalog order unless q.Sort says
// otherwise. Total counts matches before pagination.
func (e *Engine) Query(c *Catalog, q domain.JobQuery) domain.JobPage {
	var source []domain.JobRecord
	if c != nil {
		source = c.records
	}

	matches := make([]domain.JobRecord, 0, len(source))
	m := e.matcher(q)
	for _, r := range source {
		if m(r) {
			matches = append(matches, r)
		}
	}

	e.sort(matches, q.Sort)
	return paginate(matches, q.Page)
}

func (e *Engine) matcher(q domain.JobQuery) func(domain.JobRecord) bool {
	var preds []func(domain.JobRecord) bool

	if text := strings.ToLower(strings.TrimSpace(q.Text)); text != "" {
		preds = append(preds, func(r domain.JobRecord) bool {
			return containsFold(r.Title, text) ||
				containsFold(r.Organization, text) ||
				containsFold(r.Qualification, text)
		})
	}

	if q.Location != nil && !strings.EqualFold(*q.Location, domain.AllToken) {
		want := *q.Location
		preds = append(preds, func(r domain.JobRecord) bool {
			if want == domain.NationwideLocation && r.Location == "" {
				return true
			}
			return r.Location == want
		})
	}

	if cat := strings.TrimSpace(q.Category); cat != "" && !strings.EqualFold(cat, domain.AllToken) {
		want := domain.Category(cat)
		preds = append(preds, func(r domain.JobRecord) bool {
			return derived.CategoryOf(r.Organization) == want
		})
	}

	if q.Urgency.Kind != domain.UrgencyAny {
		filter := q.Urgency
		preds = append(preds, func(r domain.JobRecord) bool {
			return derived.MatchesUrgency(e.calc.DaysLeft(r), filter)
		})
	}

	return func(r domain.JobRecord) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

func (e *Engine) sort(records []domain.JobRecord, order domain.SortOrder) {
	switch order {
	case domain.SortRecent:
		slices.SortStableFunc(records, func(a, b domain.JobRecord) int {
			return strings.Compare(b.RecentDate(), a.RecentDate())
		})

	case domain.SortDeadline:
		type keyed struct {
			rec  domain.JobRecord
			days *int
		}
		tmp := make([]keyed, len(records))
		for i, r := range records {
			tmp[i] = keyed{rec: r, days: e.calc.DaysLeft(r)}
		}
		slices.SortStableFunc(tmp, func(a, b keyed) int {
			switch {
			case a.days == nil && b.days == nil:
				return 0
			case a.days == nil:
				return 1
			case b.days == nil:
				return -1
			default:
				return *a.days - *b.days
			}
		})
		for i := range tmp {
			records[i] = tmp[i].rec
		}
	}
}

// paginate slices a 1-indexed window. Number < 1 becomes 1 and Size <= 0
// becomes 1; past-the-end pages are empty.
func paginate(matches []domain.JobRecord, req *domain.PageRequest) domain.JobPage {
	total := len(matches)
	if req == nil {
		return domain.JobPage{Jobs: matches, Total: total, Page: 1, PageSize: total}
	}

	number, size := req.Number, req.Size
	if number < 1 {
		number = 1
	}
	if size <= 0 {
		size = 1
	}

	page := domain.JobPage{Jobs: []domain.JobRecord{}, Total: total, Page: number, PageSize: size}
	// divide rather than add so a huge size cannot overflow
	if total == 0 || number-1 > (total-1)/size {
		return page
	}

	start := (number - 1) * size
	end := start + min(size, total-start)
	page.Jobs = slices.Clone(matches[start:end])
	return page
}

func containsFold(field, lowerNeedle string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), lowerNeedle)
}
