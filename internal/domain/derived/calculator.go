// Package derived computes presentation-independent values from job records.
// Everything here is deterministic for a fixed clock.
package derived

import (
	"time"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
)

// Option configures Calculator
type Option func(*Calculator)

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *Calculator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLocation sets the deployment time zone used for day boundaries
func WithLocation(loc *time.Location) Option {
	return func(c *Calculator) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// Calculator binds the pure functions to a clock and time zone
type Calculator struct {
	clock func() time.Time
	loc   *time.Location
}

// NewCalculator builds a Calculator from options
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		clock: time.Now,
		loc:   time.UTC,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Location returns the configured time zone
func (c *Calculator) Location() *time.Location {
	return c.loc
}

// Today returns midnight of the current day in the configured time zone
func (c *Calculator) Today() time.Time {
	now := c.clock().In(c.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
}

// DaysLeft returns the countdown to the record's deadline, or nil
func (c *Calculator) DaysLeft(r domain.JobRecord) *int {
	return DaysUntil(r.LastDate, c.Today(), c.loc)
}

// Urgency classifies a record, reporting UrgencyNone when there is no usable deadline
func (c *Calculator) Urgency(r domain.JobRecord) domain.Urgency {
	if _, ok := parseDate(r.LastDate, c.loc); !ok {
		return domain.UrgencyNone
	}
	return UrgencyBucket(c.DaysLeft(r))
}

// Slug builds the record's URL slug using the calculator's clock for the year fallback
func (c *Calculator) Slug(r domain.JobRecord) string {
	return SlugOf(r, c.clock().In(c.loc).Year())
}

// Summarize builds the response view of a record with its derived fields
func (c *Calculator) Summarize(r domain.JobRecord) domain.JobSummary {
	return domain.JobSummary{
		ID:                   r.ID,
		Slug:                 c.Slug(r),
		Title:                r.Title,
		Organization:         r.Organization,
		Category:             CategoryOf(r.Organization),
		Location:             r.EffectiveLocation(),
		TotalPosts:           r.TotalPosts,
		Qualification:        r.Qualification,
		Salary:               r.Salary,
		LastDate:             r.LastDate,
		ApplicationStartDate: r.ApplicationStartDate,
		PublishedAt:          r.PublishedAt,
		DaysLeft:             c.DaysLeft(r),
		Urgency:              c.Urgency(r),
		Links:                r.Links,
	}
}
