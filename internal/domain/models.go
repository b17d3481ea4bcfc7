package domain

import "time"

// NationwideLocation is the display label for postings without a location
const NationwideLocation = "All India"

// AllToken disables a filter axis when passed as its value
const AllToken = "all"

// Links holds external references attached to a posting
type Links struct {
	ApplicationForm    string `json:"applicationForm,omitempty"`
	OfficialWebsite    string `json:"officialWebsite,omitempty"`
	Notification       string `json:"notification,omitempty"`
	SourceURL          string `json:"sourceUrl,omitempty"`
	HasApplicationForm bool   `json:"hasApplicationForm"`
	HasOfficialWebsite bool   `json:"hasOfficialWebsite"`
	HasNotification    bool   `json:"hasNotification"`
}

// JobRecord is the normalized job posting entity.
// Category is intentionally absent: it is derived from Organization on demand.
type JobRecord struct {
	ID                   string `json:"id"`
	Title                string `json:"title"`
	Organization         string `json:"organization"`
	Location             string `json:"location,omitempty"`
	TotalPosts           *int   `json:"totalPosts,omitempty"`
	Qualification        string `json:"qualification,omitempty"`
	Salary               string `json:"salary,omitempty"`
	Department           string `json:"department,omitempty"`
	LastDate             string `json:"lastDate,omitempty"`
	ApplicationStartDate string `json:"applicationStartDate,omitempty"`
	PublishedAt          string `json:"publishedAt,omitempty"`
	ProcessedAt          string `json:"processedAt,omitempty"`
	Links                Links  `json:"links"`
}

// EffectiveLocation returns the location or the nationwide label
func (r JobRecord) EffectiveLocation() string {
	if r.Location == "" {
		return NationwideLocation
	}
	return r.Location
}

// EffectiveDate is the default sort key: deadline first, then publish date
func (r JobRecord) EffectiveDate() string {
	if r.LastDate != "" {
		return r.LastDate
	}
	return r.PublishedAt
}

// RecentDate is the "recently added" sort key
func (r JobRecord) RecentDate() string {
	if r.PublishedAt != "" {
		return r.PublishedAt
	}
	return r.ProcessedAt
}

// Category is a coarse classification derived from the organization name
type Category string

const (
	CategoryRailway  Category = "Railway"
	CategoryBanking  Category = "Banking"
	CategoryUPSCSSC  Category = "UPSC/SSC"
	CategoryDefence  Category = "Defence/Police"
	CategoryTeaching Category = "Teaching"
	CategoryMedical  Category = "Medical"
	CategoryJudicial Category = "Judicial"
	CategoryOther    Category = "Other"
)

// Categories lists every category in precedence order
var Categories = []Category{
	CategoryRailway,
	CategoryBanking,
	CategoryUPSCSSC,
	CategoryDefence,
	CategoryTeaching,
	CategoryMedical,
	CategoryJudicial,
	CategoryOther,
}

// Urgency is a coarse classification of how soon a deadline falls
type Urgency string

const (
	UrgencyNone            Urgency = "none" // no known deadline
	UrgencyExpired         Urgency = "expired"
	UrgencyToday           Urgency = "today"
	UrgencyClosingSoon     Urgency = "closing-soon"
	UrgencyClosingThisWeek Urgency = "closing-this-week"
	UrgencyNormal          Urgency = "normal"
)

// UrgencyFilterKind selects how a deadline filter is evaluated
type UrgencyFilterKind int

const (
	UrgencyAny UrgencyFilterKind = iota
	UrgencyDueToday
	UrgencyDueSoon
	UrgencyDueThisWeek
	UrgencyDueWithin
)

// UrgencyFilter restricts results by days left until deadline
type UrgencyFilter struct {
	Kind UrgencyFilterKind
	Days int // used by UrgencyDueWithin
}

// SortOrder selects result ordering
type SortOrder string

const (
	SortCatalog  SortOrder = ""
	SortRecent   SortOrder = "recent"
	SortDeadline SortOrder = "deadline"
)

// MaxPageSize caps caller-supplied page sizes at the outer surfaces
const MaxPageSize = 1000

// PageRequest is a 1-indexed page window
type PageRequest struct {
	Number int
	Size   int
}

// JobQuery describes the allowed catalog filters
type JobQuery struct {
	Text     string
	Location *string
	Category string
	Urgency  UrgencyFilter
	Sort     SortOrder
	Page     *PageRequest
}

// JobPage wraps a filtered, paginated view of the catalog
type JobPage struct {
	Jobs     []JobRecord
	Total    int
	Page     int
	PageSize int
}

// TotalPages returns the number of pages for the filtered total
func (p JobPage) TotalPages() int {
	if p.PageSize <= 0 {
		if p.Total > 0 {
			return 1
		}
		return 0
	}
	if p.Total == 0 {
		return 0
	}
	return (p.Total-1)/p.PageSize + 1
}

// JobSummary is the response-friendly job view with derived fields
type JobSummary struct {
	ID                   string   `json:"id"`
	Slug                 string   `json:"slug"`
	Title                string   `json:"title"`
	Organization         string   `json:"organization"`
	Category             Category `json:"category"`
	Location             string   `json:"location"`
	TotalPosts           *int     `json:"totalPosts,omitempty"`
	Qualification        string   `json:"qualification,omitempty"`
	Salary               string   `json:"salary,omitempty"`
	LastDate             string   `json:"lastDate,omitempty"`
	ApplicationStartDate string   `json:"applicationStartDate,omitempty"`
	PublishedAt          string   `json:"publishedAt,omitempty"`
	DaysLeft             *int     `json:"daysLeft"`
	Urgency              Urgency  `json:"urgency"`
	Links                Links    `json:"links"`
}

// JobSearchResult wraps job search output
type JobSearchResult struct {
	Jobs       []JobSummary
	Total      int
	Page       int
	PageSize   int
	TotalPages int
	LoadedAt   time.Time
	Source     string
}

// JobDetail is a catalog record plus its full source document
type JobDetail struct {
	Summary    JobSummary
	Document   map[string]any
	RawContent any
}

// SavedJob is one (user, job) association
type SavedJob struct {
	UserID  string
	JobID   string
	SavedAt time.Time
}

// UrgentJob is a posting whose deadline is at most one day away
type UrgentJob struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	DaysLeft int    `json:"daysLeft"`
}

// CatalogStats summarizes the current catalog snapshot
type CatalogStats struct {
	Total      int              `json:"total"`
	Skipped    int              `json:"skipped"`
	Source     string           `json:"source"`
	LoadedAt   time.Time        `json:"loadedAt"`
	ByCategory map[Category]int `json:"byCategory"`
	ByUrgency  map[Urgency]int  `json:"byUrgency"`
	Locations  []string         `json:"locations"`
	Urgent     []UrgentJob      `json:"urgent"`
}

// SavedJobEntry is a saved job joined against the current catalog
type SavedJobEntry struct {
	Job     JobSummary `json:"job"`
	SavedAt time.Time  `json:"savedAt"`
}
