package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/derived"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
)

const defaultSearchLimit = 20

// JobSearchParams defines the arguments for the job_search tool
type JobSearchParams struct {
	Query    string  `json:"query,omitempty" jsonschema:"Case-insensitive text matched against title, organization and qualification"`
	Category string  `json:"category,omitempty" jsonschema:"Category such as Railway, Banking, UPSC/SSC; all disables the filter"`
	Location *string `json:"location,omitempty" jsonschema:"Exact location; All India also matches nationwide postings"`
	Urgency  string  `json:"urgency,omitempty" jsonschema:"today, closing-soon, this-week or within-N-days"`
	Sort     string  `json:"sort,omitempty" jsonschema:"recent or deadline; empty keeps catalog order"`
	Page     int     `json:"page,omitempty" jsonschema:"1-indexed page number"`
	Limit    int     `json:"limit,omitempty" jsonschema:"Page size, default 20"`
}

// JobSearchResult is the structured response of job_search
type JobSearchResult struct {
	Jobs       []domain.JobSummary `json:"jobs"`
	TotalCount int                 `json:"total_count"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
	Source     string              `json:"source"`
	FetchedAt  time.Time           `json:"fetched_at"`
}

// JobDetailParams defines the arguments for the job_detail tool
type JobDetailParams struct {
	Slug string `json:"slug" jsonschema:"Job slug or bare job id"`
}

// JobDetailResult is the structured response of job_detail
type JobDetailResult struct {
	Job        domain.JobSummary `json:"job"`
	Document   map[string]any    `json:"document,omitempty"`
	RawContent any               `json:"raw_content,omitempty"`
}

// CatalogParams is the empty argument set of catalog_stats and catalog_refresh
type CatalogParams struct{}

type catalogTools struct {
	jobs   job.Service
	logger *logging.Logger
}

// WithCatalogTools registers job_search, job_detail, catalog_stats and catalog_refresh
func WithCatalogTools(jobs job.Service) Option {
	return func(reg *registry) {
		t := catalogTools{jobs: jobs, logger: reg.logger}

		addTool(reg, &sdkmcp.Tool{
			Name:        "job_search",
			Description: "Filter and page the government job catalog",
		}, t.search)
		addTool(reg, &sdkmcp.Tool{
			Name:        "job_detail",
			Description: "Fetch one job with its full source document",
		}, t.detail)
		addTool(reg, &sdkmcp.Tool{
			Name:        "catalog_stats",
			Description: "Summarize the catalog by category, urgency and location",
		}, t.stats)
		addTool(reg, &sdkmcp.Tool{
			Name:        "catalog_refresh",
			Description: "Reload the catalog from its source now",
		}, t.refresh)
	}
}

func (t catalogTools) search(ctx context.Context, req *sdkmcp.CallToolRequest, params JobSearchParams) (*sdkmcp.CallToolResult, any, error) {
	q, err := params.toQuery()
	if err != nil {
		return textResult(fmt.Sprintf("job_search: %v", err)), nil, err
	}

	res, err := t.jobs.Search(ctx, q)
	if err != nil {
		t.logger.Error("job_search failed", "err", err)
		return textResult("job_search failed"), nil, err
	}

	out := JobSearchResult{
		Jobs:       res.Jobs,
		TotalCount: res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
		Source:     res.Source,
		FetchedAt:  res.LoadedAt,
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d job(s) match, page %d of %d\n", out.TotalCount, out.Page, out.TotalPages)
	for _, j := range out.Jobs {
		fmt.Fprintf(&b, "- %s | %s | %s\n", j.Title, j.Organization, deadlineText(j))
	}
	return textResult(b.String()), out, nil
}

func (t catalogTools) detail(ctx context.Context, req *sdkmcp.CallToolRequest, params JobDetailParams) (*sdkmcp.CallToolResult, any, error) {
	if strings.TrimSpace(params.Slug) == "" {
		return textResult("job_detail requires a slug"), nil, fmt.Errorf("missing slug")
	}

	d, err := t.jobs.Detail(ctx, params.Slug)
	if err != nil {
		return textResult(fmt.Sprintf("job_detail: %v", err)), nil, err
	}

	out := JobDetailResult{Job: d.Summary, Document: d.Document, RawContent: d.RawContent}
	msg := fmt.Sprintf("%s (%s), %s", d.Summary.Title, d.Summary.Organization, deadlineText(d.Summary))
	return textResult(msg), out, nil
}

func (t catalogTools) stats(ctx context.Context, req *sdkmcp.CallToolRequest, _ CatalogParams) (*sdkmcp.CallToolResult, any, error) {
	st, err := t.jobs.Stats(ctx)
	if err != nil {
		return textResult("catalog_stats failed"), nil, err
	}
	return textResult(statsText(st)), st, nil
}

func (t catalogTools) refresh(ctx context.Context, req *sdkmcp.CallToolRequest, _ CatalogParams) (*sdkmcp.CallToolResult, any, error) {
	st, err := t.jobs.Refresh(ctx)
	if err != nil {
		t.logger.Warn("catalog_refresh failed, serving previous snapshot", "err", err)
		return textResult(fmt.Sprintf("refresh failed, still serving %d job(s): %v", st.Total, err)), st, err
	}
	t.logger.Info("catalog refreshed via tool", "total", st.Total)
	return textResult(statsText(st)), st, nil
}

func (p JobSearchParams) toQuery() (domain.JobQuery, error) {
	urgency, err := derived.ParseUrgencyFilter(p.Urgency)
	if err != nil {
		return domain.JobQuery{}, err
	}
	order, err := derived.ParseSortOrder(p.Sort)
	if err != nil {
		return domain.JobQuery{}, err
	}

	limit := min(p.Limit, domain.MaxPageSize)
	if limit == 0 {
		limit = defaultSearchLimit
	}

	return domain.JobQuery{
		Text:     strings.TrimSpace(p.Query),
		Category: strings.TrimSpace(p.Category),
		Location: p.Location,
		Urgency:  urgency,
		Sort:     order,
		Page:     &domain.PageRequest{Number: p.Page, Size: limit},
	}, nil
}

func deadlineText(j domain.JobSummary) string {
	switch {
	case j.LastDate == "":
		return "no deadline"
	case j.DaysLeft == nil:
		return "closed " + j.LastDate
	case *j.DaysLeft == 0:
		return "closes today"
	default:
		return fmt.Sprintf("%d day(s) left", *j.DaysLeft)
	}
}

func statsText(st domain.CatalogStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d job(s) from %s, %d skipped\n", st.Total, st.Source, st.Skipped)
	for _, c := range domain.Categories {
		if n := st.ByCategory[c]; n > 0 {
			fmt.Fprintf(&b, "%s: %d\n", c, n)
		}
	}
	for _, u := range st.Urgent {
		fmt.Fprintf(&b, "urgent: %s (%d day(s) left)\n", u.Title, u.DaysLeft)
	}
	return b.String()
}
