package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
)

// SheetsWriter writes rows into a spreadsheet tab
type SheetsWriter interface {
	AppendRows(ctx context.Context, spreadsheetID, tab string, rows [][]any) (int64, error)
	ReplaceRows(ctx context.Context, spreadsheetID, tab string, rows [][]any) (int64, error)
}

var sheetHeader = []any{"Title", "Organization", "Category", "Location", "Posts", "Last Date", "Days Left", "Urgency", "Slug"}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	JobIDs []string         `json:"job_ids,omitempty" jsonschema:"Jobs to export by id or slug; when empty the filter is used"`
	Filter *JobSearchParams `json:"filter,omitempty" jsonschema:"job_search style filter"`
	Mode   string           `json:"mode,omitempty" jsonschema:"replace (default) rewrites the tab with a header, append adds rows"`
	Sheet  struct {
		SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
		Tab           string `json:"tab,omitempty" jsonschema:"Tab name, default Sheet1"`
	} `json:"sheet" jsonschema:"Destination sheet information"`
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id" jsonschema:"Target spreadsheet ID"`
	Tab           string    `json:"tab,omitempty" jsonschema:"Target tab name"`
	WrittenRows   int64     `json:"written_rows" jsonschema:"How many rows were written"`
	Mode          string    `json:"mode" jsonschema:"replace or append"`
	CompletedAt   time.Time `json:"completed_at" jsonschema:"Timestamp when export finished"`
	Message       string    `json:"message,omitempty" jsonschema:"Optional status message"`
}

type sheetsExportTool struct {
	jobs   job.Service
	writer SheetsWriter
	logger *logging.Logger
}

// WithSheetsExport registers the sheets_export tool
func WithSheetsExport(jobs job.Service, writer SheetsWriter) Option {
	return func(reg *registry) {
		t := sheetsExportTool{jobs: jobs, writer: writer, logger: reg.logger}
		addTool(reg, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export catalog jobs to a Google Sheets tab",
		}, t.handle)
	}
}

func (t sheetsExportTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if params.Sheet.SpreadsheetID == "" {
		return textResult("sheets_export requires sheet.spreadsheet_id"), nil, fmt.Errorf("missing spreadsheet id")
	}

	result := SheetsExportResult{
		SpreadsheetID: params.Sheet.SpreadsheetID,
		Tab:           params.Sheet.Tab,
		Mode:          strings.ToLower(strings.TrimSpace(params.Mode)),
	}
	if result.Mode == "" {
		result.Mode = "replace"
	}
	if result.Mode != "replace" && result.Mode != "append" {
		err := fmt.Errorf("unknown mode %q", params.Mode)
		return textResult(err.Error()), nil, err
	}

	summaries, err := t.collect(ctx, params)
	if err != nil {
		return textResult(fmt.Sprintf("sheets_export: %v", err)), nil, err
	}

	rows := make([][]any, 0, len(summaries)+1)
	if result.Mode == "replace" {
		rows = append(rows, sheetHeader)
	}
	for _, s := range summaries {
		rows = append(rows, sheetRow(s))
	}

	if len(summaries) == 0 && result.Mode == "append" {
		result.Message = "no rows to export"
		result.CompletedAt = time.Now().UTC()
		return textResult(result.Message), result, nil
	}

	if result.Mode == "replace" {
		result.WrittenRows, err = t.writer.ReplaceRows(ctx, result.SpreadsheetID, result.Tab, rows)
	} else {
		result.WrittenRows, err = t.writer.AppendRows(ctx, result.SpreadsheetID, result.Tab, rows)
	}
	if err != nil {
		t.logger.Error("sheets_export write failed", "spreadsheet_id", result.SpreadsheetID, "err", err)
		return textResult(fmt.Sprintf("sheets_export: %v", err)), nil, err
	}

	result.CompletedAt = time.Now().UTC()
	result.Message = fmt.Sprintf("exported %d job(s)", len(summaries))
	t.logger.Info("sheets export complete", "spreadsheet_id", result.SpreadsheetID, "jobs", len(summaries), "mode", result.Mode)

	return textResult(result.Message), result, nil
}

// collect resolves explicit ids in order, or runs the filter
func (t sheetsExportTool) collect(ctx context.Context, params SheetsExportParams) ([]domain.JobSummary, error) {
	if len(params.JobIDs) > 0 {
		out := make([]domain.JobSummary, 0, len(params.JobIDs))
		for _, id := range params.JobIDs {
			d, err := t.jobs.Detail(ctx, id)
			if err != nil {
				return nil, err
			}
			out = append(out, d.Summary)
		}
		return out, nil
	}

	filter := JobSearchParams{}
	if params.Filter != nil {
		filter = *params.Filter
	}
	q, err := filter.toQuery()
	if err != nil {
		return nil, err
	}
	if params.Filter == nil || params.Filter.Limit == 0 {
		q.Page = nil
	}

	res, err := t.jobs.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return res.Jobs, nil
}

func sheetRow(s domain.JobSummary) []any {
	posts := ""
	if s.TotalPosts != nil {
		posts = fmt.Sprint(*s.TotalPosts)
	}
	days := ""
	if s.DaysLeft != nil {
		days = fmt.Sprint(*s.DaysLeft)
	}
	return []any{s.Title, s.Organization, string(s.Category), s.Location, posts, s.LastDate, days, string(s.Urgency), s.Slug}
}
