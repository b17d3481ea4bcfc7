package tools

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/derived"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job/sources/localfs"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/repository"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/storage/memory"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
)

// newTestService builds the real catalog stack over a temp data dir
func newTestService(t *testing.T) job.Service {
	t.Helper()

	dir := t.TempDir()
	docs := map[string]map[string]any{
		"job_1.json": {"id": "1", "title": "Probationary Officer", "organization": "State Bank of India", "lastDate": "2025-03-20"},
		"job_2.json": {"id": "2", "title": "Group D", "organization": "Railway Recruitment Board", "lastDate": "2025-03-15", "location": "Delhi"},
		"job_3.json": {"id": "3", "title": "Staff Nurse", "organization": "AIIMS", "postedDate": "2025-03-01"},
	}
	for name, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	src, err := localfs.NewSource(localfs.Config{Dir: dir})
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}

	ist, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}
	start := time.Date(2025, 3, 15, 10, 0, 0, 0, ist)
	var ticks atomic.Int64
	clock := func() time.Time { return start.Add(time.Duration(ticks.Add(1)) * time.Second) }

	log := logging.NewNop()
	cache := job.NewCache(job.NewLoader(src, log), log)
	calc := derived.NewCalculator(derived.WithClock(clock), derived.WithLocation(ist))

	svc, err := job.NewService(
		job.WithCache(cache),
		job.WithSource(src),
		job.WithSavedStore(memory.NewSavedJobRepository()),
		job.WithCalculator(calc),
		job.WithClock(clock),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestJobSearchTool(t *testing.T) {
	tools := catalogTools{jobs: newTestService(t), logger: logging.NewNop()}
	anywhere := "all"

	tests := []struct {
		name    string
		params  JobSearchParams
		wantIDs []string
		wantErr bool
	}{
		{name: "empty params returns first page", wantIDs: []string{"1", "2", "3"}},
		{name: "category", params: JobSearchParams{Category: "Banking", Location: &anywhere}, wantIDs: []string{"1"}},
		{name: "due today", params: JobSearchParams{Urgency: "today"}, wantIDs: []string{"2"}},
		{name: "deadline sort", params: JobSearchParams{Sort: "deadline"}, wantIDs: []string{"2", "1", "3"}},
		{name: "page size", params: JobSearchParams{Limit: 1, Page: 2}, wantIDs: []string{"2"}},
		{name: "huge limit is capped", params: JobSearchParams{Limit: math.MaxInt}, wantIDs: []string{"1", "2", "3"}},
		{name: "bad urgency", params: JobSearchParams{Urgency: "someday"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, out, err := tools.search(context.Background(), nil, tt.params)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("search() error = %v", err)
			}
			if res == nil || len(res.Content) == 0 {
				t.Fatal("missing text content")
			}

			got := out.(JobSearchResult)
			var ids []string
			for _, j := range got.Jobs {
				ids = append(ids, j.ID)
			}
			if !slices.Equal(ids, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestJobDetailAndStatsTools(t *testing.T) {
	tools := catalogTools{jobs: newTestService(t), logger: logging.NewNop()}
	ctx := context.Background()

	if _, _, err := tools.detail(ctx, nil, JobDetailParams{Slug: " "}); err == nil {
		t.Error("blank slug accepted")
	}
	if _, _, err := tools.detail(ctx, nil, JobDetailParams{Slug: "404"}); !errors.Is(err, job.ErrNotFound) {
		t.Errorf("unknown job err = %v, want ErrNotFound", err)
	}

	_, out, err := tools.detail(ctx, nil, JobDetailParams{Slug: "2"})
	if err != nil {
		t.Fatalf("detail() error = %v", err)
	}
	d := out.(JobDetailResult)
	if d.Job.Title != "Group D" || d.Document["location"] != "Delhi" {
		t.Errorf("detail = %+v", d)
	}

	_, out, err = tools.refresh(ctx, nil, CatalogParams{})
	if err != nil {
		t.Fatalf("refresh() error = %v", err)
	}
	_, out, err = tools.stats(ctx, nil, CatalogParams{})
	if err != nil {
		t.Fatalf("stats() error = %v", err)
	}
	raw, _ := json.Marshal(out)
	var st struct {
		Total  int `json:"total"`
		Urgent []struct {
			ID string `json:"id"`
		} `json:"urgent"`
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		t.Fatal(err)
	}
	if st.Total != 3 || len(st.Urgent) != 1 || st.Urgent[0].ID != "2" {
		t.Errorf("stats = %+v", st)
	}
}

func TestSavedJobsTool(t *testing.T) {
	tool := savedJobsTool{jobs: newTestService(t), logger: logging.NewNop()}
	ctx := context.Background()

	steps := []struct {
		params  SavedJobsParams
		wantIDs []string
		wantErr error
	}{
		{params: SavedJobsParams{UserID: "u1"}, wantIDs: nil},
		{params: SavedJobsParams{UserID: "u1", Action: "save", JobID: "1"}, wantIDs: []string{"1"}},
		{params: SavedJobsParams{UserID: "u1", Action: "SAVE", JobID: "3"}, wantIDs: []string{"3", "1"}},
		{params: SavedJobsParams{UserID: "u1", Action: "save", JobID: "nope"}, wantErr: job.ErrNotFound},
		{params: SavedJobsParams{UserID: "u1", Action: "remove", JobID: "3"}, wantIDs: []string{"1"}},
		{params: SavedJobsParams{Action: "list"}, wantErr: repository.ErrNoUser},
	}

	for i, step := range steps {
		_, out, err := tool.handle(ctx, nil, step.params)
		if step.wantErr != nil {
			if !errors.Is(err, step.wantErr) {
				t.Fatalf("step %d: err = %v, want %v", i, err, step.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("step %d: handle() error = %v", i, err)
		}
		var ids []string
		for _, e := range out.(SavedJobsResult).Jobs {
			ids = append(ids, e.Job.ID)
		}
		if !slices.Equal(ids, step.wantIDs) {
			t.Errorf("step %d: ids = %v, want %v", i, ids, step.wantIDs)
		}
	}

	if _, _, err := tool.handle(ctx, nil, SavedJobsParams{UserID: "u1", Action: "archive"}); err == nil {
		t.Error("unknown action accepted")
	}
}

type recordingWriter struct {
	mode string
	rows [][]any
	err  error
}

func (w *recordingWriter) AppendRows(_ context.Context, _, _ string, rows [][]any) (int64, error) {
	w.mode, w.rows = "append", rows
	return int64(len(rows)), w.err
}

func (w *recordingWriter) ReplaceRows(_ context.Context, _, _ string, rows [][]any) (int64, error) {
	w.mode, w.rows = "replace", rows
	return int64(len(rows)), w.err
}

func TestSheetsExportTool(t *testing.T) {
	svc := newTestService(t)

	params := func(mode string, ids ...string) SheetsExportParams {
		p := SheetsExportParams{JobIDs: ids, Mode: mode}
		p.Sheet.SpreadsheetID = "sheet-1"
		p.Sheet.Tab = "Jobs"
		return p
	}

	tests := []struct {
		name     string
		params   SheetsExportParams
		writeErr error
		wantMode string
		wantRows int
		wantErr  bool
	}{
		{name: "replace writes header plus catalog", params: params(""), wantMode: "replace", wantRows: 4},
		{name: "append explicit ids", params: params("append", "3", "1"), wantMode: "append", wantRows: 2},
		{name: "unknown id", params: params("append", "missing"), wantErr: true},
		{name: "bad mode", params: params("merge"), wantErr: true},
		{name: "missing spreadsheet", params: SheetsExportParams{}, wantErr: true},
		{name: "writer failure", params: params("replace"), writeErr: errors.New("quota"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &recordingWriter{err: tt.writeErr}
			tool := sheetsExportTool{jobs: svc, writer: w, logger: logging.NewNop()}

			_, out, err := tool.handle(context.Background(), nil, tt.params)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("handle() error = %v", err)
			}

			res := out.(SheetsExportResult)
			if w.mode != tt.wantMode || len(w.rows) != tt.wantRows || res.WrittenRows != int64(tt.wantRows) {
				t.Errorf("mode %q rows %d written %d", w.mode, len(w.rows), res.WrittenRows)
			}
			if tt.wantMode == "replace" && w.rows[0][0] != "Title" {
				t.Errorf("first row = %v, want header", w.rows[0])
			}
		})
	}
}

func TestRegisterListsAllTools(t *testing.T) {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "0"}, nil)
	svc := newTestService(t)

	names := Register(server, nil,
		WithCatalogTools(svc),
		WithSavedJobs(svc),
		nil,
		WithSheetsExport(svc, &recordingWriter{}),
	)

	want := []string{"job_search", "job_detail", "catalog_stats", "catalog_refresh", "saved_jobs", "sheets_export"}
	if !slices.Equal(names, want) {
		t.Errorf("registered = %v, want %v", names, want)
	}
}
