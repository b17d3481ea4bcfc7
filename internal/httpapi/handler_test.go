package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/identity"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/repository"
)

var loadedAt = time.Date(2025, 3, 15, 4, 30, 0, 0, time.UTC)

// fakeService records the last query and serves canned answers
type fakeService struct {
	lastQuery domain.JobQuery
	saved     map[string][]string
}

var _ job.Service = (*fakeService)(nil)

func newFakeService() *fakeService {
	return &fakeService{saved: make(map[string][]string)}
}

func (f *fakeService) Search(_ context.Context, q domain.JobQuery) (domain.JobSearchResult, error) {
	f.lastQuery = q
	return domain.JobSearchResult{
		Jobs:       []domain.JobSummary{{ID: "1", Slug: "sbi-clerk-2025--1", Title: "Clerk"}},
		Total:      1,
		Page:       q.Page.Number,
		PageSize:   q.Page.Size,
		TotalPages: 1,
		LoadedAt:   loadedAt,
		Source:     "localfs:/data",
	}, nil
}

func (f *fakeService) Detail(_ context.Context, slugOrID string) (domain.JobDetail, error) {
	if slugOrID != "sbi-clerk-2025--1" {
		return domain.JobDetail{}, fmt.Errorf("%w: %s", job.ErrNotFound, slugOrID)
	}
	return domain.JobDetail{
		Summary:    domain.JobSummary{ID: "1", Title: "Clerk"},
		Document:   map[string]any{"id": "1"},
		RawContent: "full text",
	}, nil
}

func (f *fakeService) Saved(_ context.Context, userID string) ([]domain.SavedJobEntry, error) {
	if userID == "" {
		return nil, repository.ErrNoUser
	}
	out := []domain.SavedJobEntry{}
	for _, id := range f.saved[userID] {
		out = append(out, domain.SavedJobEntry{Job: domain.JobSummary{ID: id}, SavedAt: loadedAt})
	}
	return out, nil
}

func (f *fakeService) Save(_ context.Context, userID, jobID string) error {
	if userID == "" {
		return repository.ErrNoUser
	}
	if jobID == "missing" {
		return fmt.Errorf("%w: %s", job.ErrNotFound, jobID)
	}
	f.saved[userID] = append(f.saved[userID], jobID)
	return nil
}

func (f *fakeService) Unsave(_ context.Context, userID, jobID string) error {
	if userID == "" {
		return repository.ErrNoUser
	}
	delete(f.saved, userID)
	return nil
}

func (f *fakeService) Stats(context.Context) (domain.CatalogStats, error) {
	return domain.CatalogStats{Total: 1, Source: "localfs:/data"}, nil
}

func (f *fakeService) Refresh(ctx context.Context) (domain.CatalogStats, error) {
	return f.Stats(ctx)
}

func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func newTestHandler(svc *fakeService) *Handler {
	return NewHandler(svc, job.NewNormalizer(job.WithFormsBaseURL("https://forms.example.com/")), nil)
}

func TestServeJobsParsesQuery(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantStatus   int
		wantPage     int
		wantSize     int
		wantLocation *string
		check        func(t *testing.T, q domain.JobQuery)
	}{
		{
			name:       "defaults",
			url:        "/api/jobs",
			wantStatus: http.StatusOK,
			wantPage:   1,
			wantSize:   DefaultPageSize,
		},
		{
			name:       "all filters",
			url:        "/api/jobs?q=+clerk+&category=Banking&location=Delhi&urgency=within-10-days&sort=deadline&page=3&limit=20",
			wantStatus: http.StatusOK,
			wantPage:   3,
			wantSize:   20,
			check: func(t *testing.T, q domain.JobQuery) {
				if q.Text != "clerk" || q.Category != "Banking" {
					t.Errorf("text/category = %q/%q", q.Text, q.Category)
				}
				if q.Location == nil || *q.Location != "Delhi" {
					t.Errorf("location = %v", q.Location)
				}
				if q.Urgency != (domain.UrgencyFilter{Kind: domain.UrgencyDueWithin, Days: 10}) {
					t.Errorf("urgency = %+v", q.Urgency)
				}
				if q.Sort != domain.SortDeadline {
					t.Errorf("sort = %q", q.Sort)
				}
			},
		},
		{
			name:       "non-numeric paging falls back",
			url:        "/api/jobs?page=abc&limit=",
			wantStatus: http.StatusOK,
			wantPage:   1,
			wantSize:   DefaultPageSize,
		},
		{
			name:       "oversized limit is capped",
			url:        "/api/jobs?limit=9223372036854775807",
			wantStatus: http.StatusOK,
			wantPage:   1,
			wantSize:   domain.MaxPageSize,
		},
		{
			name:       "empty location is still a filter value",
			url:        "/api/jobs?location=",
			wantStatus: http.StatusOK,
			wantPage:   1,
			wantSize:   DefaultPageSize,
			check: func(t *testing.T, q domain.JobQuery) {
				if q.Location == nil || *q.Location != "" {
					t.Errorf("location = %v, want pointer to empty", q.Location)
				}
			},
		},
		{name: "bad urgency", url: "/api/jobs?urgency=yesterday", wantStatus: http.StatusBadRequest},
		{name: "bad sort", url: "/api/jobs?sort=alphabetical", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeService()
			h := newTestHandler(svc)

			rec := httptest.NewRecorder()
			h.ServeJobs(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tt.wantStatus, rec.Body)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var body jobsResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Page != tt.wantPage || body.PageSize != tt.wantSize {
				t.Errorf("page/size = %d/%d, want %d/%d", body.Page, body.PageSize, tt.wantPage, tt.wantSize)
			}
			if body.TotalCount != 1 || body.Source != "localfs:/data" || !body.FetchedAt.Equal(loadedAt) {
				t.Errorf("unexpected envelope %+v", body)
			}
			if tt.check != nil {
				tt.check(t, svc.lastQuery)
			}
		})
	}
}

func TestServeJob(t *testing.T) {
	h := newTestHandler(newFakeService())

	tests := []struct {
		name       string
		slug       string
		wantStatus int
	}{
		{name: "found", slug: "sbi-clerk-2025--1", wantStatus: http.StatusOK},
		{name: "missing", slug: "nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/jobs/"+tt.slug, nil), "slug", tt.slug)
			rec := httptest.NewRecorder()
			h.ServeJob(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				var body detailResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if body.Job.ID != "1" || body.RawContent != "full text" {
					t.Errorf("body = %+v", body)
				}
			}
		})
	}
}

func TestServeForm(t *testing.T) {
	tests := []struct {
		name         string
		handler      *Handler
		id           string
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "redirects to hosted pdf",
			handler:      newTestHandler(newFakeService()),
			id:           "abc",
			wantStatus:   http.StatusMovedPermanently,
			wantLocation: "https://forms.example.com/abc_form.pdf",
		},
		{
			name:       "no blob base configured",
			handler:    NewHandler(newFakeService(), job.NewNormalizer(), nil),
			id:         "abc",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "blank id",
			handler:    newTestHandler(newFakeService()),
			id:         " ",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/forms/x", nil), "id", tt.id)
			rec := httptest.NewRecorder()
			tt.handler.ServeForm(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got, tt.wantLocation)
			}
		})
	}
}

func TestSavedJobsRequireUser(t *testing.T) {
	svc := newFakeService()
	router := Routes(newTestHandler(svc), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/saved-jobs/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous GET status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/saved-jobs/1", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous PUT status = %d, want 401", rec.Code)
	}
}

func TestSavedJobsFlow(t *testing.T) {
	svc := newFakeService()
	asUser := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(identity.WithUserID(r.Context(), "u-1")))
		})
	}
	router := Routes(newTestHandler(svc), asUser)

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodPut, "/saved-jobs/1", http.StatusNoContent},
		{http.MethodPut, "/saved-jobs/missing", http.StatusNotFound},
		{http.MethodGet, "/saved-jobs/", http.StatusOK},
		{http.MethodDelete, "/saved-jobs/1", http.StatusNoContent},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.wantStatus {
			t.Fatalf("%s %s status = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
		}
	}

	if len(svc.saved["u-1"]) != 0 {
		t.Errorf("saved after delete = %v", svc.saved["u-1"])
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := Routes(newTestHandler(newFakeService()), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, err := uuid.Parse(rec.Header().Get(requestIDHeader)); err != nil {
		t.Errorf("minted request id %q is not a uuid", rec.Header().Get(requestIDHeader))
	}

	inbound := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.Header.Set(requestIDHeader, inbound)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != inbound {
		t.Errorf("request id = %q, want inbound %q", got, inbound)
	}
}
