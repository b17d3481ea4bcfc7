// Package httpapi exposes the job catalog over JSON HTTP endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/derived"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/identity"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/repository"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
)

const (
	DefaultPageSize = 50

	requestTimeout = 10 * time.Second
)

// FormLocator maps a job id to its hosted application form
type FormLocator interface {
	FormURL(id string) string
}

// Handler serves the catalog endpoints
type Handler struct {
	Jobs  job.Service
	Forms FormLocator
	Log   *logging.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(jobs job.Service, forms FormLocator, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handler{Jobs: jobs, Forms: forms, Log: log}
}

type jobsResponse struct {
	Jobs       []domain.JobSummary `json:"jobs"`
	TotalCount int                 `json:"totalCount"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`
	Source     string              `json:"source"`
	FetchedAt  time.Time           `json:"fetchedAt"`
}

type detailResponse struct {
	Job        domain.JobSummary `json:"job"`
	Document   map[string]any    `json:"document,omitempty"`
	RawContent any               `json:"rawContent,omitempty"`
}

type savedResponse struct {
	Jobs []domain.SavedJobEntry `json:"jobs"`
}

// ServeJobs handles GET /api/jobs
func (h *Handler) ServeJobs(w http.ResponseWriter, r *http.Request) {
	q, err := parseJobQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	res, err := h.Jobs.Search(ctx, q)
	if err != nil {
		h.fail(w, r, "job search failed", err)
		return
	}

	writeJSON(w, http.StatusOK, jobsResponse{
		Jobs:       res.Jobs,
		TotalCount: res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
		Source:     res.Source,
		FetchedAt:  res.LoadedAt,
	})
}

// ServeJob handles GET /api/jobs/{slug}
func (h *Handler) ServeJob(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	detail, err := h.Jobs.Detail(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, "job detail failed", err)
		return
	}

	writeJSON(w, http.StatusOK, detailResponse{
		Job:        detail.Summary,
		Document:   detail.Document,
		RawContent: detail.RawContent,
	})
}

// ServeForm handles GET /api/forms/{id} by redirecting to the hosted PDF
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	target := ""
	if h.Forms != nil && id != "" {
		target = h.Forms.FormURL(id)
	}
	if target == "" {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

// ServeStats handles GET /api/stats
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stats, err := h.Jobs.Stats(ctx)
	if err != nil {
		h.fail(w, r, "catalog stats failed", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ServeSaved handles GET /api/saved-jobs
func (h *Handler) ServeSaved(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserIDFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	entries, err := h.Jobs.Saved(ctx, userID)
	if err != nil {
		h.fail(w, r, "saved jobs failed", err)
		return
	}
	writeJSON(w, http.StatusOK, savedResponse{Jobs: entries})
}

// HandleSave handles PUT /api/saved-jobs/{id}
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserIDFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.Jobs.Save(ctx, userID, chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "save job failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUnsave handles DELETE /api/saved-jobs/{id}
func (h *Handler) HandleUnsave(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity.UserIDFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.Jobs.Unsave(ctx, userID, chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "unsave job failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps service errors onto status codes
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, job.ErrNotFound):
		writeError(w, http.StatusNotFound, "job not found")
	case errors.Is(err, repository.ErrNoUser):
		writeError(w, http.StatusUnauthorized, "sign in required")
	case errors.Is(err, context.DeadlineExceeded):
		h.Log.Warn(msg, "path", r.URL.Path, "request_id", RequestID(r.Context()), "err", err)
		writeError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		h.Log.Error(msg, "path", r.URL.Path, "request_id", RequestID(r.Context()), "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseJobQuery reads the /api/jobs query string. Bad urgency and sort
// tokens are rejected; numeric paging values are clamped.
func parseJobQuery(r *http.Request) (domain.JobQuery, error) {
	values := r.URL.Query()

	urgency, err := derived.ParseUrgencyFilter(values.Get("urgency"))
	if err != nil {
		return domain.JobQuery{}, err
	}
	order, err := derived.ParseSortOrder(values.Get("sort"))
	if err != nil {
		return domain.JobQuery{}, err
	}

	q := domain.JobQuery{
		Text:     strings.TrimSpace(values.Get("q")),
		Category: strings.TrimSpace(values.Get("category")),
		Urgency:  urgency,
		Sort:     order,
		Page: &domain.PageRequest{
			Number: intParam(values.Get("page"), 1),
			Size:   min(intParam(values.Get("limit"), DefaultPageSize), domain.MaxPageSize),
		},
	}
	if values.Has("location") {
		loc := strings.TrimSpace(values.Get("location"))
		q.Location = &loc
	}
	return q, nil
}

func intParam(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
