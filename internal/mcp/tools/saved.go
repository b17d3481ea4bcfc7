package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
)

// SavedJobsParams defines the arguments for the saved_jobs tool
type SavedJobsParams struct {
	UserID string `json:"user_id" jsonschema:"User whose bookmarks are read or changed"`
	Action string `json:"action,omitempty" jsonschema:"list (default), save or remove"`
	JobID  string `json:"job_id,omitempty" jsonschema:"Job id or slug for save and remove"`
}

// SavedJobsResult is the structured response of saved_jobs
type SavedJobsResult struct {
	Action string                 `json:"action"`
	Jobs   []domain.SavedJobEntry `json:"jobs"`
}

type savedJobsTool struct {
	jobs   job.Service
	logger *logging.Logger
}

// WithSavedJobs registers the saved_jobs tool
func WithSavedJobs(jobs job.Service) Option {
	return func(reg *registry) {
		t := savedJobsTool{jobs: jobs, logger: reg.logger}
		addTool(reg, &sdkmcp.Tool{
			Name:        "saved_jobs",
			Description: "List, save or remove a user's bookmarked jobs",
		}, t.handle)
	}
}

func (t savedJobsTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params SavedJobsParams) (*sdkmcp.CallToolResult, any, error) {
	action := strings.ToLower(strings.TrimSpace(params.Action))
	if action == "" {
		action = "list"
	}

	var err error
	switch action {
	case "list":
	case "save":
		err = t.jobs.Save(ctx, params.UserID, params.JobID)
	case "remove":
		err = t.jobs.Unsave(ctx, params.UserID, params.JobID)
	default:
		err = fmt.Errorf("unknown action %q", action)
	}
	if err != nil {
		return textResult(fmt.Sprintf("saved_jobs %s: %v", action, err)), nil, err
	}

	entries, err := t.jobs.Saved(ctx, params.UserID)
	if err != nil {
		return textResult(fmt.Sprintf("saved_jobs: %v", err)), nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d saved job(s)\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s | %s\n", e.Job.Title, e.Job.Organization)
	}
	return textResult(b.String()), SavedJobsResult{Action: action, Jobs: entries}, nil
}
