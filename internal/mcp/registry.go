package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/mcp/tools"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/shutdown"
)

type ToolRegistry struct {
	logger *logging.Logger
}

// Resources are the long-lived dependencies shared by the HTTP API and MCP tools
type Resources struct {
	JobService job.Service
	Cache      *job.Cache
	Normalizer *job.Normalizer
	Sheets     tools.SheetsWriter
	SavedStore string // backend actually in use

	// Closers release backend connections, in order
	Closers []shutdown.Stoppable
}

func NewToolRegistry(logger *logging.Logger) *ToolRegistry {
	return &ToolRegistry{logger: logger}
}

func (r *ToolRegistry) RegisterAll(server *sdkmcp.Server, res *Resources) {
	names := tools.Register(server, r.logger,
		tools.WithCatalogTools(res.JobService),
		tools.WithSavedJobs(res.JobService),
		tools.WithSheetsExport(res.JobService, res.Sheets),
	)
	r.logger.Info("MCP tools registered", "tools", names)
}
