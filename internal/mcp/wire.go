//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/config"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job/sources/localfs"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config, log *logging.Logger) (*Resources, error) {
	wire.Build(
		// Catalog
		provideCalculator,
		provideNormalizer,
		provideLocalSource,
		wire.Bind(new(job.Source), new(*localfs.Source)),
		provideLoader,
		provideCache,

		// Saved jobs
		provideSavedBackend,
		provideSavedStore,

		// Services
		job.NewServiceWithDeps,

		// Tool resources
		provideSheetsWriter,
		newResources,
	)

	return &Resources{}, nil
}
