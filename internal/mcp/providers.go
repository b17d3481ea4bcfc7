package mcp

import (
	"context"
	"fmt"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/config"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/derived"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job/sources/localfs"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/mcp/tools"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/repository"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/storage/memory"
	storageneo4j "github.com/venkatajanapareddy/sarkarijobs.cc/internal/storage/neo4j"
	storagepostgres "github.com/venkatajanapareddy/sarkarijobs.cc/internal/storage/postgres"
	storageredis "github.com/venkatajanapareddy/sarkarijobs.cc/internal/storage/redis"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
	n4j "github.com/venkatajanapareddy/sarkarijobs.cc/pkg/neo4j"
	pkgpostgres "github.com/venkatajanapareddy/sarkarijobs.cc/pkg/postgres"
	pkgredis "github.com/venkatajanapareddy/sarkarijobs.cc/pkg/redis"
	sheetsclient "github.com/venkatajanapareddy/sarkarijobs.cc/pkg/sheets"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/shutdown"
)

// savedBackend is the selected saved-jobs store plus whatever must be closed with it
type savedBackend struct {
	name   string
	store  repository.SavedJobRepository
	closer shutdown.Stoppable
}

func provideCalculator(cfg config.Config) *derived.Calculator {
	return derived.NewCalculator(derived.WithLocation(cfg.Catalog.Location))
}

func provideNormalizer(cfg config.Config) *job.Normalizer {
	return job.NewNormalizer(job.WithFormsBaseURL(cfg.Catalog.FormsBaseURL))
}

func provideLocalSource(cfg config.Config) (*localfs.Source, error) {
	return localfs.NewSource(localfs.Config{
		Dir:       cfg.Catalog.DataDir,
		IndexFile: cfg.Catalog.IndexFile,
		RawDir:    cfg.Catalog.RawDir,
	})
}

func provideLoader(src job.Source, norm *job.Normalizer, cfg config.Config, log *logging.Logger) *job.Loader {
	return job.NewLoader(src, log.Named("loader"),
		job.WithNormalizer(norm),
		job.WithParallelism(cfg.Catalog.Parallelism),
	)
}

func provideCache(loader *job.Loader, cfg config.Config, log *logging.Logger) *job.Cache {
	return job.NewCache(loader, log.Named("cache"),
		job.WithRevalidate(cfg.Catalog.Revalidate),
		job.WithRetry(cfg.Catalog.Retry),
	)
}

// provideSavedBackend connects the store named by SAVED_STORE
func provideSavedBackend(ctx context.Context, cfg config.Config) (savedBackend, error) {
	switch cfg.SavedStore {
	case "", config.StoreMemory:
		return savedBackend{name: config.StoreMemory, store: memory.NewSavedJobRepository()}, nil

	case config.StoreNeo4j:
		client, err := n4j.NewClient(ctx, n4j.Config{
			URI:      cfg.Neo4j.URI,
			Username: cfg.Neo4j.Username,
			Password: cfg.Neo4j.Password,
			Database: cfg.Neo4j.Database,
		})
		if err != nil {
			return savedBackend{}, err
		}
		repo := storageneo4j.NewSavedJobRepository(client)
		if err := repo.EnsureConstraints(ctx); err != nil {
			_ = client.Shutdown(ctx)
			return savedBackend{}, err
		}
		return savedBackend{name: cfg.SavedStore, store: repo, closer: client}, nil

	case config.StorePostgres:
		client, err := pkgpostgres.NewClient(ctx, pkgpostgres.Config{URL: cfg.Postgres.URL})
		if err != nil {
			return savedBackend{}, err
		}
		repo := storagepostgres.NewSavedJobRepository(client.Pool())
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = client.Shutdown(ctx)
			return savedBackend{}, err
		}
		return savedBackend{name: cfg.SavedStore, store: repo, closer: client}, nil

	case config.StoreRedis:
		client, err := pkgredis.NewClient(ctx, pkgredis.Config{URL: cfg.Redis.URL})
		if err != nil {
			return savedBackend{}, err
		}
		repo := storageredis.NewSavedJobRepository(client.Redis(), cfg.Redis.KeyPrefix)
		return savedBackend{name: cfg.SavedStore, store: repo, closer: client}, nil
	}

	return savedBackend{}, fmt.Errorf("unknown saved-jobs backend %q", cfg.SavedStore)
}

func provideSavedStore(b savedBackend) job.SavedStore {
	return b.store
}

// provideSheetsWriter never fails: without credentials the tool reports it at call time
func provideSheetsWriter(ctx context.Context, cfg config.Config, log *logging.Logger) tools.SheetsWriter {
	adapter := &sheetsClientAdapter{}
	if cfg.Sheets.CredentialsPath == "" {
		return adapter
	}

	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		log.Warn("google sheets client unavailable", "err", err)
		return adapter
	}
	adapter.client = client
	return adapter
}

func newResources(
	jobService job.Service,
	cache *job.Cache,
	norm *job.Normalizer,
	sheets tools.SheetsWriter,
	saved savedBackend,
) *Resources {
	res := &Resources{
		JobService: jobService,
		Cache:      cache,
		Normalizer: norm,
		Sheets:     sheets,
		SavedStore: saved.name,
	}
	if saved.closer != nil {
		res.Closers = append(res.Closers, saved.closer)
	}
	return res
}
