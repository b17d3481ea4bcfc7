// Command indexgen rebuilds the aggregated jobs index from the per-job files
// so the server can take the fast load path.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/config"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain/job/sources/localfs"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dataDir := flag.String("data", cfg.Catalog.DataDir, "directory holding job_*.json files")
	indexFile := flag.String("index", cfg.Catalog.IndexFile, "index file name, relative to -data unless absolute")
	dryRun := flag.Bool("dry-run", false, "scan and report without writing the index")
	flag.Parse()

	logger := logging.New(cfg.LogLevel, "console")
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := localfs.NewSource(localfs.Config{Dir: *dataDir, IndexFile: *indexFile})
	if err != nil {
		logger.Error("invalid data directory", "err", err)
		os.Exit(1)
	}

	loader := job.NewLoader(src, logger,
		job.WithNormalizer(job.NewNormalizer(job.WithFormsBaseURL(cfg.Catalog.FormsBaseURL))),
		job.WithParallelism(cfg.Catalog.Parallelism),
	)

	cat, err := loader.ScanRecords(ctx)
	if err != nil {
		logger.Error("scan failed", "dir", *dataDir, "err", err)
		os.Exit(1)
	}

	entries := job.BuildIndex(cat)
	logger.Info("records scanned", "jobs", len(entries), "skipped", cat.Skipped())

	if *dryRun {
		return
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		logger.Error("encode index", "err", err)
		os.Exit(1)
	}
	if err := src.WriteIndex(ctx, data); err != nil {
		logger.Error("write index", "err", err)
		os.Exit(1)
	}

	logger.Info("index written", "file", *indexFile, "jobs", len(entries))
}
