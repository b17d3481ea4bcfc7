package mcp

import (
	"context"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/config"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
)

// initializeResources wires everything and, when the configured saved-jobs
// backend is unreachable, falls back to the in-memory store so the catalog
// still serves.
func initializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, error) {
	res, err := InitializeResources(ctx, cfg, logger)
	if err == nil {
		logger.Info("resources initialized", "saved_store", res.SavedStore, "data_dir", cfg.Catalog.DataDir)
		return res, nil
	}
	if cfg.SavedStore == config.StoreMemory {
		return nil, err
	}

	logger.Warn("saved-jobs backend unavailable, falling back to memory", "backend", cfg.SavedStore, "err", err)

	fallback := cfg
	fallback.SavedStore = config.StoreMemory
	return InitializeResources(ctx, fallback, logger)
}
