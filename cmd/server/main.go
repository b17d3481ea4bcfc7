package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/config"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/identity"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/mcp"
	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/scheduler"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	res, err := mcp.Bootstrap(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}

	var session func(next http.Handler) http.Handler
	if cfg.Session.Key != "" {
		resolver, err := identity.NewResolver([]byte(cfg.Session.Key), cfg.Session.Name, logger.Named("identity"))
		if err != nil {
			logger.Error("failed to build session resolver", "err", err)
			os.Exit(1)
		}
		session = resolver.Middleware
	} else {
		logger.Warn("SESSION_KEY not set, saved-jobs endpoints will reject every request")
	}

	srv := mcp.NewServer(logger, cfg, res, session)

	stoppables := []shutdown.Stoppable{srv}

	if cfg.Catalog.WarmSpec != "" {
		warmer := scheduler.New(res.JobService, cfg.Catalog.WarmSpec, logger)
		if err := warmer.Start(context.Background()); err != nil {
			logger.Error("failed to start catalog warmer", "err", err)
			os.Exit(1)
		}
		stoppables = append(stoppables, warmer)
	}
	stoppables = append(stoppables, res.Closers...)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		shutdown.Graceful(
			[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
			10*time.Second,
			logger,
			stoppables...,
		)
	}()

	logger.Info("server initialized and starting", "addr", cfg.Addr(), "saved_store", res.SavedStore)

	if err := srv.Run(); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}

	// wait for the remaining components to stop
	<-stopped
	logger.Info("server stopped")
}
