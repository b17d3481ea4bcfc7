// Package scheduler keeps the catalog cache warm by refreshing it on a cron
// schedule, so request paths rarely pay for a cold load.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/venkatajanapareddy/sarkarijobs.cc/internal/domain"
	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
)

// Refresher reloads the catalog; job.Service satisfies it
type Refresher interface {
	Refresh(ctx context.Context) (domain.CatalogStats, error)
}

// Warmer wraps robfig/cron and runs catalog refreshes
type Warmer struct {
	cron      *cron.Cron
	refresher Refresher
	spec      string // cron spec, e.g. "@every 10m"
	log       *logging.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	// tracks the startup refresh, which cron does not know about
	initial sync.WaitGroup
}

// New creates a Warmer for spec. The spec is validated in Start.
func New(refresher Refresher, spec string, log *logging.Logger) *Warmer {
	if log == nil {
		log = logging.NewNop()
	}
	log = log.Named("warmer")
	return &Warmer{
		cron:      cron.New(cron.WithLogger(cronLogger{log: log})),
		refresher: refresher,
		spec:      spec,
		log:       log,
	}
}

// Start registers the refresh job, starts the scheduler and runs one refresh
// immediately without waiting for the first tick.
func (w *Warmer) Start(ctx context.Context) error {
	w.mu.Lock()
	w.ctx, w.cancel = context.WithCancel(ctx)
	runCtx := w.ctx
	w.mu.Unlock()

	if _, err := w.cron.AddFunc(w.spec, func() { w.run(runCtx) }); err != nil {
		w.cancel()
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	w.cron.Start()
	w.log.Info("warmer started", "spec", w.spec)

	w.initial.Add(1)
	go func() {
		defer w.initial.Done()
		w.run(runCtx)
	}()
	return nil
}

// Shutdown stops scheduling and waits for a running refresh or ctx, whichever is first
func (w *Warmer) Shutdown(ctx context.Context) error {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Unlock()

	cronDone := w.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		w.initial.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.log.Info("warmer stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Warmer) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	stats, err := w.refresher.Refresh(ctx)
	if err != nil {
		w.log.Warn("catalog refresh failed", "err", err)
		return
	}
	w.log.Debug("catalog refreshed", "total", stats.Total, "skipped", stats.Skipped, "source", stats.Source)
}

// cronLogger adapts the project logger to cron.Logger
type cronLogger struct {
	log *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "err", err)...)
}
