package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher reloads cached runtime settings
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Pruner trims stored query history to its current cap
type Pruner interface {
	Prune(ctx context.Context) error
}

// Worker runs periodic maintenance: settings refresh, then history pruning
// so a lowered history_limit takes effect without a new search.
type Worker struct {
	settings Refresher
	history  Pruner
	interval time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewWorker creates a maintenance worker. Either collaborator may be nil.
func NewWorker(settings Refresher, history Pruner, interval time.Duration, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Worker{
		settings: settings,
		history:  history,
		interval: interval,
		cron:     cron.New(),
		logger:   logger.Named("worker"),
	}
}

// Start schedules maintenance every interval
func (w *Worker) Start() error {
	schedule := fmt.Sprintf("@every %s", w.interval)
	_, err := w.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		w.RunMaintenance(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance: %w", err)
	}

	w.cron.Start()
	w.logger.Info("scheduled maintenance", zap.Duration("interval", w.interval))
	return nil
}

// Stop halts the scheduler and waits for a running job to finish
func (w *Worker) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info("stopped")
}

// RunMaintenance performs one maintenance pass
func (w *Worker) RunMaintenance(ctx context.Context) {
	if w.settings != nil {
		if err := w.settings.Refresh(ctx); err != nil {
			w.logger.Warn("settings refresh failed", zap.Error(err))
		}
	}
	if w.history != nil {
		if err := w.history.Prune(ctx); err != nil {
			w.logger.Warn("history prune failed", zap.Error(err))
		}
	}
}
