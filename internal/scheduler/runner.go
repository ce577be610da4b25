package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/skillswap/skillswap-server/internal/logger"
)

// Runner drives the sweeper on a cron schedule. The timing mechanism is kept
// out of the sweeper itself so tests call RunSweep directly.
type Runner struct {
	cron    *cron.Cron
	sweeper *Sweeper
	spec    string
	logger  *logger.Logger
}

func NewRunner(sweeper *Sweeper, spec string, logger *logger.Logger) *Runner {
	return &Runner{
		cron:    cron.New(),
		sweeper: sweeper,
		spec:    spec,
		logger:  logger,
	}
}

// Start schedules the periodic full-population sweep and starts the cron
// loop in its own goroutine.
func (r *Runner) Start() error {
	_, err := r.cron.AddFunc(r.spec, func() {
		created, err := r.sweeper.RunSweep(context.Background(), nil)
		if err != nil {
			r.logger.Error("periodic sweep failed", "error", err)
			return
		}
		r.logger.Info("periodic sweep completed", "matches_created", created)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sweep %q: %w", r.spec, err)
	}

	r.cron.Start()
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish, or for the
// context to expire.
func (r *Runner) Stop(ctx context.Context) error {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
