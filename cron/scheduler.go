package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
)

// Start schedules every registered job and starts the scheduler. Jobs run with
// ctx; cancel it and call Stop to shut down.
func Start(ctx context.Context, log *logger.Logger) (*cron.Cron, error) {
	if log == nil {
		log = logger.Default()
	}
	log = log.WithComponent("cron")
	c := cron.New(cron.WithChain(cron.Recover(cronLogger{log})))
	for _, j := range Jobs() {
		j := j
		if _, err := c.AddFunc(j.Schedule, func() { RunJob(ctx, j, log) }); err != nil {
			return nil, fmt.Errorf("register job %s: %w", j.Name, err)
		}
		log.Info("job scheduled", "job", j.Name, "schedule", j.Schedule)
	}
	c.Start()
	return c, nil
}

// RunJob runs j once and logs its outcome.
func RunJob(ctx context.Context, j Job, log *logger.Logger) error {
	start := time.Now()
	err := j.Run(ctx)
	if err != nil {
		log.Error("job failed", "job", j.Name, "error", err)
		return err
	}
	log.Debug("job finished", "job", j.Name, "took", time.Since(start))
	return nil
}

// cronLogger adapts the slog wrapper to cron.Logger.
type cronLogger struct{ log *logger.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
