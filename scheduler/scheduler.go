// Package scheduler runs recurring jobs behind a small interface so callers can
// swap real timers for virtual time in tests.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs job every interval until the returned cancel func is called.
// Cancel is idempotent and never blocks on a running job.
type Scheduler interface {
	Every(interval time.Duration, job func()) (cancel func(), err error)
}

// CronScheduler backs Scheduler with a robfig/cron runner. A job that is still
// running when its next activation arrives is skipped, so runs never overlap.
type CronScheduler struct {
	cron   *cron.Cron
	logger *logrus.Logger
}

func NewCronScheduler(logger *logrus.Logger) *CronScheduler {
	cronLogger := cron.PrintfLogger(logger)
	return &CronScheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		)),
		logger: logger,
	}
}

func (s *CronScheduler) Start() {
	s.cron.Start()
}

// Stop halts activations and returns a context done once running jobs finish.
func (s *CronScheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *CronScheduler) Every(interval time.Duration, job func()) (func(), error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid interval %v", interval)
	}

	id, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), job)
	if err != nil {
		return nil, fmt.Errorf("schedule job: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"entry": id, "interval": interval.String()}).Debug("job scheduled")

	return func() {
		s.cron.Remove(id)
	}, nil
}
