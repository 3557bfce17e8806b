package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hccpay/approval-reminder/internal/reminder"
)

// CronRunner fires a reminder run on a cron schedule, as an alternative to
// the HTTP trigger. Both paths invoke the same engine Run.
//
// A run already in flight is never overlapped: if the schedule fires while
// the previous run is still dispatching, the tick is skipped and logged.
type CronRunner struct {
	svc     *reminder.Service
	spec    string
	logger  *zap.Logger
	cron    *cron.Cron
	running atomic.Bool
}

func NewCronRunner(svc *reminder.Service, spec string, logger *zap.Logger) *CronRunner {
	return &CronRunner{svc: svc, spec: spec, logger: logger}
}

// Start registers the schedule and launches the cron loop. The loop stops
// when ctx is cancelled; Start returns an error only for an invalid spec.
func (cr *CronRunner) Start(ctx context.Context) error {
	cr.cron = cron.New()
	if _, err := cr.cron.AddFunc(cr.spec, func() { cr.fire(ctx) }); err != nil {
		return err
	}
	cr.cron.Start()
	cr.logger.Info("cron runner started", zap.String("spec", cr.spec))

	go func() {
		<-ctx.Done()
		// Stop returns a context that is done once in-flight jobs finish.
		<-cr.cron.Stop().Done()
		cr.logger.Info("cron runner stopped")
	}()
	return nil
}

func (cr *CronRunner) fire(ctx context.Context) {
	if !cr.running.CompareAndSwap(false, true) {
		cr.logger.Warn("previous reminder run still in flight, skipping tick")
		return
	}
	defer cr.running.Store(false)

	result, err := cr.svc.Run(ctx, time.Now().UTC())
	if err != nil {
		cr.logger.Error("scheduled reminder run failed", zap.Error(err))
		return
	}
	cr.logger.Info("scheduled reminder run completed",
		zap.Int("stale_notes", result.StaleNotes),
		zap.Int("reminders_sent", result.RemindersSent),
		zap.Int("errors", result.Errors),
	)
}
