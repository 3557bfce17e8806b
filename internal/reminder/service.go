package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hccpay/approval-reminder/internal/digest"
	"github.com/hccpay/approval-reminder/internal/domain"
	"github.com/hccpay/approval-reminder/internal/notifier"
	"github.com/hccpay/approval-reminder/internal/ratelimiter"
	"github.com/hccpay/approval-reminder/internal/repository"
)

// DefaultThresholdHours applies when the configuracoes table has no row or
// the stored value is not positive.
const DefaultThresholdHours = 24

// Hooks carries the metric callback functions injected by main.
// Using a struct keeps the service constructor signature clean; nil
// callbacks are replaced with no-ops.
type Hooks struct {
	OnSent   func()
	OnFailed func()
	OnRun    func(staleNotes int, elapsed time.Duration)
}

// Service is the reminder engine: one Run selects stale notes, groups them
// by company, renders a digest per company and fans it out to that
// company's eligible managers, counting outcomes as it goes.
//
// The whole run is sequential: companies in first-seen order, managers in
// query order. One manager's failure never blocks another's delivery.
type Service struct {
	repo      repository.ReminderRepository
	channel   notifier.Channel
	limiter   *ratelimiter.Limiter
	portalURL string
	hooks     Hooks
	logger    *zap.Logger
}

func NewService(
	repo repository.ReminderRepository,
	channel notifier.Channel,
	limiter *ratelimiter.Limiter,
	portalURL string,
	hooks Hooks,
	logger *zap.Logger,
) *Service {
	if hooks.OnSent == nil {
		hooks.OnSent = func() {}
	}
	if hooks.OnFailed == nil {
		hooks.OnFailed = func() {}
	}
	if hooks.OnRun == nil {
		hooks.OnRun = func(int, time.Duration) {}
	}
	return &Service{
		repo:      repo,
		channel:   channel,
		limiter:   limiter,
		portalURL: portalURL,
		hooks:     hooks,
		logger:    logger,
	}
}

// Run executes one end-to-end reminder pass at the given instant.
//
// Only a stale-note read failure (or corrupt row) aborts the run. A company
// with no eligible managers is skipped without touching the counters; an
// individual send failure increments Errors and the loop moves on. The
// returned result is therefore always "successful" once selection worked —
// partial delivery failure lives in the counters, not the error.
func (s *Service) Run(ctx context.Context, now time.Time) (*domain.RunResult, error) {
	start := time.Now()

	threshold := s.threshold(ctx)
	cutoff := now.Add(-time.Duration(threshold) * time.Hour)

	s.logger.Info("checking stale approval notes",
		zap.Int("threshold_hours", threshold),
		zap.Time("cutoff", cutoff),
	)

	notes, err := s.repo.FindStaleNotes(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("find stale notes: %w", err)
	}

	result := &domain.RunResult{StaleNotes: len(notes)}
	defer func() { s.hooks.OnRun(result.StaleNotes, time.Since(start)) }()

	if len(notes) == 0 {
		s.logger.Info("no stale notes found", zap.Int("threshold_hours", threshold))
		return result, nil
	}

	s.logger.Info("stale notes found", zap.Int("count", len(notes)))

	for _, g := range GroupByCompany(notes) {
		if err := s.dispatch(ctx, g, now, result); err != nil {
			return result, err
		}
	}

	s.logger.Info("reminder run finished",
		zap.Int("stale_notes", result.StaleNotes),
		zap.Int("reminders_sent", result.RemindersSent),
		zap.Int("errors", result.Errors),
	)
	return result, nil
}

// CompanyDigest is one rendered digest, returned by Preview.
type CompanyDigest struct {
	CompanyID string `json:"company_id"`
	NoteCount int    `json:"note_count"`
	Message   string `json:"message"`
}

// Preview renders every company digest without dispatching anything.
// It runs the same selection, grouping and formatting path as Run.
func (s *Service) Preview(ctx context.Context, now time.Time) ([]CompanyDigest, int, error) {
	threshold := s.threshold(ctx)
	cutoff := now.Add(-time.Duration(threshold) * time.Hour)

	notes, err := s.repo.FindStaleNotes(ctx, cutoff)
	if err != nil {
		return nil, 0, fmt.Errorf("find stale notes: %w", err)
	}

	var digests []CompanyDigest
	for _, g := range GroupByCompany(notes) {
		digests = append(digests, CompanyDigest{
			CompanyID: g.CompanyID,
			NoteCount: len(g.Notes),
			Message:   digest.Render(g, now, s.portalURL),
		})
	}
	return digests, len(notes), nil
}

// threshold reads the configured staleness threshold, falling back to the
// default when the configuration is absent, not positive, or unreadable.
// A config read failure is deliberately non-fatal: the run proceeds with
// the default rather than silently skipping a reminder cycle.
func (s *Service) threshold(ctx context.Context) int {
	hours, err := s.repo.ThresholdHours(ctx)
	if err != nil {
		s.logger.Warn("threshold config unreadable, using default",
			zap.Int("default_hours", DefaultThresholdHours), zap.Error(err))
		return DefaultThresholdHours
	}
	if hours <= 0 {
		return DefaultThresholdHours
	}
	return hours
}

// dispatch sends one company's digest to each of its eligible managers.
// Returns a non-nil error only when ctx is cancelled while pacing sends.
func (s *Service) dispatch(ctx context.Context, g *domain.CompanyGroup, now time.Time, result *domain.RunResult) error {
	log := s.logger.With(zap.String("company_id", g.CompanyID))
	log.Info("processing company", zap.Int("notes", len(g.Notes)))

	managers, err := s.repo.FindManagers(ctx, g.CompanyID)
	if err != nil {
		log.Warn("manager lookup failed, skipping company", zap.Error(err))
		return nil
	}
	if len(managers) == 0 {
		log.Info("no eligible managers, skipping company")
		return nil
	}

	// Render once; every manager of the company receives the same text.
	msg := digest.Render(g, now, s.portalURL)

	for _, m := range managers {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		if err := s.channel.Send(ctx, m.WhatsApp, msg); err != nil {
			result.Errors++
			s.hooks.OnFailed()
			log.Warn("reminder send failed",
				zap.String("manager", m.Name), zap.Error(err))
			continue
		}

		result.RemindersSent++
		s.hooks.OnSent()
		log.Info("reminder sent", zap.String("manager", m.Name))
	}
	return nil
}
