package repository

import (
	"context"
	"time"

	"github.com/hccpay/approval-reminder/internal/domain"
)

// ReminderRepository defines all reads the reminder engine performs.
// The pgx implementation is in pg_reminder_repo.go.
// Tests use a hand-written mock (mock_reminder_repo.go).
type ReminderRepository interface {
	// ThresholdHours reads the configured staleness threshold.
	// Returns 0 when no configuration row exists; the engine applies
	// the default in that case.
	ThresholdHours(ctx context.Context) (int, error)

	// FindStaleNotes returns every pending note created before cutoff,
	// with payment and doctor joined, ordered oldest first. The ordering
	// is load-bearing: the digest shows the first five notes of each
	// company group.
	FindStaleNotes(ctx context.Context, cutoff time.Time) ([]*domain.Note, error)

	// FindManagers returns the company's eligible recipients: managers
	// with WhatsApp notifications enabled and a non-empty number.
	FindManagers(ctx context.Context, companyID string) ([]*domain.Manager, error)
}
