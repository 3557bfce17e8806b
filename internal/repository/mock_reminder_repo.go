package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hccpay/approval-reminder/internal/domain"
)

// MockReminderRepository is a hand-written, in-memory implementation of
// ReminderRepository used in unit tests. No mock-generation library needed.
//
// FindStaleNotes applies the real selection predicate (status + cutoff)
// and ordering to whatever notes the test loads, so engine tests exercise
// the query contract, not just a canned result.
type MockReminderRepository struct {
	mu        sync.RWMutex
	Threshold int
	Notes     []*domain.Note
	Managers  map[string][]*domain.Manager

	// Optional error overrides — set in tests to simulate failure paths.
	ThresholdErr  error
	StaleNotesErr error
	ManagersErr   map[string]error

	// LastCutoff records the cutoff of the most recent FindStaleNotes call.
	LastCutoff time.Time
}

func NewMockReminderRepository() *MockReminderRepository {
	return &MockReminderRepository{
		Managers:    make(map[string][]*domain.Manager),
		ManagersErr: make(map[string]error),
	}
}

func (m *MockReminderRepository) ThresholdHours(_ context.Context) (int, error) {
	if m.ThresholdErr != nil {
		return 0, m.ThresholdErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Threshold, nil
}

func (m *MockReminderRepository) FindStaleNotes(_ context.Context, cutoff time.Time) ([]*domain.Note, error) {
	m.mu.Lock()
	m.LastCutoff = cutoff
	m.mu.Unlock()

	if m.StaleNotesErr != nil {
		return nil, m.StaleNotesErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Note
	for _, n := range m.Notes {
		if n.Status == domain.StatusPending && n.CreatedAt.Before(cutoff) {
			clone := *n
			result = append(result, &clone)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockReminderRepository) FindManagers(_ context.Context, companyID string) ([]*domain.Manager, error) {
	if err := m.ManagersErr[companyID]; err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Manager
	for _, mgr := range m.Managers[companyID] {
		clone := *mgr
		result = append(result, &clone)
	}
	return result, nil
}
