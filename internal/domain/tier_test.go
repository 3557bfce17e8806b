package domain_test

import (
	"testing"
	"time"

	"github.com/hccpay/approval-reminder/internal/domain"
)

func TestClassify(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    domain.Tier
	}{
		{"fresh note", 10 * time.Hour, domain.TierNormal},
		{"just under urgent boundary", 48*time.Hour - time.Minute, domain.TierNormal},
		{"exactly 48h", 48 * time.Hour, domain.TierUrgent},
		{"just under critical boundary", 72*time.Hour - time.Minute, domain.TierUrgent},
		{"exactly 72h", 72 * time.Hour, domain.TierCritical},
		{"very old note", 200 * time.Hour, domain.TierCritical},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.Classify(now.Add(-tc.elapsed), now)
			if got != tc.want {
				t.Fatalf("elapsed %v: expected %s, got %s", tc.elapsed, tc.want, got)
			}
		})
	}
}

func TestTierGlyphsAreDistinct(t *testing.T) {
	seen := map[string]domain.Tier{}
	for _, tier := range []domain.Tier{domain.TierNormal, domain.TierUrgent, domain.TierCritical} {
		g := tier.Glyph()
		if g == "" {
			t.Fatalf("tier %s has empty glyph", tier)
		}
		if prev, dup := seen[g]; dup {
			t.Fatalf("tiers %s and %s share glyph %q", prev, tier, g)
		}
		seen[g] = tier
	}
}

func TestCompanyGroupTierCounts(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	g := &domain.CompanyGroup{
		Notes: []*domain.Note{
			{CreatedAt: now.Add(-80 * time.Hour)}, // critical
			{CreatedAt: now.Add(-73 * time.Hour)}, // critical
			{CreatedAt: now.Add(-50 * time.Hour)}, // urgent
			{CreatedAt: now.Add(-30 * time.Hour)}, // normal
		},
	}

	if got := g.CriticalCount(now); got != 2 {
		t.Fatalf("expected 2 critical, got %d", got)
	}
	if got := g.UrgentCount(now); got != 1 {
		t.Fatalf("expected 1 urgent, got %d", got)
	}
}
