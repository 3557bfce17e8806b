package reminder_test

import (
	"testing"
	"time"

	"github.com/hccpay/approval-reminder/internal/domain"
	"github.com/hccpay/approval-reminder/internal/reminder"
)

func TestGroupByCompany_PartitionsWithoutLossOrOverlap(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	notes := []*domain.Note{
		makeNote("n1", "c1", 90*time.Hour, 10, now),
		makeNote("n2", "c2", 80*time.Hour, 20, now),
		makeNote("n3", "c1", 70*time.Hour, 30, now),
		makeNote("n4", "c3", 60*time.Hour, 40, now),
		makeNote("n5", "c2", 50*time.Hour, 50, now),
	}

	groups := reminder.GroupByCompany(notes)

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	seen := map[string]bool{}
	total := 0
	for _, g := range groups {
		for _, n := range g.Notes {
			if seen[n.ID] {
				t.Fatalf("note %s appears in more than one group", n.ID)
			}
			seen[n.ID] = true
			if n.Payment.CompanyID != g.CompanyID {
				t.Fatalf("note %s grouped under wrong company %s", n.ID, g.CompanyID)
			}
			total++
		}
	}
	if total != len(notes) {
		t.Fatalf("expected all %d notes grouped, got %d", len(notes), total)
	}
}

func TestGroupByCompany_PreservesOrderAndSums(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	notes := []*domain.Note{
		makeNote("n1", "c1", 90*time.Hour, 10.50, now),
		makeNote("n2", "c1", 80*time.Hour, 20.25, now),
		makeNote("n3", "c1", 70*time.Hour, 30.25, now),
	}

	groups := reminder.GroupByCompany(notes)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	for i, id := range []string{"n1", "n2", "n3"} {
		if g.Notes[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s (input order must be preserved)", i, id, g.Notes[i].ID)
		}
	}
	if g.TotalAmount != 61.0 {
		t.Fatalf("expected total 61.0, got %v", g.TotalAmount)
	}
}

func TestGroupByCompany_FirstSeenGroupOrder(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	notes := []*domain.Note{
		makeNote("n1", "c2", 90*time.Hour, 10, now),
		makeNote("n2", "c1", 80*time.Hour, 10, now),
		makeNote("n3", "c2", 70*time.Hour, 10, now),
	}

	groups := reminder.GroupByCompany(notes)

	if groups[0].CompanyID != "c2" || groups[1].CompanyID != "c1" {
		t.Fatalf("expected first-seen company order [c2 c1], got [%s %s]",
			groups[0].CompanyID, groups[1].CompanyID)
	}
}

func TestGroupByCompany_Empty(t *testing.T) {
	if groups := reminder.GroupByCompany(nil); len(groups) != 0 {
		t.Fatalf("expected no groups for empty input, got %d", len(groups))
	}
}
