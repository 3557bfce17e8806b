package digest_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hccpay/approval-reminder/internal/digest"
	"github.com/hccpay/approval-reminder/internal/domain"
)

const portalURL = "https://hcc.chatconquista.com"

func makeNote(id string, age time.Duration, amount float64, now time.Time) *domain.Note {
	return &domain.Note{
		ID:        id,
		Status:    domain.StatusPending,
		CreatedAt: now.Add(-age),
		Payment: domain.Payment{
			ID:              "pay-" + id,
			CompetencyMonth: "2026-01",
			Amount:          amount,
			CompanyID:       "company-1",
			Doctor:          domain.Doctor{Name: "Dr. " + id},
		},
	}
}

func TestRender_TruncatesDetailAtFiveNotes(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// Seven notes, oldest first, amounts 10..70.
	g := &domain.CompanyGroup{CompanyID: "company-1"}
	for i := 0; i < 7; i++ {
		n := makeNote(fmt.Sprintf("n%d", i), time.Duration(100-i)*time.Hour, float64((i+1)*10), now)
		g.Notes = append(g.Notes, n)
		g.TotalAmount += n.Payment.Amount
	}

	msg := digest.Render(g, now, portalURL)

	if got := strings.Count(msg, "✅ Aprovar:"); got != 5 {
		t.Fatalf("expected 5 detail entries, got %d", got)
	}
	if !strings.Contains(msg, "_...e mais 2 nota(s)_") {
		t.Fatal("expected truncation notice for the 2 remaining notes")
	}
	if !strings.Contains(msg, "Total: 7 nota(s)") {
		t.Fatal("expected total count of 7 in the summary")
	}
	if !strings.Contains(msg, "R$ 280,00") {
		t.Fatalf("expected formatted total R$ 280,00 in:\n%s", msg)
	}

	// The five shown must be the five oldest.
	for i := 0; i < 5; i++ {
		if !strings.Contains(msg, "Dr. n"+fmt.Sprint(i)) {
			t.Fatalf("expected oldest note n%d in detail block", i)
		}
	}
	if strings.Contains(msg, "Dr. n5") || strings.Contains(msg, "Dr. n6") {
		t.Fatal("newest notes must not appear in the detail block")
	}
}

func TestRender_SmallGroupHasNoTruncationNotice(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	g := &domain.CompanyGroup{CompanyID: "company-1"}
	for i := 0; i < 3; i++ {
		g.Notes = append(g.Notes, makeNote(fmt.Sprintf("n%d", i), 30*time.Hour, 10, now))
	}

	msg := digest.Render(g, now, portalURL)

	if strings.Contains(msg, "e mais") {
		t.Fatal("unexpected truncation notice for a 3-note group")
	}
	if got := strings.Count(msg, "✅ Aprovar:"); got != 3 {
		t.Fatalf("expected 3 detail entries, got %d", got)
	}
}

func TestRender_ElapsedTimeAndCriticalGlyph(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	g := &domain.CompanyGroup{
		CompanyID:   "company-1",
		Notes:       []*domain.Note{makeNote("old", 80*time.Hour, 100, now)},
		TotalAmount: 100,
	}

	msg := digest.Render(g, now, portalURL)

	if !strings.Contains(msg, "Aguardando há 3 dia(s) e 8h") {
		t.Fatalf("expected '3 dia(s) e 8h' for an 80h-old note in:\n%s", msg)
	}
	if !strings.Contains(msg, "🔴 *Dr. old*") {
		t.Fatal("expected critical glyph next to the doctor name")
	}
	if !strings.Contains(msg, "🔴 Críticas (>72h): 1") {
		t.Fatal("expected critical count line in the summary")
	}
}

func TestRender_OmitsZeroTierCounts(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	g := &domain.CompanyGroup{
		CompanyID:   "company-1",
		Notes:       []*domain.Note{makeNote("recent", 30*time.Hour, 50, now)},
		TotalAmount: 50,
	}

	msg := digest.Render(g, now, portalURL)

	if strings.Contains(msg, "Críticas") {
		t.Fatal("critical line must be omitted when the count is zero")
	}
	if strings.Contains(msg, "Urgentes") {
		t.Fatal("urgent line must be omitted when the count is zero")
	}
}

func TestRender_LinksAndFooter(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	n := makeNote("abc", 30*time.Hour, 50, now)
	g := &domain.CompanyGroup{CompanyID: "company-1", Notes: []*domain.Note{n}, TotalAmount: 50}

	msg := digest.Render(g, now, portalURL)

	approve := digest.Token(n.ID, n.CreatedAt, "approve")
	reject := digest.Token(n.ID, n.CreatedAt, "reject")
	if !strings.Contains(msg, portalURL+"/aprovar?i=abc&t="+approve) {
		t.Fatal("expected approve link with note id and token")
	}
	if !strings.Contains(msg, portalURL+"/rejeitar?i=abc&t="+reject) {
		t.Fatal("expected reject link with note id and token")
	}
	if !strings.Contains(msg, portalURL+"/aprovar-nota") {
		t.Fatal("expected portal footer link")
	}
}

func TestToken(t *testing.T) {
	createdAt := time.Date(2026, 8, 27, 4, 0, 0, 0, time.UTC)

	a := digest.Token("note-1", createdAt, "approve")
	b := digest.Token("note-1", createdAt, "approve")
	r := digest.Token("note-1", createdAt, "reject")

	if a != b {
		t.Fatal("token must be deterministic for the same inputs")
	}
	if a == r {
		t.Fatal("approve and reject tokens must differ")
	}
	if len(a) > 30 || len(r) > 30 {
		t.Fatalf("tokens must be truncated to 30 chars, got %d and %d", len(a), len(r))
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{280, "R$ 280,00"},
		{1234.56, "R$ 1.234,56"},
		{0.5, "R$ 0,50"},
	}
	for _, tc := range tests {
		if got := digest.FormatCurrency(tc.in); got != tc.want {
			t.Fatalf("FormatCurrency(%v): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestFormatCompetency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-01", "janeiro de 2026"},
		{"2025-12", "dezembro de 2025"},
		{"2026-06", "junho de 2026"},
		{"bogus", "bogus"},
		{"2026-13", "2026-13"},
		{"2026-xx", "2026-xx"},
	}
	for _, tc := range tests {
		if got := digest.FormatCompetency(tc.in); got != tc.want {
			t.Fatalf("FormatCompetency(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
