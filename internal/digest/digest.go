// Package digest renders the per-company reminder message.
//
// One digest is built per company group and the identical text is sent to
// every eligible manager of that company, so rendering happens once before
// the fan-out. The detail block is capped at the five oldest notes to keep
// the message within WhatsApp-friendly length.
package digest

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hccpay/approval-reminder/internal/domain"
)

// maxDetailNotes bounds the detail block; older notes beyond it are
// summarized in the truncation notice.
const maxDetailNotes = 5

// tokenLength matches the original link scheme: the base64 payload is
// truncated to 30 characters. Not a security boundary.
const tokenLength = 30

const divider = "━━━━━━━━━━━━━━━━━━━━━━"

var months = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// printer formats numbers with pt-BR separators (1.234,56).
var printer = message.NewPrinter(language.BrazilianPortuguese)

// Render builds the digest for one company group at the given instant.
// The group's notes must already be in oldest-first order.
func Render(g *domain.CompanyGroup, now time.Time, portalURL string) string {
	var b strings.Builder

	b.WriteString("⚠️ *LEMBRETE - Notas Pendentes de Aprovação*\n\n")
	b.WriteString("📊 *RESUMO URGENTE*\n")
	fmt.Fprintf(&b, "   • Total: %d nota(s)\n", len(g.Notes))
	fmt.Fprintf(&b, "   • Valor: %s\n", FormatCurrency(g.TotalAmount))
	if c := g.CriticalCount(now); c > 0 {
		fmt.Fprintf(&b, "   • 🔴 Críticas (>72h): %d\n", c)
	}
	if u := g.UrgentCount(now); u > 0 {
		fmt.Fprintf(&b, "   • 🟡 Urgentes (>48h): %d\n", u)
	}
	b.WriteString("\n" + divider + "\n\n")

	b.WriteString("📋 *NOTAS MAIS ANTIGAS*\n\n")
	shown := g.Notes
	if len(shown) > maxDetailNotes {
		shown = shown[:maxDetailNotes]
	}
	for _, n := range shown {
		writeNote(&b, n, now, portalURL)
	}

	if remaining := len(g.Notes) - maxDetailNotes; remaining > 0 {
		fmt.Fprintf(&b, "_...e mais %d nota(s)_\n\n", remaining)
	}

	b.WriteString(divider + "\n\n")
	fmt.Fprintf(&b, "🔗 *Portal:* %s/aprovar-nota\n\n", portalURL)
	b.WriteString("⚡ Por favor, revise e aprove as notas pendentes para liberar os pagamentos.")

	return b.String()
}

func writeNote(b *strings.Builder, n *domain.Note, now time.Time, portalURL string) {
	tier := domain.Classify(n.CreatedAt, now)
	hours := int(now.Sub(n.CreatedAt).Hours())
	days := hours / 24

	fmt.Fprintf(b, "%s *%s*\n", tier.Glyph(), n.Payment.Doctor.Name)
	fmt.Fprintf(b, "   💰 %s • %s\n", FormatCurrency(n.Payment.Amount), FormatCompetency(n.Payment.CompetencyMonth))
	fmt.Fprintf(b, "   ⏱️ Aguardando há %d dia(s) e %dh\n\n", days, hours%24)
	fmt.Fprintf(b, "   ✅ Aprovar: %s/aprovar?i=%s&t=%s\n", portalURL, n.ID, Token(n.ID, n.CreatedAt, "approve"))
	fmt.Fprintf(b, "   ❌ Rejeitar: %s/rejeitar?i=%s&t=%s\n\n", portalURL, n.ID, Token(n.ID, n.CreatedAt, "reject"))
}

// FormatCurrency renders a BRL amount with symbol prefix, two decimals and
// pt-BR thousands/decimal separators.
func FormatCurrency(v float64) string {
	return printer.Sprintf("R$ %.2f", v)
}

// FormatCompetency turns a "YYYY-MM" key into the human label used in the
// digest, e.g. "2024-01" -> "janeiro de 2024". Malformed keys are returned
// unchanged rather than dropping the line.
func FormatCompetency(yearMonth string) string {
	year, monthStr, ok := strings.Cut(yearMonth, "-")
	if !ok {
		return yearMonth
	}
	m, err := strconv.Atoi(monthStr)
	if err != nil || m < 1 || m > 12 {
		return yearMonth
	}
	return months[m-1] + " de " + year
}

// Token derives the opaque approve/reject link token: base64 of
// "id-createdAt-action" truncated to a fixed short length. Deterministic
// and reversible — anyone can forge it. Kept for compatibility with the
// existing portal links; a signed expiring token is the known follow-up.
func Token(noteID string, createdAt time.Time, action string) string {
	raw := base64.StdEncoding.EncodeToString(
		[]byte(noteID + "-" + createdAt.Format(time.RFC3339) + "-" + action))
	if len(raw) > tokenLength {
		raw = raw[:tokenLength]
	}
	return raw
}
