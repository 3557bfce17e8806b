package domain

import "time"

// Tier classifies a note by how long it has been waiting for approval.
// Tiers are mutually exclusive and ordered: critical > urgent > normal.
type Tier string

const (
	TierNormal   Tier = "normal"
	TierUrgent   Tier = "urgent"   // waiting >= 48h and < 72h
	TierCritical Tier = "critical" // waiting >= 72h
)

// Classify derives the urgency tier from the note's age at the given
// instant. The caller threads a single captured "now" through the whole
// run so every classification is consistent.
func Classify(createdAt, now time.Time) Tier {
	elapsed := now.Sub(createdAt)
	switch {
	case elapsed >= 72*time.Hour:
		return TierCritical
	case elapsed >= 48*time.Hour:
		return TierUrgent
	default:
		return TierNormal
	}
}

// Glyph returns the marker shown next to a note in the digest.
func (t Tier) Glyph() string {
	switch t {
	case TierCritical:
		return "🔴"
	case TierUrgent:
		return "🟡"
	default:
		return "⚠️"
	}
}
