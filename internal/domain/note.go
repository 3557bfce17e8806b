package domain

import "time"

// NoteStatus values mirror the notas_medicos.status column.
// Only pending notes are candidates for a reminder.
const StatusPending = "pendente"

// Note is a pending approval note awaiting a manager's decision.
// Read once per run and discarded; the store owns the record.
type Note struct {
	ID        string
	Status    string
	CreatedAt time.Time
	FileURL   *string
	Payment   Payment
}

// Payment carries the monetary and organizational context of a note.
type Payment struct {
	ID              string
	CompetencyMonth string // "YYYY-MM"
	Amount          float64
	CompanyID       string
	Doctor          Doctor
}

// Doctor is the submitter of the note.
type Doctor struct {
	Name      string
	Document  string
	Specialty string
	WhatsApp  string
}

// Manager is a reminder recipient. The repository only returns managers
// that are eligible: notifications enabled and a non-empty WhatsApp number.
type Manager struct {
	ID        string
	Name      string
	WhatsApp  string
	CompanyID string
}

// CompanyGroup is one company's slice of the stale-note set, in the same
// oldest-first order the selection query produced.
type CompanyGroup struct {
	CompanyID   string
	Notes       []*Note
	TotalAmount float64
}

// CriticalCount returns how many notes in the group are in the critical tier.
func (g *CompanyGroup) CriticalCount(now time.Time) int {
	var n int
	for _, note := range g.Notes {
		if Classify(note.CreatedAt, now) == TierCritical {
			n++
		}
	}
	return n
}

// UrgentCount returns how many notes in the group are in the urgent tier.
func (g *CompanyGroup) UrgentCount(now time.Time) int {
	var n int
	for _, note := range g.Notes {
		if Classify(note.CreatedAt, now) == TierUrgent {
			n++
		}
	}
	return n
}

// RunResult is the outcome of one reminder run. It is computed fresh every
// run and never persisted; send failures show up only in Errors.
type RunResult struct {
	StaleNotes    int `json:"stale_notes"`
	RemindersSent int `json:"reminders_sent"`
	Errors        int `json:"errors"`
}
