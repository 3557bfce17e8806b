package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hccpay/approval-reminder/internal/domain"
)

type pgReminderRepository struct {
	pool *pgxpool.Pool
}

// NewPgReminderRepository returns a ReminderRepository backed by PostgreSQL.
func NewPgReminderRepository(pool *pgxpool.Pool) ReminderRepository {
	return &pgReminderRepository{pool: pool}
}

func (r *pgReminderRepository) ThresholdHours(ctx context.Context) (int, error) {
	var hours *int
	err := r.pool.QueryRow(ctx, `
		SELECT intervalo_cobranca_nota_horas FROM configuracoes LIMIT 1`).Scan(&hours)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read threshold config: %w", err)
	}
	if hours == nil {
		return 0, nil
	}
	return *hours, nil
}

func (r *pgReminderRepository) FindStaleNotes(ctx context.Context, cutoff time.Time) ([]*domain.Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT n.id, n.status, n.created_at, n.arquivo_url,
		       p.id, p.mes_competencia, p.valor::text, p.empresa_id,
		       m.nome, m.documento, m.especialidade, m.numero_whatsapp
		FROM notas_medicos n
		JOIN pagamentos p ON p.id = n.pagamento_id
		LEFT JOIN medicos m ON m.id = p.medico_id
		WHERE n.status = $1
		  AND n.created_at < $2
		ORDER BY n.created_at ASC`,
		domain.StatusPending, cutoff)
	if err != nil {
		return nil, fmt.Errorf("find stale notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *pgReminderRepository) FindManagers(ctx context.Context, companyID string) ([]*domain.Manager, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, numero_whatsapp, empresa_id
		FROM profiles
		WHERE role = 'gestor'
		  AND empresa_id = $1
		  AND whatsapp_notifications_enabled = TRUE
		  AND numero_whatsapp IS NOT NULL
		  AND numero_whatsapp <> ''`, companyID)
	if err != nil {
		return nil, fmt.Errorf("find managers: %w", err)
	}
	defer rows.Close()

	var managers []*domain.Manager
	for rows.Next() {
		var m domain.Manager
		if err := rows.Scan(&m.ID, &m.Name, &m.WhatsApp, &m.CompanyID); err != nil {
			return nil, fmt.Errorf("scan manager: %w", err)
		}
		managers = append(managers, &m)
	}
	return managers, rows.Err()
}

// scanNote reads one joined row. The amount travels as numeric text and is
// parsed here so a corrupt value surfaces as ErrInvalidAmount instead of
// silently summing as zero; a payment without a doctor row surfaces as
// ErrDataIntegrity instead of producing a nameless digest entry.
func scanNote(row pgx.Row) (*domain.Note, error) {
	var (
		n         domain.Note
		amount    string
		name      *string
		document  *string
		specialty *string
		whatsapp  *string
	)
	err := row.Scan(
		&n.ID, &n.Status, &n.CreatedAt, &n.FileURL,
		&n.Payment.ID, &n.Payment.CompetencyMonth, &amount, &n.Payment.CompanyID,
		&name, &document, &specialty, &whatsapp,
	)
	if err != nil {
		return nil, fmt.Errorf("scan note: %w", err)
	}

	if name == nil {
		return nil, fmt.Errorf("note %s: %w", n.ID, domain.ErrDataIntegrity)
	}
	n.Payment.Doctor = domain.Doctor{
		Name:      *name,
		Document:  deref(document),
		Specialty: deref(specialty),
		WhatsApp:  deref(whatsapp),
	}

	n.Payment.Amount, err = strconv.ParseFloat(amount, 64)
	if err != nil {
		return nil, fmt.Errorf("note %s amount %q: %w", n.ID, amount, domain.ErrInvalidAmount)
	}
	return &n, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
