package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	apimw "github.com/hccpay/approval-reminder/internal/api/middleware"
	"github.com/hccpay/approval-reminder/internal/reminder"
)

// ReminderHandler exposes the reminder engine over HTTP.
type ReminderHandler struct {
	svc    *reminder.Service
	logger *zap.Logger
}

func NewReminderHandler(svc *reminder.Service, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{svc: svc, logger: logger}
}

// Run handles POST /api/v1/reminders/run
//
// Triggers one end-to-end reminder run. The captured "now" is threaded
// through the whole run so selection, tiering and formatting agree on a
// single instant.
//
// @Summary  Run the stale-note reminder pass
// @Tags     reminders
// @Produce  json
// @Success  200  {object}  map[string]any
// @Failure  500  {object}  map[string]any
// @Router   /api/v1/reminders/run [post]
func (h *ReminderHandler) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Run(r.Context(), time.Now().UTC())
	if err != nil {
		h.logger.Error("reminder run failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if result.StaleNotes == 0 {
		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "no stale notes found",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"stale_notes":    result.StaleNotes,
		"reminders_sent": result.RemindersSent,
		"errors":         result.Errors,
	})
}

// Preview handles GET /api/v1/reminders/preview
//
// Dry run: renders every company digest that a run would send right now,
// without dispatching anything.
//
// @Summary  Preview the digests a run would send
// @Tags     reminders
// @Produce  json
// @Success  200  {object}  map[string]any
// @Failure  500  {object}  map[string]any
// @Router   /api/v1/reminders/preview [get]
func (h *ReminderHandler) Preview(w http.ResponseWriter, r *http.Request) {
	digests, staleNotes, err := h.svc.Preview(r.Context(), time.Now().UTC())
	if err != nil {
		h.logger.Error("reminder preview failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"stale_notes": staleNotes,
		"companies":   digests,
	})
}
