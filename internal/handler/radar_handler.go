package handler

import (
	"net/http"
	"time"

	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/domain"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/recurring"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Recurring series — GET /v1/users/{userID}/recurring-series
// ============================================================

type seriesResponse struct {
	SnapshotID string                   `json:"snapshot_id"`
	UserID     string                   `json:"user_id"`
	AsOf       string                   `json:"as_of"`
	Series     []domain.RecurringSeries `json:"series"`
}

func recurringSeriesHandler(svc *service.Radar, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userID}/recurring-series")
		defer span.End()

		userID := chi.URLParam(r, "userID")
		if userID == "" {
			writeError(w, http.StatusBadRequest, "user_id is required")
			return
		}
		span.SetAttributes(attribute.String("user.id", userID))

		asOf, err := parseAsOf(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		series, err := svc.GetRecurringSeries(ctx, userID, asOf)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if asOf.IsZero() {
			asOf = time.Now()
		}
		if series == nil {
			series = []domain.RecurringSeries{}
		}

		writeJSON(w, http.StatusOK, seriesResponse{
			SnapshotID: uuid.New().String(),
			UserID:     userID,
			AsOf:       asOf.Format("2006-01-02"),
			Series:     series,
		})
	}
}

// ============================================================
// Upcoming reminders — GET /v1/users/{userID}/reminders
// ============================================================

type remindersResponse struct {
	SnapshotID    string                 `json:"snapshot_id"`
	UserID        string                 `json:"user_id"`
	AsOf          string                 `json:"as_of"`
	LookaheadDays int                    `json:"lookahead_days"`
	Events        []domain.ReminderEvent `json:"events"`
}

func remindersHandler(svc *service.Radar, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userID}/reminders")
		defer span.End()

		userID := chi.URLParam(r, "userID")
		if userID == "" {
			writeError(w, http.StatusBadRequest, "user_id is required")
			return
		}
		span.SetAttributes(attribute.String("user.id", userID))

		asOf, err := parseAsOf(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		lookahead, err := parseLookahead(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		events, err := svc.GetUpcomingReminders(ctx, userID, lookahead, asOf)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if asOf.IsZero() {
			asOf = time.Now()
		}
		if lookahead <= 0 {
			lookahead = recurring.DefaultLookaheadDays
		}
		if events == nil {
			events = []domain.ReminderEvent{}
		}

		writeJSON(w, http.StatusOK, remindersResponse{
			SnapshotID:    uuid.New().String(),
			UserID:        userID,
			AsOf:          asOf.Format("2006-01-02"),
			LookaheadDays: lookahead,
			Events:        events,
		})
	}
}
