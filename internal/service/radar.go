// Package service orchestrates the recurring-charge engine: it pulls
// transaction history from the configured sources, runs detection, and
// shapes reminders for the notification layer.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/domain"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/infra/observability"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/infra/resilience"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/port"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/recurring"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("service/radar")

// Radar runs recurring-charge detection over a user's full transaction
// history and projects upcoming-bill reminders from the result.
type Radar struct {
	fetchers  []port.TransactionsFetcher
	cache     port.Cache[[]domain.RecurringSeries]
	detection domain.DetectionConfig
	bulkhead  *resilience.Bulkhead
	metrics   *observability.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewRadar creates the radar service with all dependencies injected.
// Each fetcher corresponds to one transaction source (e.g. one linked
// institution); their results are merged before detection.
func NewRadar(
	fetchers []port.TransactionsFetcher,
	cache port.Cache[[]domain.RecurringSeries],
	detection domain.DetectionConfig,
	bulkhead *resilience.Bulkhead,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Radar {
	return &Radar{
		fetchers:  fetchers,
		cache:     cache,
		detection: detection,
		bulkhead:  bulkhead,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// GetRecurringSeries returns the user's detected recurring series, soonest
// due first. asOf anchors "today" for due-date projection; a zero value
// means the service clock. Results are cached per user and day — detection
// over the same history and the same day is deterministic, so the cache
// never changes an answer.
func (r *Radar) GetRecurringSeries(ctx context.Context, userID string, asOf time.Time) ([]domain.RecurringSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "Radar.GetRecurringSeries")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	start := time.Now()
	defer func() {
		r.metrics.RecordRequestDuration("recurring_series", time.Since(start))
	}()

	if asOf.IsZero() {
		asOf = r.now()
	}

	cacheKey := fmt.Sprintf("series:%s:%s", userID, asOf.Format("2006-01-02"))
	if cached, ok := r.cache.Get(cacheKey); ok {
		r.metrics.IncrCacheHit("series")
		return cached, nil
	}
	r.metrics.IncrCacheMiss("series")

	if err := r.bulkhead.Acquire(ctx); err != nil {
		return nil, err
	}
	defer r.bulkhead.Release()

	transactions, err := r.fetchAll(ctx, userID)
	if err != nil {
		r.metrics.RecordDetectionRun("error", 0)
		return nil, err
	}

	series := recurring.Detect(transactions, r.detection, asOf)
	r.metrics.RecordDetectionRun("success", len(series))
	r.logger.Debug("detection run complete",
		zap.String("user_id", userID),
		zap.Int("transactions", len(transactions)),
		zap.Int("series", len(series)),
	)

	r.cache.Set(cacheKey, series)
	return series, nil
}

// GetUpcomingReminders returns reminder events for the user's series due
// within lookaheadDays of asOf. lookaheadDays <= 0 selects the default
// window.
func (r *Radar) GetUpcomingReminders(ctx context.Context, userID string, lookaheadDays int, asOf time.Time) ([]domain.ReminderEvent, error) {
	ctx, span := tracer.Start(ctx, "Radar.GetUpcomingReminders")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	start := time.Now()
	defer func() {
		r.metrics.RecordRequestDuration("reminders", time.Since(start))
	}()

	if asOf.IsZero() {
		asOf = r.now()
	}
	if lookaheadDays <= 0 {
		lookaheadDays = recurring.DefaultLookaheadDays
	}

	series, err := r.GetRecurringSeries(ctx, userID, asOf)
	if err != nil {
		return nil, err
	}

	events := recurring.ProjectReminders(series, lookaheadDays, asOf)
	r.metrics.RecordRemindersEmitted(len(events))
	return events, nil
}

// fetchAll pulls the user's transactions from every configured source
// concurrently. Results are merged in fetcher order, not completion order,
// so repeated calls feed the detector an identically ordered input.
func (r *Radar) fetchAll(ctx context.Context, userID string) ([]domain.Transaction, error) {
	results := make([][]domain.Transaction, len(r.fetchers))

	g, gCtx := errgroup.WithContext(ctx)
	for i, f := range r.fetchers {
		i, f := i, f
		g.Go(func() error {
			txs, err := f.GetTransactions(gCtx, userID)
			if err != nil {
				r.logger.Error("failed to fetch transactions",
					zap.String("user_id", userID),
					zap.Error(err),
				)
				r.metrics.IncrExternalError("transactions")
				return fmt.Errorf("transactions fetch: %w", err)
			}
			results[i] = txs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []domain.Transaction
	for _, txs := range results {
		merged = append(merged, txs...)
	}
	return merged, nil
}
