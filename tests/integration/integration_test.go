package integration_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/domain"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/handler"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/infra/cache"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/infra/client"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/infra/observability"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/infra/resilience"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/port"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/service"

	"go.uber.org/zap"
)

func day(d int) time.Time {
	return time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

// TestIntegration_FullFlow spins up a mock transactions API and drives the
// full request path: HTTP client -> detection service -> router.
func TestIntegration_FullFlow(t *testing.T) {
	var fetchCalls atomic.Int64

	// --- Mock transactions API ---
	// Netflix charged three times at monthly spacing, plus one-off noise.
	txServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetchCalls.Add(1)
		transactions := []domain.Transaction{
			{ID: "tx-1", UserID: "user-42", Date: day(0), Amount: 15.49, Name: "NETFLIX.COM"},
			{ID: "tx-2", UserID: "user-42", Date: day(30), Amount: 15.49, Name: "Netflix.com"},
			{ID: "tx-3", UserID: "user-42", Date: day(61), Amount: 15.49, Name: "NETFLIX.COM"},
			{ID: "tx-4", UserID: "user-42", Date: day(12), Amount: 84.20, Name: "HARDWARE STORE"},
			{ID: "tx-5", UserID: "user-42", Date: day(45), Amount: -2100.00, Name: "PAYROLL DEPOSIT"},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	}))
	defer txServer.Close()

	// --- Build service ---
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cb := resilience.NewCircuitBreaker("test")
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}
	httpClient := &http.Client{Timeout: 5 * time.Second}

	svc := service.NewRadar(
		[]port.TransactionsFetcher{
			client.NewTransactionsClient(httpClient, txServer.URL, cb, cfg),
		},
		cache.New[[]domain.RecurringSeries](5*time.Minute),
		domain.DefaultDetectionConfig(),
		resilience.NewBulkhead(10),
		metrics,
		logger,
	)

	router := handler.NewRouter(svc, metrics, logger)
	srv := httptest.NewServer(router)
	defer srv.Close()

	// --- Recurring series ---
	// Last charge day 61, cadence avg(30, 31) -> 31. Next due day 92.
	resp, err := http.Get(srv.URL + "/v1/users/user-42/recurring-series?as_of=2025-03-05")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var seriesResp struct {
		SnapshotID string                   `json:"snapshot_id"`
		UserID     string                   `json:"user_id"`
		Series     []domain.RecurringSeries `json:"series"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&seriesResp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(seriesResp.Series) != 1 {
		t.Fatalf("expected 1 series, got %d: %+v", len(seriesResp.Series), seriesResp.Series)
	}

	got := seriesResp.Series[0]
	if got.Cadence != domain.CadenceMonthly {
		t.Errorf("expected monthly cadence, got %s", got.Cadence)
	}
	if got.Occurrences != 3 {
		t.Errorf("expected 3 occurrences, got %d", got.Occurrences)
	}
	if !got.NextDueDate.Equal(day(92)) {
		t.Errorf("expected due %s, got %s", day(92), got.NextDueDate)
	}

	// --- Reminders within the lookahead window ---
	// Due day 92 = 2025-04-03; as_of 2025-03-31 -> 3 days out.
	resp2, err := http.Get(srv.URL + "/v1/users/user-42/reminders?lookahead_days=7&as_of=2025-03-31")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp2.Body.Close()

	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp2.StatusCode)
	}

	var remindersResp struct {
		Events []domain.ReminderEvent `json:"events"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&remindersResp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(remindersResp.Events) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(remindersResp.Events))
	}
	if remindersResp.Events[0].DaysUntilDue != 3 {
		t.Errorf("expected 3 days until due, got %d", remindersResp.Events[0].DaysUntilDue)
	}

	// --- Cache: same user and day must not refetch ---
	calls := fetchCalls.Load()
	resp3, err := http.Get(srv.URL + "/v1/users/user-42/recurring-series?as_of=2025-03-05")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp3.Body.Close()
	if fetchCalls.Load() != calls {
		t.Errorf("expected cached response, but transactions API was called again")
	}
}

// TestIntegration_UpstreamFailure verifies upstream errors surface as 503
// rather than empty results.
func TestIntegration_UpstreamFailure(t *testing.T) {
	txServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer txServer.Close()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cb := resilience.NewCircuitBreaker("test-failure")
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}

	svc := service.NewRadar(
		[]port.TransactionsFetcher{
			client.NewTransactionsClient(&http.Client{Timeout: 5 * time.Second}, txServer.URL, cb, cfg),
		},
		cache.New[[]domain.RecurringSeries](5*time.Minute),
		domain.DefaultDetectionConfig(),
		resilience.NewBulkhead(10),
		metrics,
		logger,
	)

	router := handler.NewRouter(svc, metrics, logger)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/users/user-42/recurring-series")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
}
