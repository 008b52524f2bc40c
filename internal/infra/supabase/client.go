// Package supabase adapts the Supabase (PostgREST) transaction store into
// the port.TransactionsFetcher interface. The store itself belongs to the
// external sync process; this client only reads from it.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/domain"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("supabase")

// Client wraps HTTP calls to the Supabase PostgREST API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	serviceRoleKey string
	cb             *gobreaker.CircuitBreaker
	cfg            resilience.Config
	logger         *zap.Logger
}

// NewClient creates a Supabase client.
func NewClient(httpClient *http.Client, baseURL, apiKey, serviceRoleKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         apiKey,
		serviceRoleKey: serviceRoleKey,
		cb:             cb,
		cfg:            cfg,
		logger:         logger,
	}
}

// doRequest executes an authenticated GET against Supabase PostgREST.
func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.serviceRoleKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("supabase: request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil // no data
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: non-2xx response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("supabase returned status %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("supabase: request OK",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return body, nil
}

// supabaseTransaction maps the bank_transactions table columns.
type supabaseTransaction struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	AccountID    string  `json:"account_id"`
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	Name         string  `json:"name"`
	MerchantName string  `json:"merchant_name"`
}

// GetTransactions fetches a user's synced transactions from Supabase.
// Rows whose date does not parse are forwarded with a zero Date; the
// detector's filtering step drops them.
func (c *Client) GetTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	var transactions []domain.Transaction

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("bank_transactions?user_id=eq.%s&order=date.desc&limit=500", userID)
			body, err := c.doRequest(ctx, path)
			if err != nil {
				return err
			}

			if body == nil || string(body) == "[]" {
				transactions = []domain.Transaction{}
				return nil
			}

			var rows []supabaseTransaction
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode transactions: %w", err)
			}

			transactions = make([]domain.Transaction, 0, len(rows))
			for _, r := range rows {
				t, _ := time.Parse(time.RFC3339, r.Date)
				if t.IsZero() {
					t, _ = time.Parse("2006-01-02", r.Date)
				}
				transactions = append(transactions, domain.Transaction{
					ID:           r.ID,
					UserID:       r.UserID,
					AccountID:    r.AccountID,
					Date:         t,
					Amount:       r.Amount,
					Name:         r.Name,
					MerchantName: r.MerchantName,
				})
			}
			return nil
		})
	})

	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			return nil, &domain.ErrCircuitOpen{Service: "supabase/transactions"}
		case errors.Is(err, context.DeadlineExceeded):
			return nil, &domain.ErrTimeout{Operation: "get transactions"}
		default:
			return nil, &domain.ErrExternalService{Service: "supabase/transactions", Err: err}
		}
	}

	return transactions, nil
}
