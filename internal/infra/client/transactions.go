// Package client provides HTTP clients for the external services the radar
// depends on, wrapped in retry, circuit breaking, and tracing.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/domain"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("client")

// TransactionsClient fetches transaction history from the sync service's
// read API.
type TransactionsClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
}

// NewTransactionsClient creates a new TransactionsClient.
func NewTransactionsClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *TransactionsClient {
	return &TransactionsClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		cfg:        cfg,
	}
}

// GetTransactions fetches a user's transactions with retry, circuit breaker, and tracing.
func (c *TransactionsClient) GetTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "TransactionsClient.GetTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	var transactions []domain.Transaction

	result, err := c.cb.Execute(func() (any, error) {
		var innerErr error
		innerErr = resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			url := fmt.Sprintf("%s/v1/users/%s/transactions", c.baseURL, userID)
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusNotFound {
				return &domain.ErrNotFound{Resource: "transactions", ID: userID}
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("transactions API returned status %d", resp.StatusCode)
			}

			return json.NewDecoder(resp.Body).Decode(&transactions)
		})
		if innerErr != nil {
			return nil, innerErr
		}
		return transactions, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			return nil, &domain.ErrCircuitOpen{Service: "transactions"}
		case errors.Is(err, context.DeadlineExceeded):
			return nil, &domain.ErrTimeout{Operation: "get transactions"}
		default:
			return nil, &domain.ErrExternalService{Service: "transactions", Err: err}
		}
	}

	return result.([]domain.Transaction), nil
}
