// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/domain"
)

// TransactionsFetcher retrieves the transaction history for one user from
// the external transaction store. The engine makes no ordering assumptions
// about what a fetcher returns.
type TransactionsFetcher interface {
	GetTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
