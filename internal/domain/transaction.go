// Package domain defines the core business entities for the recurring-charge
// engine. These models are independent of external services and represent the
// canonical data structures used throughout the service.
package domain

import "time"

// Transaction is a single bank transaction as delivered by the external
// transaction store. Positive Amount means money leaving the account.
// Transactions are read-only inputs; the engine never mutates them.
type Transaction struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id,omitempty"`
	AccountID    string    `json:"account_id,omitempty"`
	Date         time.Time `json:"date"`
	Amount       float64   `json:"amount"`
	Name         string    `json:"name"`
	MerchantName string    `json:"merchant_name,omitempty"`
}

// DisplayName returns the most specific name available for the transaction:
// the merchant name when the store provides one, otherwise the raw name.
func (t Transaction) DisplayName() string {
	if t.MerchantName != "" {
		return t.MerchantName
	}
	return t.Name
}
