package models

import "time"

// PaymentEvent is one ledger entry written per inbound payment-provider
// webhook delivery. Entries are append-only and keyed by the provider's
// invoice id; Reference carries the order id the checkout was created with.
type PaymentEvent struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	InvoiceID     string    `json:"invoiceId" gorm:"index"`
	Reference     string    `json:"reference"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"` // completed, failed or pending
	CustomerEmail string    `json:"customerEmail"`
	CustomerName  string    `json:"customerName"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	FailureReason string    `json:"failureReason,omitempty"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
