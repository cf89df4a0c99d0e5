package repositories

import (
	"connectzen/internal/models"
)

// PaymentRepository defines the interface for the payment webhook ledger.
// The ledger is append-only; entries are never updated or deleted.
type PaymentRepository interface {
	GetAll() ([]models.PaymentEvent, error)
	Create(event *models.PaymentEvent) error
}
