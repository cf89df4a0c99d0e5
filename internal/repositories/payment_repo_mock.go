package repositories

import (
	"sync"
	"time"

	"connectzen/internal/models"

	"github.com/google/uuid"
)

// MockPaymentRepository is an in-memory implementation of PaymentRepository.
type MockPaymentRepository struct {
	events []models.PaymentEvent
	mu     sync.RWMutex
}

// NewMockPaymentRepository creates a new instance of MockPaymentRepository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{}
}

// GetAll returns all ledger entries.
func (r *MockPaymentRepository) GetAll() ([]models.PaymentEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.PaymentEvent, len(r.events))
	copy(list, r.events)
	return list, nil
}

// Create appends a ledger entry.
func (r *MockPaymentRepository) Create(event *models.PaymentEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now()
	r.events = append(r.events, *event)
	return nil
}
