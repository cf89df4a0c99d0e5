package repositories

import (
	"fmt"

	"connectzen/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{
		db: db,
	}
}

// GetAll retrieves all ledger entries, newest first.
func (r *GORMPaymentRepository) GetAll() ([]models.PaymentEvent, error) {
	var events []models.PaymentEvent
	if err := r.db.Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to get payment events: %w", err)
	}
	return events, nil
}

// Create appends a ledger entry.
func (r *GORMPaymentRepository) Create(event *models.PaymentEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to record payment event: %w", err)
	}
	return nil
}
