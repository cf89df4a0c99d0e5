package repositories

import (
	"connectzen/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// created once, mutated only through UpdateStatus and removed only by the
// admin's direct delete.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status models.OrderStatus) error
	Delete(id string) error
}
