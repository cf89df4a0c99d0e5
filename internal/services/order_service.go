package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"connectzen/internal/models"
	"connectzen/internal/repositories"
	"connectzen/pkg/intasend"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// bulkConcurrency bounds the fan-out of bulk status updates.
const bulkConcurrency = 8

// CheckoutProvider creates a hosted checkout session and returns the URL
// the buyer should be redirected to.
type CheckoutProvider interface {
	CreateCheckout(req intasend.CheckoutRequest) (string, error)
}

// OrderNotifier sends order lifecycle emails. Returned errors are logged
// by the workflows and never fail an order operation.
type OrderNotifier interface {
	NotifyOrderCreated(order *models.Order) error
	NotifyStatusChanged(order *models.Order, status models.OrderStatus) error
}

// EventPublisher publishes order lifecycle events to the message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderService handles the order lifecycle: creation with checkout
// initiation, status transitions and the notifications hanging off both.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	checkout    CheckoutProvider
	notifier    OrderNotifier
	events      EventPublisher // may be nil when no broker is configured
	validate    *validator.Validate
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	checkout CheckoutProvider,
	notifier OrderNotifier,
	events EventPublisher,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		checkout:    checkout,
		notifier:    notifier,
		events:      events,
		validate:    validator.New(),
	}
}

// OrderRequest is the customer input for placing an order.
type OrderRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=20"`
	ProductID   string `json:"productId" validate:"required"`
}

// CheckoutResult is returned to the caller, which redirects the buyer's
// agent to CheckoutURL.
type CheckoutResult struct {
	Order       *models.Order `json:"order"`
	CheckoutURL string        `json:"checkout_url"`
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// CreateOrder validates the request, persists a pending order with price
// and name snapshots taken from the product, initiates a hosted checkout
// with the order id as reference, and fires best-effort notifications.
//
// A checkout failure leaves the persisted order in pending state so the
// attempt can be retried or reconciled manually. Notification and event
// failures never fail the workflow.
func (s *OrderService) CreateOrder(req OrderRequest) (*CheckoutResult, error) {
	// Validation happens before any store or network call.
	if err := s.validate.Struct(req); err != nil {
		return nil, newValidationError(err)
	}

	product, err := s.productRepo.GetByID(req.ProductID)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ProductID:   product.ID,
		ProductName: product.Name, // snapshot
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Amount:      product.Price, // snapshot
		Status:      models.StatusPending,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	checkoutURL, err := s.checkout.CreateCheckout(intasend.CheckoutRequest{
		Amount:      order.Amount,
		Email:       order.Email,
		FirstName:   order.FirstName,
		LastName:    order.LastName,
		PhoneNumber: order.PhoneNumber,
		Reference:   order.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w for order %s: %v", ErrCheckoutInit, order.ID, err)
	}

	if err := s.notifier.NotifyOrderCreated(order); err != nil {
		log.Printf("Warning: order created notification failed for order %s: %v", order.ID, err)
	}
	s.publishEvent("order.created", order)

	return &CheckoutResult{
		Order:       order,
		CheckoutURL: checkoutURL,
	}, nil
}

// UpdateOrderStatus applies a status transition. Any canonical status may
// move to any other; setting the current status again is a no-op success.
// The customer is notified best-effort with a status-specific message.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	order.Status = status

	if err := s.notifier.NotifyStatusChanged(order, status); err != nil {
		log.Printf("Warning: status update notification failed for order %s: %v", id, err)
	}
	s.publishEvent("order.status_updated", order)

	return order, nil
}

// BulkResult reports the outcome of a bulk status update per order id.
type BulkResult struct {
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
}

// BulkUpdateStatus applies the same status transition to every id. Writes
// and notifications fan out concurrently and all complete before the result
// is returned; one failing order never masks the rest.
func (s *OrderService) BulkUpdateStatus(ids []string, status models.OrderStatus) (*BulkResult, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	var (
		mu     sync.Mutex
		result = &BulkResult{Succeeded: []string{}, Failed: []string{}}
	)

	var g errgroup.Group
	g.SetLimit(bulkConcurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			_, err := s.UpdateOrderStatus(id, status)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("Bulk status update failed for order %s: %v", id, err)
				result.Failed = append(result.Failed, id)
			} else {
				result.Succeeded = append(result.Succeeded, id)
			}
			return nil
		})
	}
	// Errors are collected per id above; Wait only joins the goroutines.
	_ = g.Wait()

	return result, nil
}

// DeleteOrder removes an order directly, bypassing the lifecycle: no
// notification and no event is emitted.
func (s *OrderService) DeleteOrder(id string) error {
	return s.orderRepo.Delete(id)
}

// publishEvent sends an order event to the broker, best-effort.
func (s *OrderService) publishEvent(routingKey string, order *models.Order) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(order)
	if err != nil {
		log.Printf("Failed to marshal order %s for %s event: %v", order.ID, routingKey, err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}

// newValidationError converts validator errors into a ValidationError.
func newValidationError(err error) error {
	fields := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range verrs {
			fields[e.Field()] = fmt.Sprintf("failed on the '%s' tag", e.Tag())
		}
	} else {
		fields["request"] = err.Error()
	}
	return &ValidationError{Fields: fields}
}
