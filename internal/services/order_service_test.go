package services_test

import (
	"fmt"
	"testing"

	"connectzen/internal/models"
	"connectzen/internal/repositories"
	"connectzen/internal/services"
	"connectzen/pkg/intasend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetAll() ([]models.Order, error) {
	args := m.Called()
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCheckoutProvider is a mock implementation of services.CheckoutProvider
type MockCheckoutProvider struct {
	mock.Mock
}

func (m *MockCheckoutProvider) CreateCheckout(req intasend.CheckoutRequest) (string, error) {
	args := m.Called(req)
	return args.String(0), args.Error(1)
}

// MockOrderNotifier is a mock implementation of services.OrderNotifier
type MockOrderNotifier struct {
	mock.Mock
}

func (m *MockOrderNotifier) NotifyOrderCreated(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderNotifier) NotifyStatusChanged(order *models.Order, status models.OrderStatus) error {
	args := m.Called(order, status)
	return args.Error(0)
}

func newOrderServiceWithMocks() (*services.OrderService, *MockOrderRepository, *MockProductRepository, *MockCheckoutProvider, *MockOrderNotifier) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	checkout := new(MockCheckoutProvider)
	notifier := new(MockOrderNotifier)
	service := services.NewOrderService(orderRepo, productRepo, checkout, notifier, nil)
	return service, orderRepo, productRepo, checkout, notifier
}

func validOrderRequest() services.OrderRequest {
	return services.OrderRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@x.com",
		ProductID: "prod-1",
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	service, orderRepo, productRepo, checkout, notifier := newOrderServiceWithMocks()

	product := &models.Product{ID: "prod-1", Name: "Novel", Price: 19.99, Stock: 3}
	productRepo.On("GetByID", "prod-1").Return(product, nil).Once()
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Order).ID = "order-1"
	}).Return(nil).Once()
	checkout.On("CreateCheckout", mock.MatchedBy(func(req intasend.CheckoutRequest) bool {
		return req.Reference == "order-1" && req.Amount == 19.99 && req.Email == "jane@x.com"
	})).Return("https://sandbox.intasend.com/checkout/abc", nil).Once()
	notifier.On("NotifyOrderCreated", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	result, err := service.CreateOrder(validOrderRequest())

	assert.NoError(t, err)
	assert.Equal(t, "https://sandbox.intasend.com/checkout/abc", result.CheckoutURL)
	assert.Equal(t, "order-1", result.Order.ID)
	assert.Equal(t, models.StatusPending, result.Order.Status)
	// Snapshots of the product at creation time.
	assert.Equal(t, 19.99, result.Order.Amount)
	assert.Equal(t, "Novel", result.Order.ProductName)
	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	checkout.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestOrderService_CreateOrder_SnapshotSurvivesProductChange(t *testing.T) {
	service, orderRepo, productRepo, checkout, notifier := newOrderServiceWithMocks()

	product := &models.Product{ID: "prod-1", Name: "Novel", Price: 19.99}
	productRepo.On("GetByID", "prod-1").Return(product, nil).Once()
	orderRepo.On("Create", mock.Anything).Return(nil).Once()
	checkout.On("CreateCheckout", mock.Anything).Return("https://pay.example/x", nil).Once()
	notifier.On("NotifyOrderCreated", mock.Anything).Return(nil).Once()

	result, err := service.CreateOrder(validOrderRequest())
	assert.NoError(t, err)

	// A later price change on the product must not reach the placed order.
	product.Price = 99.99
	product.Name = "Novel (Deluxe)"
	assert.Equal(t, 19.99, result.Order.Amount)
	assert.Equal(t, "Novel", result.Order.ProductName)
}

func TestOrderService_CreateOrder_ValidationFailure(t *testing.T) {
	for _, tc := range []struct {
		name string
		mut  func(*services.OrderRequest)
	}{
		{"empty first name", func(r *services.OrderRequest) { r.FirstName = "" }},
		{"empty last name", func(r *services.OrderRequest) { r.LastName = "" }},
		{"empty email", func(r *services.OrderRequest) { r.Email = "" }},
		{"malformed email", func(r *services.OrderRequest) { r.Email = "not-an-email" }},
		{"missing product", func(r *services.OrderRequest) { r.ProductID = "" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			service, orderRepo, productRepo, checkout, notifier := newOrderServiceWithMocks()

			req := validOrderRequest()
			tc.mut(&req)

			result, err := service.CreateOrder(req)

			assert.Nil(t, result)
			var verr *services.ValidationError
			assert.ErrorAs(t, err, &verr)
			// Validation must fail before any persistence or network call.
			orderRepo.AssertNotCalled(t, "Create", mock.Anything)
			productRepo.AssertNotCalled(t, "GetByID", mock.Anything)
			checkout.AssertNotCalled(t, "CreateCheckout", mock.Anything)
			notifier.AssertNotCalled(t, "NotifyOrderCreated", mock.Anything)
		})
	}
}

func TestOrderService_CreateOrder_ProductNotFound(t *testing.T) {
	service, orderRepo, productRepo, checkout, _ := newOrderServiceWithMocks()

	productRepo.On("GetByID", "prod-1").
		Return(nil, fmt.Errorf("product prod-1: %w", repositories.ErrNotFound)).Once()

	result, err := service.CreateOrder(validOrderRequest())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
	checkout.AssertNotCalled(t, "CreateCheckout", mock.Anything)
}

func TestOrderService_CreateOrder_PersistFailure(t *testing.T) {
	service, orderRepo, productRepo, checkout, notifier := newOrderServiceWithMocks()

	productRepo.On("GetByID", "prod-1").Return(&models.Product{ID: "prod-1", Name: "Novel", Price: 19.99}, nil).Once()
	orderRepo.On("Create", mock.Anything).Return(fmt.Errorf("database error")).Once()

	result, err := service.CreateOrder(validOrderRequest())

	assert.Nil(t, result)
	assert.Error(t, err)
	// No checkout is initiated for a non-persisted order.
	checkout.AssertNotCalled(t, "CreateCheckout", mock.Anything)
	notifier.AssertNotCalled(t, "NotifyOrderCreated", mock.Anything)
}

func TestOrderService_CreateOrder_CheckoutFailure(t *testing.T) {
	service, orderRepo, productRepo, checkout, notifier := newOrderServiceWithMocks()

	productRepo.On("GetByID", "prod-1").Return(&models.Product{ID: "prod-1", Name: "Novel", Price: 19.99}, nil).Once()
	orderRepo.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Order).ID = "order-1"
	}).Return(nil).Once()
	checkout.On("CreateCheckout", mock.Anything).Return("", fmt.Errorf("provider unreachable")).Once()

	result, err := service.CreateOrder(validOrderRequest())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, services.ErrCheckoutInit)
	// The order stays persisted and pending; only the later steps are skipped.
	orderRepo.AssertExpectations(t)
	notifier.AssertNotCalled(t, "NotifyOrderCreated", mock.Anything)
}

func TestOrderService_CreateOrder_NotificationFailureDoesNotFailWorkflow(t *testing.T) {
	service, orderRepo, productRepo, checkout, notifier := newOrderServiceWithMocks()

	productRepo.On("GetByID", "prod-1").Return(&models.Product{ID: "prod-1", Name: "Novel", Price: 19.99}, nil).Once()
	orderRepo.On("Create", mock.Anything).Return(nil).Once()
	checkout.On("CreateCheckout", mock.Anything).Return("https://pay.example/x", nil).Once()
	notifier.On("NotifyOrderCreated", mock.Anything).Return(fmt.Errorf("relay outage")).Once()

	result, err := service.CreateOrder(validOrderRequest())

	assert.NoError(t, err)
	assert.Equal(t, "https://pay.example/x", result.CheckoutURL)
	notifier.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	service, orderRepo, _, _, notifier := newOrderServiceWithMocks()

	order := &models.Order{ID: "order-1", Email: "jane@x.com", Status: models.StatusPending}
	orderRepo.On("GetByID", "order-1").Return(order, nil).Once()
	orderRepo.On("UpdateStatus", "order-1", models.StatusConfirmed).Return(nil).Once()
	notifier.On("NotifyStatusChanged", mock.Anything, models.StatusConfirmed).Return(nil).Once()

	updated, err := service.UpdateOrderStatus("order-1", models.StatusConfirmed)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	orderRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus_Idempotent(t *testing.T) {
	service, orderRepo, _, _, notifier := newOrderServiceWithMocks()

	order := &models.Order{ID: "order-1", Status: models.StatusConfirmed}
	orderRepo.On("GetByID", "order-1").Return(order, nil).Twice()
	orderRepo.On("UpdateStatus", "order-1", models.StatusConfirmed).Return(nil).Twice()
	notifier.On("NotifyStatusChanged", mock.Anything, models.StatusConfirmed).Return(nil).Twice()

	first, err := service.UpdateOrderStatus("order-1", models.StatusConfirmed)
	assert.NoError(t, err)
	second, err := service.UpdateOrderStatus("order-1", models.StatusConfirmed)
	assert.NoError(t, err)

	// Re-applying the same status is a no-op success, not an error.
	assert.Equal(t, first.Status, second.Status)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus_InvalidStatus(t *testing.T) {
	service, orderRepo, _, _, notifier := newOrderServiceWithMocks()

	for _, status := range []models.OrderStatus{"cancelled", "shipped", "", "PENDING"} {
		_, err := service.UpdateOrderStatus("order-1", status)
		assert.ErrorIs(t, err, services.ErrInvalidStatus)
	}
	orderRepo.AssertNotCalled(t, "GetByID", mock.Anything)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateOrderStatus_NotFound(t *testing.T) {
	service, orderRepo, _, _, _ := newOrderServiceWithMocks()

	orderRepo.On("GetByID", "missing").
		Return(nil, fmt.Errorf("order missing: %w", repositories.ErrNotFound)).Once()

	_, err := service.UpdateOrderStatus("missing", models.StatusConfirmed)

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestOrderService_BulkUpdateStatus_PartialFailure(t *testing.T) {
	service, orderRepo, _, _, notifier := newOrderServiceWithMocks()

	for _, id := range []string{"A", "C"} {
		orderRepo.On("GetByID", id).Return(&models.Order{ID: id, Status: models.StatusPending}, nil).Once()
		orderRepo.On("UpdateStatus", id, models.StatusCompleted).Return(nil).Once()
	}
	orderRepo.On("GetByID", "B").Return(&models.Order{ID: "B", Status: models.StatusPending}, nil).Once()
	orderRepo.On("UpdateStatus", "B", models.StatusCompleted).Return(fmt.Errorf("write failed")).Once()
	notifier.On("NotifyStatusChanged", mock.Anything, models.StatusCompleted).Return(nil)

	result, err := service.BulkUpdateStatus([]string{"A", "B", "C"}, models.StatusCompleted)

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "C"}, result.Succeeded)
	assert.ElementsMatch(t, []string{"B"}, result.Failed)
	orderRepo.AssertExpectations(t)
	// Only the two successful orders get a notification.
	notifier.AssertNumberOfCalls(t, "NotifyStatusChanged", 2)
}

func TestOrderService_BulkUpdateStatus_InvalidStatus(t *testing.T) {
	service, orderRepo, _, _, _ := newOrderServiceWithMocks()

	result, err := service.BulkUpdateStatus([]string{"A", "B"}, "cancelled")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, services.ErrInvalidStatus)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	service, orderRepo, _, _, notifier := newOrderServiceWithMocks()

	orderRepo.On("Delete", "order-1").Return(nil).Once()

	err := service.DeleteOrder("order-1")

	assert.NoError(t, err)
	// Direct deletion bypasses the lifecycle: no notification fires.
	notifier.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
}
