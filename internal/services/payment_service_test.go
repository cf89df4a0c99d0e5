package services_test

import (
	"testing"

	"connectzen/internal/models"
	"connectzen/internal/repositories"
	"connectzen/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPaymentServiceFixture() (*services.PaymentService, *repositories.MockPaymentRepository, *repositories.MockOrderRepository, *MockOrderNotifier) {
	paymentRepo := repositories.NewMockPaymentRepository()
	orderRepo := repositories.NewMockOrderRepository()
	notifier := new(MockOrderNotifier)
	orders := services.NewOrderService(orderRepo, repositories.NewMockProductRepository(), new(MockCheckoutProvider), notifier, nil)
	return services.NewPaymentService(paymentRepo, orders), paymentRepo, orderRepo, notifier
}

func completedEvent(invoiceID, reference string) services.WebhookEvent {
	return services.WebhookEvent{
		Event: "payment.completed",
		Data: services.WebhookData{
			Invoice: &services.WebhookInvoice{
				InvoiceID: invoiceID,
				Reference: reference,
				Amount:    "19.99",
			},
			Customer: &services.WebhookCustomer{
				Email:     "jane@x.com",
				FirstName: "Jane",
				LastName:  "Doe",
			},
			PaymentMethod: "CARD-PAYMENT",
		},
	}
}

func TestPaymentService_CompletedEventConfirmsOrder(t *testing.T) {
	service, paymentRepo, orderRepo, notifier := newPaymentServiceFixture()

	order := &models.Order{ID: "order-1", Email: "jane@x.com", Status: models.StatusPending}
	assert.NoError(t, orderRepo.Create(order))
	notifier.On("NotifyStatusChanged", mock.Anything, models.StatusConfirmed).Return(nil).Once()

	err := service.HandleEvent(completedEvent("inv-1", "order-1"))

	assert.NoError(t, err)

	entries, _ := paymentRepo.GetAll()
	assert.Len(t, entries, 1)
	assert.Equal(t, "inv-1", entries[0].InvoiceID)
	assert.Equal(t, "order-1", entries[0].Reference)
	assert.Equal(t, 19.99, entries[0].Amount)
	assert.Equal(t, "completed", entries[0].Status)
	assert.Equal(t, "Jane Doe", entries[0].CustomerName)

	updated, _ := orderRepo.GetByID("order-1")
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	notifier.AssertExpectations(t)
}

func TestPaymentService_CompletedEventWithUnknownReference(t *testing.T) {
	service, paymentRepo, _, _ := newPaymentServiceFixture()

	// No matching order exists; the ledger entry must still land.
	err := service.HandleEvent(completedEvent("inv-2", "no-such-order"))

	assert.NoError(t, err)
	entries, _ := paymentRepo.GetAll()
	assert.Len(t, entries, 1)
}

func TestPaymentService_FailedEvent(t *testing.T) {
	service, paymentRepo, orderRepo, notifier := newPaymentServiceFixture()

	order := &models.Order{ID: "order-1", Status: models.StatusPending}
	assert.NoError(t, orderRepo.Create(order))

	err := service.HandleEvent(services.WebhookEvent{
		Event: "payment.failed",
		Data: services.WebhookData{
			Invoice:       &services.WebhookInvoice{InvoiceID: "inv-3", Reference: "order-1", Amount: "19.99"},
			FailureReason: "insufficient funds",
		},
	})

	assert.NoError(t, err)
	entries, _ := paymentRepo.GetAll()
	assert.Len(t, entries, 1)
	assert.Equal(t, "failed", entries[0].Status)
	assert.Equal(t, "insufficient funds", entries[0].FailureReason)

	// A failed payment never touches the order.
	unchanged, _ := orderRepo.GetByID("order-1")
	assert.Equal(t, models.StatusPending, unchanged.Status)
	notifier.AssertNotCalled(t, "NotifyStatusChanged", mock.Anything, mock.Anything)
}

func TestPaymentService_PendingEvent(t *testing.T) {
	service, paymentRepo, _, _ := newPaymentServiceFixture()

	err := service.HandleEvent(services.WebhookEvent{
		Event: "payment.pending",
		Data: services.WebhookData{
			Invoice:       &services.WebhookInvoice{InvoiceID: "inv-4", Amount: "5.00"},
			PaymentMethod: "M-PESA",
		},
	})

	assert.NoError(t, err)
	entries, _ := paymentRepo.GetAll()
	assert.Len(t, entries, 1)
	assert.Equal(t, "pending", entries[0].Status)
	assert.Equal(t, "M-PESA", entries[0].PaymentMethod)
}

func TestPaymentService_MissingInvoiceID(t *testing.T) {
	service, paymentRepo, _, _ := newPaymentServiceFixture()

	err := service.HandleEvent(services.WebhookEvent{
		Event: "payment.completed",
		Data:  services.WebhookData{Invoice: &services.WebhookInvoice{Amount: "19.99"}},
	})

	assert.ErrorIs(t, err, services.ErrBadWebhook)
	entries, _ := paymentRepo.GetAll()
	assert.Empty(t, entries)
}

func TestPaymentService_UnknownEventType(t *testing.T) {
	service, paymentRepo, _, _ := newPaymentServiceFixture()

	err := service.HandleEvent(services.WebhookEvent{Event: "subscription.renewed"})

	// Unknown types are acknowledged without a ledger entry.
	assert.NoError(t, err)
	entries, _ := paymentRepo.GetAll()
	assert.Empty(t, entries)
}
