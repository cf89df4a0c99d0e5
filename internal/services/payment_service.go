package services

import (
	"fmt"
	"log"
	"strconv"

	"connectzen/internal/models"
	"connectzen/internal/repositories"
)

// PaymentService records inbound payment-provider webhook events in the
// payment ledger and joins completed payments back to their order via the
// checkout reference, auto-confirming it.
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	orders      *OrderService
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repositories.PaymentRepository, orders *OrderService) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orders:      orders,
	}
}

// WebhookEvent is the provider's webhook envelope.
type WebhookEvent struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

// WebhookData carries the payment details of a webhook event.
type WebhookData struct {
	Invoice       *WebhookInvoice  `json:"invoice"`
	Customer      *WebhookCustomer `json:"customer"`
	PaymentMethod string           `json:"payment_method"`
	ErrorMessage  string           `json:"error_message"`
	FailureReason string           `json:"failure_reason"`
}

// WebhookInvoice identifies the provider-side invoice. The amount arrives
// as a string on the wire.
type WebhookInvoice struct {
	InvoiceID string `json:"invoice_id"`
	Reference string `json:"reference"`
	Amount    string `json:"amount"`
}

// WebhookCustomer carries the buyer details echoed by the provider.
type WebhookCustomer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// HandleEvent records one webhook delivery as a ledger entry. Completed
// payments whose reference resolves to an order transition that order to
// confirmed; a failed join is logged but never fails the webhook, so the
// ledger entry always lands. Unknown event types are logged and accepted.
func (s *PaymentService) HandleEvent(event WebhookEvent) error {
	switch event.Event {
	case "payment.completed", "payment.complete":
		if err := s.record(event.Data, "completed"); err != nil {
			return err
		}
		s.confirmOrder(event.Data)
		return nil
	case "payment.failed":
		return s.record(event.Data, "failed")
	case "payment.pending":
		return s.record(event.Data, "pending")
	default:
		log.Printf("Unhandled payment event type: %s", event.Event)
		return nil
	}
}

// record decodes the payload strictly and appends a ledger entry. A
// missing invoice id is rejected rather than defaulted away.
func (s *PaymentService) record(data WebhookData, status string) error {
	if data.Invoice == nil || data.Invoice.InvoiceID == "" {
		return fmt.Errorf("%w: missing invoice id", ErrBadWebhook)
	}

	amount, err := strconv.ParseFloat(data.Invoice.Amount, 64)
	if err != nil && data.Invoice.Amount != "" {
		return fmt.Errorf("%w: bad invoice amount %q", ErrBadWebhook, data.Invoice.Amount)
	}

	entry := &models.PaymentEvent{
		InvoiceID: data.Invoice.InvoiceID,
		Reference: data.Invoice.Reference,
		Amount:    amount,
		Status:    status,
	}
	if data.Customer != nil {
		entry.CustomerEmail = data.Customer.Email
		entry.CustomerName = data.Customer.FirstName + " " + data.Customer.LastName
	}
	if status == "failed" {
		entry.FailureReason = data.FailureReason
		if entry.FailureReason == "" {
			entry.FailureReason = data.ErrorMessage
		}
	} else {
		entry.PaymentMethod = data.PaymentMethod
	}

	if err := s.paymentRepo.Create(entry); err != nil {
		return fmt.Errorf("failed to record %s payment: %w", status, err)
	}
	return nil
}

// confirmOrder joins a completed payment back to its order. The checkout
// reference is the order id.
func (s *PaymentService) confirmOrder(data WebhookData) {
	reference := ""
	if data.Invoice != nil {
		reference = data.Invoice.Reference
	}
	if reference == "" {
		log.Printf("Completed payment has no reference; skipping order confirmation")
		return
	}
	if _, err := s.orders.UpdateOrderStatus(reference, models.StatusConfirmed); err != nil {
		log.Printf("Warning: could not confirm order %s from payment webhook: %v", reference, err)
	}
}
