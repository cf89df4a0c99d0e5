package services

import (
	"errors"
	"fmt"
	"html"

	"connectzen/internal/models"
	"connectzen/pkg/mailer"
)

// NotificationService formats and sends order lifecycle emails. Order
// creation produces an admin copy and a customer copy; a status change
// produces a customer copy only. Delivery is a single attempt per message.
type NotificationService struct {
	sender     mailer.Sender
	storeName  string
	adminEmail string
	appURL     string
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(sender mailer.Sender, storeName, adminEmail, appURL string) *NotificationService {
	return &NotificationService{
		sender:     sender,
		storeName:  storeName,
		adminEmail: adminEmail,
		appURL:     appURL,
	}
}

// NotifyOrderCreated emails the administrator and the customer about a new
// order. Both sends are attempted even if the first fails; the combined
// error is returned for the caller to log.
func (s *NotificationService) NotifyOrderCreated(order *models.Order) error {
	adminErr := s.sender.Send(
		s.adminEmail,
		fmt.Sprintf("New Order Notification: %s", order.ID),
		s.renderAdminOrderCreated(order),
	)
	customerErr := s.sender.Send(
		order.Email,
		fmt.Sprintf("Order Confirmation: %s", order.ID),
		s.renderCustomerOrderCreated(order),
	)
	return errors.Join(adminErr, customerErr)
}

// NotifyStatusChanged emails the customer a status-specific explanation.
func (s *NotificationService) NotifyStatusChanged(order *models.Order, status models.OrderStatus) error {
	return s.sender.Send(
		order.Email,
		fmt.Sprintf("Order Status Update: %s", order.ID),
		s.renderStatusChanged(order, status),
	)
}

// statusMessage maps each canonical status to its customer-facing sentence.
// Unrecognized statuses get a generic fallback.
func statusMessage(status models.OrderStatus) string {
	switch status {
	case models.StatusConfirmed:
		return "Your order has been approved and confirmed"
	case models.StatusDeclined:
		return "Your order has been declined"
	case models.StatusCompleted:
		return "Your order has been completed"
	case models.StatusPending:
		return "Your order is now pending review"
	default:
		return fmt.Sprintf("Your order status has been updated to %s", status)
	}
}

func (s *NotificationService) orderDetailsBlock(order *models.Order) string {
	return fmt.Sprintf(`<h2>Order Details</h2>
<p><strong>Order ID:</strong> %s</p>
<p><strong>Product:</strong> %s</p>
<p><strong>Amount:</strong> $%.2f</p>
<p><strong>Status:</strong> %s</p>`,
		html.EscapeString(order.ID),
		html.EscapeString(order.ProductName),
		order.Amount,
		html.EscapeString(string(order.Status)))
}

func (s *NotificationService) customerBlock(order *models.Order, heading string) string {
	phone := order.PhoneNumber
	if phone == "" {
		phone = "Not provided"
	}
	return fmt.Sprintf(`<h2>%s</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>`,
		heading,
		html.EscapeString(order.CustomerName()),
		html.EscapeString(order.Email),
		html.EscapeString(phone))
}

func (s *NotificationService) renderAdminOrderCreated(order *models.Order) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h1>New Order Notification</h1>
%s
%s
<p><a href="%s/admin/sales">View Order Details</a></p>
</div>`,
		s.orderDetailsBlock(order),
		s.customerBlock(order, "Customer Information"),
		s.appURL)
}

func (s *NotificationService) renderCustomerOrderCreated(order *models.Order) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h1>Thank You for Your Order!</h1>
%s
%s
<h2>What's Next?</h2>
<p>1. Your order has been received and is being processed</p>
<p>2. You'll receive updates about your order status via email</p>
<p>3. If you have any questions, please contact us at %s</p>
<p>Thank you for shopping with us!</p>
<p>%s Team</p>
</div>`,
		s.orderDetailsBlock(order),
		s.customerBlock(order, "Your Information"),
		html.EscapeString(s.adminEmail),
		html.EscapeString(s.storeName))
}

func (s *NotificationService) renderStatusChanged(order *models.Order, status models.OrderStatus) string {
	var nextSteps string
	switch status {
	case models.StatusConfirmed:
		nextSteps = `<p>1. Your order has been approved and will be processed</p>
<p>2. You'll receive another email when your order is completed</p>`
	case models.StatusCompleted:
		nextSteps = `<p>1. Your order has been completed</p>
<p>2. Thank you for shopping with us!</p>`
	case models.StatusDeclined:
		nextSteps = `<p>1. Your order has been declined</p>
<p>2. If you have any questions, please contact us</p>`
	default:
		nextSteps = `<p>1. We'll keep you updated on any changes to your order</p>`
	}

	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h1>Order Status Update</h1>
<h2>%s</h2>
%s
%s
<h2>What's Next?</h2>
%s
<p>If you have any questions, please contact us at %s</p>
<p>Thank you for choosing %s!</p>
</div>`,
		html.EscapeString(statusMessage(status)),
		s.orderDetailsBlock(order),
		s.customerBlock(order, "Your Information"),
		nextSteps,
		html.EscapeString(s.adminEmail),
		html.EscapeString(s.storeName))
}
