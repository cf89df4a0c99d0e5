package handlers

import (
	"errors"
	"log"

	"connectzen/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WebhookHandler receives inbound payment-provider webhooks.
type WebhookHandler struct {
	service *services.PaymentService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(service *services.PaymentService) *WebhookHandler {
	return &WebhookHandler{
		service: service,
	}
}

// RegisterRoutes registers the webhook routes.
func (h *WebhookHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/webhooks/intasend", h.HandleIntaSendWebhook)
}

// HandleIntaSendWebhook records a payment event in the ledger. Completed
// payments also confirm the referenced order; that join never fails the
// webhook response.
func (h *WebhookHandler) HandleIntaSendWebhook(c *fiber.Ctx) error {
	var event services.WebhookEvent
	if err := c.BodyParser(&event); err != nil {
		log.Printf("Undecodable payment webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid webhook payload",
		})
	}

	if err := h.service.HandleEvent(event); err != nil {
		log.Printf("Payment webhook error (%s): %v", event.Event, err)
		if errors.Is(err, services.ErrBadWebhook) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Webhook processing failed",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
