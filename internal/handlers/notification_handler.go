package handlers

import (
	"log"

	"connectzen/internal/models"
	"connectzen/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler exposes the order notification endpoint used to
// re-send a creation notification for an existing order.
type NotificationHandler struct {
	service *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

// RegisterRoutes registers the notification routes.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/notifications/order", h.HandleOrderNotification)
}

// HandleOrderNotification sends the order-created emails for the order in
// the request body. Unlike workflow-triggered notifications, a delivery
// failure here is reported to the caller.
func (h *NotificationHandler) HandleOrderNotification(c *fiber.Ctx) error {
	var body struct {
		Order *models.Order `json:"order"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if body.Order == nil || body.Order.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Order data is required",
		})
	}

	if err := h.service.NotifyOrderCreated(body.Order); err != nil {
		log.Printf("Failed to send order notification for order %s: %v", body.Order.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to send email notification",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
