package handler

import (
	"go-galon-gas/internal/apperr"
	"go-galon-gas/internal/model"
	"go-galon-gas/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// CreateOrder is the public checkout submission. Internal failures must not
// leak store details to anonymous callers, so only validation messages pass
// through verbatim.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var order model.Order
	if err := c.BodyParser(&order); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateOrder(c.Context(), &order); err != nil {
		if apperr.IsValidation(err) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create order"})
	}

	return c.Status(201).JSON(fiber.Map{"order": order})
}

func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		orders, err := h.service.GetOrdersByStatus(c.Context(), model.OrderStatus(status))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"orders": orders})
	}

	orders, err := h.service.GetAllOrders(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// GetReport serves the aggregated sales report. Registered before the
// /orders/:id route so "report" is never eaten as an order id.
func (h *OrderHandler) GetReport(c *fiber.Ctx) error {
	report, err := h.service.GetReport(c.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		if apperr.IsValidation(err) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

func (h *OrderHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.service.GetSalesStatistics(c.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		if apperr.IsValidation(err) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if order == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Order not found"})
	}
	return c.JSON(fiber.Map{"order": order})
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		if apperr.IsValidation(err) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if order == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Order not found"})
	}

	return c.JSON(fiber.Map{"order": order})
}

// UpdateOrder lets the admin edit notes or attach a payment proof after
// creation. Customer fields and line items stay immutable.
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	var update model.OrderUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.UpdateOrder(c.Context(), c.Params("id"), &update)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if order == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Order not found"})
	}

	return c.JSON(fiber.Map{"order": order})
}

func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	if ok := h.service.DeleteOrder(c.Context(), c.Params("id")); !ok {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete order"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Order deleted successfully"})
}
