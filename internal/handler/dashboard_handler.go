package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-ferre-inventory/internal/service"
)

type DashboardHandler struct {
	service service.DashboardService
	responder
}

func NewDashboardHandler(s service.DashboardService, l *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: s, responder: newResponder(l)}
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stats)
}

// GetLowStock returns the products at or below their minimum stock
func (h *DashboardHandler) GetLowStock(c *fiber.Ctx) error {
	products, err := h.service.GetLowStock(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"count": len(products), "data": products})
}
