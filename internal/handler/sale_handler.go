package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-ferre-inventory/internal/middleware"
	"go-ferre-inventory/internal/model"
	"go-ferre-inventory/internal/service"
	"go-ferre-inventory/internal/view"
)

type SaleHandler struct {
	service service.SaleService
	responder
}

func NewSaleHandler(s service.SaleService, l *zap.Logger) *SaleHandler {
	return &SaleHandler{service: s, responder: newResponder(l)}
}

// SaleRequest is the sale-entry form.
type SaleRequest struct {
	Code     model.FormValue `json:"code"`
	Quantity model.FormValue `json:"quantity"`
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.ListSales(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sales)
}

// RecordSale sells units of a product by code from the sales screen
// POST /api/v1/sales
func (h *SaleHandler) RecordSale(c *fiber.Ctx) error {
	var req SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sess := middleware.Session(c)
	if err := sess.Machine.Expect(view.ScreenSalesList); err != nil {
		return h.fail(c, err)
	}

	sale, err := h.service.RecordSale(c.UserContext(), req.Code.Text(), req.Quantity.Int())
	if err != nil {
		return h.fail(c, err)
	}

	if err := sess.Machine.Refresh(c.UserContext()); err != nil {
		return h.fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}
