package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-ferre-inventory/internal/middleware"
	"go-ferre-inventory/internal/view"
)

type ViewHandler struct {
	responder
}

func NewViewHandler(l *zap.Logger) *ViewHandler {
	return &ViewHandler{responder: newResponder(l)}
}

type OpenRequest struct {
	Screen string `json:"screen"`
}

func stateResponse(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	resp := fiber.Map{"state": sess.Machine.State()}
	if pending, ok := sess.Gate.Current(); ok {
		resp["confirmation"] = pending
	}
	return c.JSON(resp)
}

// GetState returns the current screen and any open confirmation
// GET /api/v1/view
func (h *ViewHandler) GetState(c *fiber.Ctx) error {
	return stateResponse(c)
}

// Open shows a list screen from the dashboard menu
// POST /api/v1/view/open
func (h *ViewHandler) Open(c *fiber.Ctx) error {
	var req OpenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	screen, ok := view.ParseScreen(req.Screen)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown screen: " + req.Screen})
	}

	if err := middleware.Session(c).Machine.Open(c.UserContext(), screen); err != nil {
		return h.fail(c, err)
	}
	return stateResponse(c)
}

// Back leaves the current form or list
// POST /api/v1/view/back
func (h *ViewHandler) Back(c *fiber.Ctx) error {
	if err := middleware.Session(c).Machine.Back(c.UserContext()); err != nil {
		return h.fail(c, err)
	}
	return stateResponse(c)
}
