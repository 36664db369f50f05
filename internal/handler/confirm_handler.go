package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-ferre-inventory/internal/middleware"
)

type ConfirmHandler struct {
	responder
}

func NewConfirmHandler(l *zap.Logger) *ConfirmHandler {
	return &ConfirmHandler{responder: newResponder(l)}
}

type AnswerRequest struct {
	OK bool `json:"ok"`
}

// Answer resolves the open confirmation of the session
// POST /api/v1/confirmations/:id
func (h *ConfirmHandler) Answer(c *fiber.Ctx) error {
	var req AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := middleware.Session(c).Gate.Resolve(c.Params("id"), req.OK); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"id": c.Params("id"), "ok": req.OK})
}

// Dismiss closes the open confirmation without a choice
// DELETE /api/v1/confirmations/:id
func (h *ConfirmHandler) Dismiss(c *fiber.Ctx) error {
	if err := middleware.Session(c).Gate.Dismiss(c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"id": c.Params("id"), "ok": false})
}
