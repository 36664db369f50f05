package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-ferre-inventory/internal/confirm"
	"go-ferre-inventory/internal/service"
	"go-ferre-inventory/internal/view"
	"go-ferre-inventory/pkg/logger"
)

// responder turns service errors into JSON error responses.
type responder struct {
	logger *zap.Logger
}

func newResponder(l *zap.Logger) responder {
	return responder{logger: logger.OrNop(l)}
}

func (r responder) fail(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.Status(400).JSON(fiber.Map{"error": err.Error(), "field": verr.Field})
	}
	var serr *service.InsufficientStockError
	if errors.As(err, &serr) {
		return c.Status(409).JSON(fiber.Map{
			"error":     err.Error(),
			"code":      serr.Code,
			"available": serr.Available,
			"requested": serr.Requested,
		})
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, confirm.ErrUnknownRequest):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateCode),
		errors.Is(err, confirm.ErrPending),
		errors.Is(err, view.ErrInvalidTransition):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, view.ErrNotLoggedIn):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	r.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}
