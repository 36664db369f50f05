package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-ferre-inventory/internal/middleware"
	"go-ferre-inventory/internal/service"
	"go-ferre-inventory/internal/view"
)

const logoutMessage = "¿Desea cerrar sesión?"

type AuthHandler struct {
	authService service.AuthService
	confirmer   *Confirmer
	responder
}

func NewAuthHandler(authService service.AuthService, confirmer *Confirmer, l *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, confirmer: confirmer, responder: newResponder(l)}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
}

// Login opens a session for any non-empty username
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	response, err := h.authService.Login(c.UserContext(), req.Username)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(response)
}

// Logout asks for confirmation, then closes the session
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	return h.confirmer.Ask(c, h.responder, sess, view.ScreenDashboard, logoutMessage, func(ctx context.Context) error {
		return h.authService.Logout(ctx, sess)
	})
}
