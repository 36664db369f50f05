package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-ferre-inventory/internal/service"
	"go-ferre-inventory/internal/session"
)

const sessionKey = "session"

// RequireSession validates the bearer token and puts the live session in
// the request locals. Browsers cannot set headers on a WebSocket handshake,
// so a "token" query parameter is accepted as well.
func RequireSession(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Query("token")
		if authHeader := c.Get("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
			}
			tokenString = parts[1]
		}
		if tokenString == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		sess, err := auth.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired session"})
		}

		c.Locals(sessionKey, sess)
		c.Locals("session_id", sess.ID)
		c.Locals("username", sess.Username)
		return c.Next()
	}
}

// Session returns the session set by RequireSession, or nil.
func Session(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionKey).(*session.Session)
	return sess
}
