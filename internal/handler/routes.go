package handler

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"go-ferre-inventory/internal/middleware"
	"go-ferre-inventory/internal/service"
	"go-ferre-inventory/internal/ws"
)

type Handlers struct {
	Auth      *AuthHandler
	View      *ViewHandler
	Inventory *InventoryHandler
	Supplier  *SupplierHandler
	Sale      *SaleHandler
	Dashboard *DashboardHandler
	Confirm   *ConfirmHandler
}

// SetupRoutes mounts the REST API under /api/v1 and the session WebSocket
// under /ws.
func SetupRoutes(app *fiber.App, h Handlers, authService service.AuthService, hub *ws.Hub) {
	api := app.Group("/api/v1")
	requireSession := middleware.RequireSession(authService)

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/logout", requireSession, h.Auth.Logout)

	// ============ SESSION ROUTES ============
	protected := api.Group("", requireSession)

	protected.Get("/view", h.View.GetState)
	protected.Post("/view/open", h.View.Open)
	protected.Post("/view/back", h.View.Back)

	protected.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)
	protected.Get("/dashboard/low-stock", h.Dashboard.GetLowStock)

	protected.Get("/products", h.Inventory.GetProducts)
	protected.Get("/products/code/:code", h.Inventory.GetProductByCode)
	protected.Post("/products/form/new", h.Inventory.NewProductForm)
	protected.Post("/products/form/save", h.Inventory.SaveProductForm)
	protected.Get("/products/:id", h.Inventory.GetProduct)
	protected.Post("/products/:id/edit", h.Inventory.EditProductForm)
	protected.Delete("/products/:id", h.Inventory.DeleteProduct)

	protected.Get("/suppliers", h.Supplier.GetSuppliers)
	protected.Post("/suppliers/form/new", h.Supplier.NewSupplierForm)
	protected.Post("/suppliers/form/save", h.Supplier.SaveSupplierForm)
	protected.Get("/suppliers/:id", h.Supplier.GetSupplier)
	protected.Post("/suppliers/:id/edit", h.Supplier.EditSupplierForm)
	protected.Delete("/suppliers/:id", h.Supplier.DeleteSupplier)

	protected.Get("/sales", h.Sale.GetSales)
	protected.Post("/sales", h.Sale.RecordSale)

	protected.Post("/confirmations/:id", h.Confirm.Answer)
	protected.Delete("/confirmations/:id", h.Confirm.Dismiss)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	}, requireSession)
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		sessionID, _ := c.Locals("session_id").(string)
		hub.Add(ws.Client{Conn: c, SessionID: sessionID})
		defer hub.Remove(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
