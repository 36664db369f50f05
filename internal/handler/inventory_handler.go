package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-ferre-inventory/internal/middleware"
	"go-ferre-inventory/internal/model"
	"go-ferre-inventory/internal/service"
	"go-ferre-inventory/internal/view"
)

const deleteProductMessage = "¿Eliminar este producto?"

type InventoryHandler struct {
	service   service.CatalogService
	confirmer *Confirmer
	responder
}

func NewInventoryHandler(s service.CatalogService, confirmer *Confirmer, l *zap.Logger) *InventoryHandler {
	return &InventoryHandler{service: s, confirmer: confirmer, responder: newResponder(l)}
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(product)
}

// GetProductByCode looks a product up by its code
// GET /api/v1/products/code/:code
func (h *InventoryHandler) GetProductByCode(c *fiber.Ctx) error {
	product, err := h.service.FindByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(product)
}

// NewProductForm opens an empty product form
// POST /api/v1/products/form/new
func (h *InventoryHandler) NewProductForm(c *fiber.Ctx) error {
	if err := middleware.Session(c).Machine.NewProduct(c.UserContext()); err != nil {
		return h.fail(c, err)
	}
	return stateResponse(c)
}

// EditProductForm opens the form on an existing product
// POST /api/v1/products/:id/edit
func (h *InventoryHandler) EditProductForm(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	sess := middleware.Session(c)
	if err := sess.Machine.EditProduct(c.UserContext(), product.ID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"state": sess.Machine.State(), "data": product})
}

// SaveProductForm creates or updates the product the form is editing
// POST /api/v1/products/form/save
func (h *InventoryHandler) SaveProductForm(c *fiber.Ctx) error {
	var draft model.ProductDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	ctx := c.UserContext()
	sess := middleware.Session(c)
	if err := sess.Machine.Expect(view.ScreenProductForm); err != nil {
		return h.fail(c, err)
	}
	state := sess.Machine.State()

	var (
		product *model.Product
		err     error
		status  = 201
	)
	if id, ok := state.EditingProduct.ID(); ok {
		product, err = h.service.UpdateProduct(ctx, id, draft)
		status = 200
	} else {
		product, err = h.service.CreateProduct(ctx, draft)
	}
	if err != nil {
		return h.fail(c, err)
	}

	if err := sess.Machine.ProductSaved(ctx); err != nil {
		return h.fail(c, err)
	}
	return c.Status(status).JSON(fiber.Map{"message": "Product saved", "data": product, "state": sess.Machine.State()})
}

// DeleteProduct asks for confirmation, then removes the product
// DELETE /api/v1/products/:id
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	sess := middleware.Session(c)
	return h.confirmer.Ask(c, h.responder, sess, view.ScreenInventoryList, deleteProductMessage, func(ctx context.Context) error {
		if err := sess.Machine.Expect(view.ScreenInventoryList); err != nil {
			return err
		}
		if _, err := h.service.DeleteProduct(ctx, product.ID); err != nil {
			return err
		}
		return sess.Machine.Refresh(ctx)
	})
}
