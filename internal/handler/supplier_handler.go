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

const deleteSupplierMessage = "¿Eliminar proveedor?"

type SupplierHandler struct {
	service   service.SupplierService
	confirmer *Confirmer
	responder
}

func NewSupplierHandler(s service.SupplierService, confirmer *Confirmer, l *zap.Logger) *SupplierHandler {
	return &SupplierHandler{service: s, confirmer: confirmer, responder: newResponder(l)}
}

func (h *SupplierHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.ListSuppliers(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(suppliers)
}

func (h *SupplierHandler) GetSupplier(c *fiber.Ctx) error {
	supplier, err := h.service.GetSupplier(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) NewSupplierForm(c *fiber.Ctx) error {
	if err := middleware.Session(c).Machine.NewSupplier(c.UserContext()); err != nil {
		return h.fail(c, err)
	}
	return stateResponse(c)
}

func (h *SupplierHandler) EditSupplierForm(c *fiber.Ctx) error {
	supplier, err := h.service.GetSupplier(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	sess := middleware.Session(c)
	if err := sess.Machine.EditSupplier(c.UserContext(), supplier.ID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"state": sess.Machine.State(), "data": supplier})
}

func (h *SupplierHandler) SaveSupplierForm(c *fiber.Ctx) error {
	var draft model.SupplierDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	ctx := c.UserContext()
	sess := middleware.Session(c)
	if err := sess.Machine.Expect(view.ScreenSupplierForm); err != nil {
		return h.fail(c, err)
	}
	state := sess.Machine.State()

	var (
		supplier *model.Supplier
		err      error
		status   = 201
	)
	if id, ok := state.EditingSupplier.ID(); ok {
		supplier, err = h.service.UpdateSupplier(ctx, id, draft)
		status = 200
	} else {
		supplier, err = h.service.CreateSupplier(ctx, draft)
	}
	if err != nil {
		return h.fail(c, err)
	}

	if err := sess.Machine.SupplierSaved(ctx); err != nil {
		return h.fail(c, err)
	}
	return c.Status(status).JSON(fiber.Map{"message": "Supplier saved", "data": supplier, "state": sess.Machine.State()})
}

func (h *SupplierHandler) DeleteSupplier(c *fiber.Ctx) error {
	supplier, err := h.service.GetSupplier(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	sess := middleware.Session(c)
	return h.confirmer.Ask(c, h.responder, sess, view.ScreenSupplierList, deleteSupplierMessage, func(ctx context.Context) error {
		if err := sess.Machine.Expect(view.ScreenSupplierList); err != nil {
			return err
		}
		if _, err := h.service.DeleteSupplier(ctx, supplier.ID); err != nil {
			return err
		}
		return sess.Machine.Refresh(ctx)
	})
}
