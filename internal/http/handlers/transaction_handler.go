package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type TransactionHandler struct {
	Txs *services.TransactionService
}

type transactionInput struct {
	UserID    int64 `json:"user_id" validate:"required,gt=0"`
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"gte=1"`
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	uid, ok := validate.OptionalID(c.Query("user_id"))
	if !ok {
		return c.JSON([]domain.EnrichedTransaction{})
	}
	txs, err := h.Txs.List(c.UserContext(), uid)
	if err != nil {
		return err
	}
	return c.JSON(txs)
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in transactionInput
	if err := bind(c, &in); err != nil {
		return err
	}
	t, err := h.Txs.Create(c.UserContext(), in.UserID, in.ProductID, in.Quantity)
	if err != nil {
		return err
	}
	applog.Audit(c, "transaction.create", map[string]any{"id": t.ID, "user_id": t.UserID})
	return c.JSON(t)
}

func (h *TransactionHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Transaction")
	}
	var in statusInput
	if err := bind(c, &in); err != nil {
		return err
	}
	t, err := h.Txs.UpdateStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return storeError(c, "Transaction", err)
	}
	applog.Audit(c, "transaction.status", map[string]any{"id": id, "status": in.Status})
	return c.JSON(t)
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Transaction")
	}
	if err := h.Txs.Delete(c.UserContext(), id); err != nil {
		return storeError(c, "Transaction", err)
	}
	applog.Audit(c, "transaction.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"message": "Transaction deleted successfully"})
}
