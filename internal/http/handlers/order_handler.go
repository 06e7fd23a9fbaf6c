package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// orderItemInput accepts the cart line shape ({id, name, quantity, price})
// as well as explicit product_id / product_name keys.
type orderItemInput struct {
	ID          int64               `json:"id"`
	ProductID   int64               `json:"product_id"`
	Name        string              `json:"name"`
	ProductName string              `json:"product_name"`
	Quantity    int                 `json:"quantity" validate:"gte=1"`
	Price       decimal.NullDecimal `json:"price" validate:"omitempty,gte=0"`
}

type orderInput struct {
	UserID        int64               `json:"user_id" validate:"required,gt=0"`
	Items         []orderItemInput    `json:"items" validate:"dive"`
	TotalAmount   decimal.NullDecimal `json:"total_amount" validate:"omitempty,gte=0"`
	Status        string              `json:"status" validate:"omitempty,oneof=ordered shipped delivered cancelled"`
	DeliveryInfo  domain.DeliveryInfo `json:"delivery_info"`
	PaymentMethod string              `json:"payment_method" validate:"max=50"`
}

type statusInput struct {
	Status string `json:"status" validate:"required,oneof=ordered shipped delivered cancelled"`
}

func (in orderInput) order() services.NewOrder {
	o := services.NewOrder{
		UserID:        in.UserID,
		TotalAmount:   in.TotalAmount,
		Status:        in.Status,
		DeliveryInfo:  in.DeliveryInfo,
		PaymentMethod: in.PaymentMethod,
	}
	for _, it := range in.Items {
		pid, name := it.ProductID, it.ProductName
		if pid == 0 {
			pid = it.ID
		}
		if name == "" {
			name = it.Name
		}
		o.Items = append(o.Items, services.OrderItemInput{
			ProductID:   pid,
			ProductName: name,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return o
}

// List serves GET /api/orders[?user_id=N], newest first.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	uid, ok := validate.OptionalID(c.Query("user_id"))
	if !ok {
		return c.JSON([]domain.EnrichedOrder{})
	}
	orders, err := h.Orders.List(c.UserContext(), uid)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Order")
	}
	o, err := h.Orders.Get(c.UserContext(), id)
	if err != nil {
		return storeError(c, "Order", err)
	}
	return c.JSON(o)
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in orderInput
	if err := bind(c, &in); err != nil {
		return err
	}
	o, err := h.Orders.Create(c.UserContext(), in.order())
	if err != nil {
		return storeError(c, "Order", err)
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": o.ID,
		"user_id":  o.UserID,
		"total":    o.TotalAmount.String(),
		"items":    len(o.Items),
	})
	return c.JSON(fiber.Map{"id": o.ID, "message": "Order placed successfully"})
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Order")
	}
	var in statusInput
	if err := bind(c, &in); err != nil {
		return err
	}
	o, err := h.Orders.UpdateStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return storeError(c, "Order", err)
	}
	applog.Audit(c, "order.status", map[string]any{"order_id": id, "status": in.Status})
	return c.JSON(o)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Order")
	}
	if err := h.Orders.Delete(c.UserContext(), id); err != nil {
		return storeError(c, "Order", err)
	}
	applog.Audit(c, "order.delete", map[string]any{"order_id": id})
	return c.JSON(fiber.Map{"message": "Order deleted successfully"})
}
