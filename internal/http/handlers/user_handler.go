package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
)

type UserHandler struct {
	Users *services.UserService
}

type roleInput struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	us, err := h.Users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(us)
}

func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "User")
	}
	var in roleInput
	if err := bind(c, &in); err != nil {
		return err
	}
	u, err := h.Users.UpdateRole(c.UserContext(), id, in.Role)
	if err != nil {
		return storeError(c, "User", err)
	}
	applog.Audit(c, "user.role", map[string]any{"user_id": id, "role": in.Role})
	return c.JSON(u)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "User")
	}
	if err := h.Users.Delete(c.UserContext(), id); err != nil {
		return storeError(c, "User", err)
	}
	applog.Audit(c, "user.delete", map[string]any{"user_id": id})
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
