package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type signupInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in signupInput
	if err := bind(c, &in); err != nil {
		return err
	}
	u, err := h.Auth.Signup(c.UserContext(), in.Name, in.Email, in.Password, in.Role)
	if errors.Is(err, repos.ErrConflict) {
		applog.Security(c, "auth.signup.conflict", map[string]any{"email": in.Email})
	}
	if err != nil {
		return storeError(c, "User", err)
	}
	applog.Audit(c, "auth.signup", map[string]any{"user_id": u.ID, "role": u.Role})
	return c.JSON(fiber.Map{"user": u})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in loginInput
	if err := bind(c, &in); err != nil {
		return err
	}
	u, err := h.Auth.Login(c.UserContext(), in.Email, in.Password)
	if errors.Is(err, services.ErrBadCreds) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": in.Email})
		return jsonError(c, fiber.StatusUnauthorized, "Account not found. Please sign up first.")
	}
	if err != nil {
		return err
	}
	applog.Audit(c, "auth.login", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{"user": u})
}
