package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
)

type ContactHandler struct {
	Contact *services.ContactService
}

type contactInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,max=100"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required"`
}

func (h *ContactHandler) Send(c *fiber.Ctx) error {
	var in contactInput
	if err := bind(c, &in); err != nil {
		return err
	}
	m, err := h.Contact.Send(c.UserContext(), domain.ContactMessage{
		Name: in.Name, Email: in.Email, Subject: in.Subject, Message: in.Message,
	})
	if err != nil {
		return err
	}
	applog.Info(c, "contact.send", map[string]any{"id": m.ID})
	return c.JSON(fiber.Map{"message": "Message sent successfully"})
}

type AnalyticsHandler struct {
	Analytics *services.AnalyticsService
}

// Get ignores ?range=; the figures are fixed demo data.
func (h *AnalyticsHandler) Get(c *fiber.Ctx) error {
	a, err := h.Analytics.Report(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(a)
}

type HealthHandler struct {
	Mode string
}

func (h *HealthHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true, "backend": h.Mode})
}
