package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/services"
	"storefront/internal/validate"
)

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

func notFound(c *fiber.Ctx, resource string) error {
	return jsonError(c, fiber.StatusNotFound, resource+" not found")
}

// ErrorHandler is the app-wide fiber error handler. Client errors keep their
// message; anything else is logged and answered with a generic body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return jsonError(c, fe.Code, fe.Message)
	}
	applog.Error(c, "server.error", err, nil)
	return jsonError(c, fiber.StatusInternalServerError, "Server error")
}

// storeError maps domain results to responses and passes anything else on to
// ErrorHandler.
func storeError(c *fiber.Ctx, resource string, err error) error {
	switch {
	case errors.Is(err, repos.ErrNotFound):
		return notFound(c, resource)
	case errors.Is(err, repos.ErrConflict):
		return jsonError(c, fiber.StatusConflict, "Account already exists")
	case errors.Is(err, services.ErrInvalidStatus):
		return jsonError(c, fiber.StatusBadRequest, "Invalid status")
	}
	return err
}

// bind decodes the JSON body into dst and runs its validate tags.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"reason": "payload"})
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := validate.Struct(dst); err != nil {
		msg := validate.Message(err)
		applog.Security(c, "validation.fail", map[string]any{"reason": msg})
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}
	if ck, ok := dst.(checker); ok {
		if err := ck.check(); err != nil {
			applog.Security(c, "validation.fail", map[string]any{"reason": err.Error()})
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	return nil
}

// checker is implemented by inputs with rules the tags cannot express.
type checker interface {
	check() error
}

// pathID reads :id. A malformed id is indistinguishable from a missing row.
func pathID(c *fiber.Ctx) (int64, bool) {
	return validate.ID(c.Params("id"))
}
