package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

type categoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cs, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(cs)
}

// Detail answers {category, products}.
func (h *CategoryHandler) Detail(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Category")
	}
	d, err := h.Catalog.CategoryDetail(c.UserContext(), id)
	if err != nil {
		return storeError(c, "Category", err)
	}
	return c.JSON(d)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in categoryInput
	if err := bind(c, &in); err != nil {
		return err
	}
	cat, err := h.Catalog.CreateCategory(c.UserContext(), domain.Category{Name: in.Name, Description: in.Description})
	if err != nil {
		return err
	}
	applog.Audit(c, "category.create", map[string]any{"id": cat.ID})
	return c.JSON(cat)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Category")
	}
	var in categoryInput
	if err := bind(c, &in); err != nil {
		return err
	}
	cat, err := h.Catalog.UpdateCategory(c.UserContext(), domain.Category{ID: id, Name: in.Name, Description: in.Description})
	if err != nil {
		return storeError(c, "Category", err)
	}
	applog.Audit(c, "category.update", map[string]any{"id": id})
	return c.JSON(cat)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Category")
	}
	if err := h.Catalog.DeleteCategory(c.UserContext(), id); err != nil {
		return storeError(c, "Category", err)
	}
	applog.Audit(c, "category.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
