package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

type productInput struct {
	Name        string              `json:"name" validate:"required,max=200"`
	Description string              `json:"description"`
	Price       decimal.NullDecimal `json:"price" validate:"omitempty,gte=0"`
	ImageURL    string              `json:"image_url" validate:"max=500"`
	Stock       int                 `json:"stock" validate:"gte=0"`
	CategoryID  int64               `json:"category_id" validate:"gte=0"`
}

// check runs after the tags: a zero price is valid, an absent one is not.
func (in productInput) check() error {
	if !in.Price.Valid {
		return errors.New("price is required")
	}
	return nil
}

func (in productInput) product(id int64) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price.Decimal,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
	}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps, err := h.Catalog.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(ps)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Product")
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return storeError(c, "Product", err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in productInput
	if err := bind(c, &in); err != nil {
		return err
	}
	p, err := h.Catalog.CreateProduct(c.UserContext(), in.product(0))
	if err != nil {
		return err
	}
	applog.Audit(c, "product.create", map[string]any{"id": p.ID})
	return c.JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Product")
	}
	var in productInput
	if err := bind(c, &in); err != nil {
		return err
	}
	p, err := h.Catalog.UpdateProduct(c.UserContext(), in.product(id))
	if err != nil {
		return storeError(c, "Product", err)
	}
	applog.Audit(c, "product.update", map[string]any{"id": id})
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Product")
	}
	if err := h.Catalog.DeleteProduct(c.UserContext(), id); err != nil {
		return storeError(c, "Product", err)
	}
	applog.Audit(c, "product.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
