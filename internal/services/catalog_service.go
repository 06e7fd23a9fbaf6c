package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

type CatalogService struct {
	Cats  repos.CategoryStore
	Prods repos.ProductStore
}

func NewCatalogService(cats repos.CategoryStore, prods repos.ProductStore) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.Prods.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return s.Prods.GetProduct(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	return s.Prods.CreateProduct(ctx, p)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	return s.Prods.UpdateProduct(ctx, p)
}

// DeleteProduct leaves order items and transactions that point at the product alone.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return s.Prods.DeleteProduct(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.ListCategories(ctx)
}

// CategoryDetail returns the category and every product whose category_id matches it.
func (s *CatalogService) CategoryDetail(ctx context.Context, id int64) (domain.CategoryDetail, error) {
	c, err := s.Cats.GetCategory(ctx, id)
	if err != nil {
		return domain.CategoryDetail{}, err
	}
	ps, err := s.Prods.ListProductsByCategory(ctx, id)
	if err != nil {
		return domain.CategoryDetail{}, err
	}
	return domain.CategoryDetail{Category: c, Products: ps}, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	return s.Cats.CreateCategory(ctx, c)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	return s.Cats.UpdateCategory(ctx, c)
}

// DeleteCategory does not touch products in the category; their category_id dangles.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.Cats.DeleteCategory(ctx, id)
}
