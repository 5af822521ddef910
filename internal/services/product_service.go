package services

import (
	"context"

	"ismaalAdmin/internal/moderation"
	"ismaalAdmin/internal/models"
)

type ProductAPI interface {
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id models.EntityID) (models.Product, error)
	DeleteProduct(ctx context.Context, id models.EntityID) error
}

type ProductService struct {
	API ProductAPI
}

func (s *ProductService) List(ctx context.Context, q EntityQuery) (moderation.Page[models.Product], error) {
	items, err := s.API.Products(ctx)
	if err != nil {
		return moderation.Page[models.Product]{}, err
	}
	return pageOf(items, q), nil
}

func (s *ProductService) Get(ctx context.Context, id models.EntityID) (models.Product, error) {
	if err := requireID(id); err != nil {
		return models.Product{}, err
	}
	return s.API.Product(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id models.EntityID) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.API.DeleteProduct(ctx, id)
}
