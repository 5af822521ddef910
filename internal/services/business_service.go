package services

import (
	"context"

	"ismaalAdmin/internal/moderation"
	"ismaalAdmin/internal/models"
)

type BusinessAPI interface {
	Businesses(ctx context.Context) ([]models.Business, error)
	Business(ctx context.Context, id models.EntityID) (models.Business, error)
	UpdateBusiness(ctx context.Context, id models.EntityID, update models.BusinessUpdate, adminID models.EntityID) (models.Business, error)
	DeleteBusiness(ctx context.Context, id models.EntityID) error
}

type BusinessService struct {
	API BusinessAPI
}

func (s *BusinessService) List(ctx context.Context, q EntityQuery) (moderation.Page[models.Business], error) {
	items, err := s.API.Businesses(ctx)
	if err != nil {
		return moderation.Page[models.Business]{}, err
	}
	return pageOf(items, q), nil
}

func (s *BusinessService) Get(ctx context.Context, id models.EntityID) (models.Business, error) {
	if err := requireID(id); err != nil {
		return models.Business{}, err
	}
	return s.API.Business(ctx, id)
}

// Update validates the form before anything is sent. Validation failures
// come back as models.FieldErrors.
func (s *BusinessService) Update(ctx context.Context, id models.EntityID, form models.BusinessUpdate, adminID models.EntityID) (models.Business, error) {
	if err := requireID(id); err != nil {
		return models.Business{}, err
	}
	update, err := form.Validate()
	if err != nil {
		return models.Business{}, err
	}
	return s.API.UpdateBusiness(ctx, id, update, adminID)
}

func (s *BusinessService) Delete(ctx context.Context, id models.EntityID) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.API.DeleteBusiness(ctx, id)
}
