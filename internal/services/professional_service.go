package services

import (
	"context"

	"ismaalAdmin/internal/moderation"
	"ismaalAdmin/internal/models"
)

type ProfessionalAPI interface {
	Professionals(ctx context.Context) ([]models.Professional, error)
	Professional(ctx context.Context, id models.EntityID) (models.Professional, error)
	DeleteProfessional(ctx context.Context, id models.EntityID) error
}

type ProfessionalService struct {
	API ProfessionalAPI
}

func (s *ProfessionalService) List(ctx context.Context, q EntityQuery) (moderation.Page[models.Professional], error) {
	items, err := s.API.Professionals(ctx)
	if err != nil {
		return moderation.Page[models.Professional]{}, err
	}
	return pageOf(items, q), nil
}

func (s *ProfessionalService) Get(ctx context.Context, id models.EntityID) (models.Professional, error) {
	if err := requireID(id); err != nil {
		return models.Professional{}, err
	}
	return s.API.Professional(ctx, id)
}

func (s *ProfessionalService) Delete(ctx context.Context, id models.EntityID) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.API.DeleteProfessional(ctx, id)
}
