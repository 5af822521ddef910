package services

import (
	"context"

	"ismaalAdmin/internal/moderation"
	"ismaalAdmin/internal/models"
)

type PlanAPI interface {
	Plans(ctx context.Context) ([]models.Plan, error)
	Plan(ctx context.Context, id models.EntityID) (models.Plan, error)
	UpdatePlan(ctx context.Context, id models.EntityID, payload models.PlanPayload) (models.Plan, error)
	DeletePlan(ctx context.Context, id models.EntityID) error
}

type PlanService struct {
	API PlanAPI
}

func (s *PlanService) List(ctx context.Context, q EntityQuery) (moderation.Page[models.Plan], error) {
	items, err := s.API.Plans(ctx)
	if err != nil {
		return moderation.Page[models.Plan]{}, err
	}
	return pageOf(items, q), nil
}

func (s *PlanService) Get(ctx context.Context, id models.EntityID) (models.Plan, error) {
	if err := requireID(id); err != nil {
		return models.Plan{}, err
	}
	return s.API.Plan(ctx, id)
}

// Update validates the form and sends the trimmed, typed payload.
func (s *PlanService) Update(ctx context.Context, id models.EntityID, form models.PlanUpdate) (models.Plan, error) {
	if err := requireID(id); err != nil {
		return models.Plan{}, err
	}
	payload, err := form.Validate()
	if err != nil {
		return models.Plan{}, err
	}
	return s.API.UpdatePlan(ctx, id, payload)
}

func (s *PlanService) Delete(ctx context.Context, id models.EntityID) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.API.DeletePlan(ctx, id)
}
