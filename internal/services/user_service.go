package services

import (
	"context"

	"ismaalAdmin/internal/moderation"
	"ismaalAdmin/internal/models"
)

type UserAPI interface {
	Users(ctx context.Context) ([]models.User, error)
	User(ctx context.Context, id models.EntityID) (models.User, error)
	DeleteUser(ctx context.Context, id models.EntityID) error
}

type UserService struct {
	API UserAPI
}

func (s *UserService) List(ctx context.Context, q EntityQuery) (moderation.Page[models.User], error) {
	items, err := s.API.Users(ctx)
	if err != nil {
		return moderation.Page[models.User]{}, err
	}
	return pageOf(items, q), nil
}

func (s *UserService) Get(ctx context.Context, id models.EntityID) (models.User, error) {
	if err := requireID(id); err != nil {
		return models.User{}, err
	}
	return s.API.User(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id models.EntityID) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.API.DeleteUser(ctx, id)
}
