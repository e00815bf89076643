package services

import (
	"context"
	"errors"
	"strings"

	"assetVerse/internal/models"
	"assetVerse/internal/repositories"
)

var ErrInvalidRegistration = errors.New("invalid registration payload")

type UserService struct {
	UserRepo *repositories.UserRepository
}

func (s *UserService) RegisterUser(ctx context.Context, draft models.RegisterUser) (models.User, error) {
	draft.Role = strings.ToLower(strings.TrimSpace(draft.Role))
	if draft.Role != models.RoleHR && draft.Role != models.RoleEmployee {
		return models.User{}, ErrInvalidRegistration
	}
	if draft.ResolveEmail() == "" {
		return models.User{}, ErrInvalidRegistration
	}
	return s.UserRepo.CreateUser(ctx, draft)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.UserRepo.GetUserByEmail(ctx, email)
}
