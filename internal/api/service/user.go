package service

import (
	"context"

	"github.com/cardfolio/cardfolio/internal/api/domain"
	"github.com/cardfolio/cardfolio/internal/api/store"
)

type UserService struct {
	Store store.Store
}

// GetUser fetches a user by id. Returns store.ErrNotFound for unknown ids.
func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

// UpdateName changes the user's display name.
func (s *UserService) UpdateName(ctx context.Context, userID, firstName, lastName string) error {
	return s.Store.Users().UpdateName(ctx, userID, firstName, lastName)
}
