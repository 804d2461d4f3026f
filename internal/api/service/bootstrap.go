package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cardfolio/cardfolio/internal/api/domain"
	"github.com/cardfolio/cardfolio/internal/api/store"
	"github.com/cardfolio/cardfolio/pkg/cryptox"
	"github.com/cardfolio/cardfolio/pkg/slogx"
	"github.com/google/uuid"
)

var ErrBootstrapAlready = errors.New("system already bootstrapped")

// BootstrapService handles first-run setup: creating the initial account.
// Bootstrap is open only while the users table is empty; the moment the
// first account exists the endpoint shuts itself.
type BootstrapService struct {
	Store store.Store
}

// IsBootstrapped reports whether an account already exists.
func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the very first account. The caller is expected to log the
// new user straight in; onboarding happens as a separate step afterwards.
func (s *BootstrapService) Bootstrap(
	ctx context.Context,
	email string,
	password string,
) (domain.User, error) {
	l := slogx.FromContext(ctx)

	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.User{}, ErrBootstrapAlready
	}

	passHash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash bootstrap password", slog.Any("error", err))
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		// A concurrent bootstrap may have won the race; the unique
		// email constraint makes the loser fail here.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrBootstrapAlready
		}
		l.Error("failed to create bootstrap user", slog.Any("error", err))
		return domain.User{}, err
	}

	l.Info("bootstrap complete", slog.String("user_id", user.ID))
	return user, nil
}
