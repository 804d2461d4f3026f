package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cardfolio/cardfolio/internal/api/domain"
	"github.com/cardfolio/cardfolio/internal/api/store"
	"github.com/cardfolio/cardfolio/pkg/slogx"
	"github.com/google/uuid"
)

var (
	ErrAlreadyOnboarded  = errors.New("user already onboarded")
	ErrInvalidOnboarding = errors.New("invalid onboarding data")
)

// OnboardingService runs the post-signup wizard: set the display name, write
// the initial preferences, optionally save the first card, and flip the
// onboarded flag. All of it commits or rolls back as one transaction.
type OnboardingService struct {
	Store store.Store
}

func validateOnboarding(data domain.OnboardingData) error {
	if data.FirstName == "" || data.LastName == "" {
		return ErrInvalidOnboarding
	}
	if !data.Preferences.Currency.Valid() {
		return ErrInvalidOnboarding
	}
	if data.Card != nil {
		if err := validateCard(data.Card.Name, data.Card.Type, data.Card.Last4); err != nil {
			return ErrInvalidOnboarding
		}
	}
	return nil
}

// Onboard completes onboarding for the given user.
func (s *OnboardingService) Onboard(
	ctx context.Context,
	userID string,
	data domain.OnboardingData,
) (domain.OnboardingResult, error) {
	l := slogx.FromContext(ctx)

	if err := validateOnboarding(data); err != nil {
		return domain.OnboardingResult{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.OnboardingResult{}, err
	}
	if user.HasOnboarded {
		return domain.OnboardingResult{}, ErrAlreadyOnboarded
	}

	now := time.Now().UTC()
	prefs := domain.Preferences{
		ID:            uuid.NewString(),
		UserID:        userID,
		Notifications: data.Preferences.Notifications,
		DarkMode:      data.Preferences.DarkMode,
		Currency:      data.Preferences.Currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var card *domain.Card
	if data.Card != nil {
		card = &domain.Card{
			ID:        uuid.NewString(),
			OwnerID:   userID,
			Name:      data.Card.Name,
			Type:      data.Card.Type,
			Last4:     data.Card.Last4,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdateName(ctx, userID, data.FirstName, data.LastName); err != nil {
			return err
		}
		if err := tx.Preferences().CreatePreferences(ctx, prefs); err != nil {
			return err
		}
		if card != nil {
			if err := tx.Cards().CreateCard(ctx, *card); err != nil {
				return err
			}
		}
		return tx.Users().SetOnboarded(ctx, userID, true)
	})
	if err != nil {
		l.Error("onboarding transaction failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return domain.OnboardingResult{}, err
	}

	user.FirstName = data.FirstName
	user.LastName = data.LastName
	user.HasOnboarded = true

	l.Info("onboarding complete", slog.String("user_id", userID))
	return domain.OnboardingResult{User: user, Preferences: prefs, Card: card}, nil
}
