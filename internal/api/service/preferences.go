package service

import (
	"context"
	"errors"

	"github.com/cardfolio/cardfolio/internal/api/domain"
	"github.com/cardfolio/cardfolio/internal/api/store"
)

var ErrInvalidPreferences = errors.New("invalid preferences")

type PreferencesService struct {
	Store store.Store
}

// GetPreferences returns the user's preference row. Users who have not
// onboarded yet have none; that surfaces as store.ErrNotFound.
func (s *PreferencesService) GetPreferences(ctx context.Context, userID string) (domain.Preferences, error) {
	return s.Store.Preferences().GetPreferencesByUserID(ctx, userID)
}

// UpdatePreferences overwrites the user's settings.
func (s *PreferencesService) UpdatePreferences(
	ctx context.Context,
	userID string,
	notifications bool,
	darkMode bool,
	currency domain.Currency,
) (domain.Preferences, error) {
	if !currency.Valid() {
		return domain.Preferences{}, ErrInvalidPreferences
	}

	prefs, err := s.Store.Preferences().GetPreferencesByUserID(ctx, userID)
	if err != nil {
		return domain.Preferences{}, err
	}

	prefs.Notifications = notifications
	prefs.DarkMode = darkMode
	prefs.Currency = currency
	if err := s.Store.Preferences().UpdatePreferencesByUserID(ctx, prefs); err != nil {
		return domain.Preferences{}, err
	}
	return s.Store.Preferences().GetPreferencesByUserID(ctx, userID)
}
