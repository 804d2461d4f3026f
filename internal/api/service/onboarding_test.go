package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cardfolio/cardfolio/internal/api/domain"
	"github.com/cardfolio/cardfolio/internal/api/store"
	"github.com/cardfolio/cardfolio/internal/api/store/drivers/sqlite"
	"github.com/cardfolio/cardfolio/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func onboardingFixture(t *testing.T) (store.Store, domain.User) {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	hash, err := cryptox.HashPassword("pw")
	require.NoError(t, err)
	return s, seedUser(t, s, "new@example.com", hash)
}

func TestOnboard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, u := onboardingFixture(t)
	svc := &OnboardingService{Store: s}

	data := domain.OnboardingData{
		FirstName: "Nina",
		LastName:  "Kovacs",
		Preferences: domain.PreferencesData{
			Notifications: true,
			Currency:      domain.CurrencyAUD,
		},
		Card: &domain.CardData{
			Name:  "Everyday",
			Type:  domain.CardTypeMastercard,
			Last4: "1234",
		},
	}

	res, err := svc.Onboard(ctx, u.ID, data)
	require.NoError(t, err)
	require.True(t, res.User.HasOnboarded)
	require.Equal(t, "Nina", res.User.FirstName)
	require.Equal(t, domain.CurrencyAUD, res.Preferences.Currency)
	require.NotNil(t, res.Card)
	require.Equal(t, "1234", res.Card.Last4)

	t.Run("everything persisted", func(t *testing.T) {
		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, got.HasOnboarded)
		require.Equal(t, "Kovacs", got.LastName)

		prefs, err := s.Preferences().GetPreferencesByUserID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, prefs.Notifications)

		cards, err := s.Cards().ListCardsByOwner(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, cards, 1)
	})

	t.Run("cannot onboard twice", func(t *testing.T) {
		_, err := svc.Onboard(ctx, u.ID, data)
		require.ErrorIs(t, err, ErrAlreadyOnboarded)
	})
}

func TestOnboardWithoutCard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, u := onboardingFixture(t)
	svc := &OnboardingService{Store: s}

	res, err := svc.Onboard(ctx, u.ID, domain.OnboardingData{
		FirstName:   "Sam",
		LastName:    "Lee",
		Preferences: domain.PreferencesData{Currency: domain.CurrencyUSD},
	})
	require.NoError(t, err)
	require.Nil(t, res.Card)

	cards, err := s.Cards().ListCardsByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, cards)
}

func TestOnboardRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, u := onboardingFixture(t)
	svc := &OnboardingService{Store: s}

	bad := domain.OnboardingData{
		FirstName:   "Eve",
		LastName:    "Short",
		Preferences: domain.PreferencesData{Currency: domain.CurrencyGBP},
		Card: &domain.CardData{
			Name:  "Ghost",
			Type:  domain.CardTypeVisa,
			Last4: "0000",
		},
	}

	// A pre-existing preferences row makes the CreatePreferences step fail,
	// which should unwind the name update too.
	prefs := domain.Preferences{
		ID:       "pre-existing",
		UserID:   u.ID,
		Currency: domain.CurrencyUSD,
	}
	require.NoError(t, s.Preferences().CreatePreferences(ctx, prefs))

	_, err := svc.Onboard(ctx, u.ID, bad)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.HasOnboarded)
	require.Empty(t, got.FirstName)

	cards, err := s.Cards().ListCardsByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, cards)
}

func TestOnboardValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, u := onboardingFixture(t)
	svc := &OnboardingService{Store: s}

	cases := map[string]domain.OnboardingData{
		"missing first name": {
			LastName:    "Lee",
			Preferences: domain.PreferencesData{Currency: domain.CurrencyUSD},
		},
		"bad currency": {
			FirstName:   "Sam",
			LastName:    "Lee",
			Preferences: domain.PreferencesData{Currency: "XBT"},
		},
		"bad card last4": {
			FirstName:   "Sam",
			LastName:    "Lee",
			Preferences: domain.PreferencesData{Currency: domain.CurrencyUSD},
			Card:        &domain.CardData{Name: "X", Type: domain.CardTypeVisa, Last4: "12ab"},
		},
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Onboard(ctx, u.ID, data)
			require.ErrorIs(t, err, ErrInvalidOnboarding)
		})
	}
}
