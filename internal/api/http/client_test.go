package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/cardfolio/cardfolio/pkg/api"
	"github.com/stretchr/testify/require"
)

func TestClientEndToEnd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)

	client, err := api.NewClient(env.server.URL)
	require.NoError(t, err)

	status, err := client.BootstrapStatus(ctx)
	require.NoError(t, err)
	require.False(t, status.Bootstrapped)

	user, err := client.Bootstrap(ctx, api.BootstrapRequest{
		Email:    "owner@example.com",
		Password: "first password",
	})
	require.NoError(t, err)
	require.Equal(t, "owner@example.com", user.Email)

	// The jar now holds the session; authenticated calls just work.
	me, err := client.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, user.ID, me.ID)

	onboarded, err := client.Onboard(ctx, api.OnboardingRequest{
		FirstName:   "Nina",
		LastName:    "Kovacs",
		Preferences: api.PreferencesPayload{Notifications: true, Currency: "AUD"},
	})
	require.NoError(t, err)
	require.True(t, onboarded.User.HasOnboarded)

	card, err := client.CreateCard(ctx, api.CardRequest{
		Name: "Everyday", Type: "visa", Last4: "4242",
	})
	require.NoError(t, err)

	cards, err := client.ListCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards.Cards, 1)
	require.Equal(t, card.ID, cards.Cards[0].ID)

	prefs, err := client.UpdatePreferences(ctx, api.PreferencesPayload{
		DarkMode: true, Currency: "EUR",
	})
	require.NoError(t, err)
	require.Equal(t, "EUR", prefs.Currency)

	require.NoError(t, client.DeleteCard(ctx, card.ID))

	_, err = client.GetCard(ctx, card.ID)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "not_found", apiErr.Code)

	require.NoError(t, client.Logout(ctx))

	_, err = client.Me(ctx)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	// Validation failures surface their field map through the client too.
	_, err = client.Login(ctx, api.LoginRequest{Email: "owner@example.com"})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Contains(t, apiErr.Details, "password")
}
