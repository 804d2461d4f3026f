package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cardfolio/cardfolio/internal/api/store/drivers/sqlite"
	"github.com/cardfolio/cardfolio/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	svc := &BootstrapService{Store: s}

	t.Run("fresh install reports not bootstrapped", func(t *testing.T) {
		bootstrapped, err := svc.IsBootstrapped(ctx)
		require.NoError(t, err)
		require.False(t, bootstrapped)
	})

	t.Run("creates the first account", func(t *testing.T) {
		user, err := svc.Bootstrap(ctx, "owner@example.com", "first password")
		require.NoError(t, err)
		require.Equal(t, "owner@example.com", user.Email)
		require.False(t, user.HasOnboarded)
		require.NoError(t, cryptox.VerifyPassword("first password", user.PasswordHash))

		bootstrapped, err := svc.IsBootstrapped(ctx)
		require.NoError(t, err)
		require.True(t, bootstrapped)
	})

	t.Run("second bootstrap is rejected", func(t *testing.T) {
		_, err := svc.Bootstrap(ctx, "intruder@example.com", "sneaky")
		require.ErrorIs(t, err, ErrBootstrapAlready)
	})
}
