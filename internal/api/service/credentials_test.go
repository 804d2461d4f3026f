package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cardfolio/cardfolio/internal/api/domain"
	"github.com/cardfolio/cardfolio/internal/api/store"
	"github.com/cardfolio/cardfolio/internal/api/store/drivers/sqlite"
	"github.com/cardfolio/cardfolio/pkg/cryptox"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newCredentialStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func seedUser(t *testing.T, s store.Store, email, passwordHash string) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestVerifyLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newCredentialStore(t)
	svc := &CredentialService{Store: s}

	hash, err := cryptox.HashPassword("correct horse")
	require.NoError(t, err)
	u := seedUser(t, s, "alice@example.com", hash)

	t.Run("correct password", func(t *testing.T) {
		got, ok, err := svc.VerifyLogin(ctx, "alice@example.com", "correct horse")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, u.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, ok, err := svc.VerifyLogin(ctx, "alice@example.com", "battery staple")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("unknown email looks identical to wrong password", func(t *testing.T) {
		_, ok, err := svc.VerifyLogin(ctx, "nobody@example.com", "whatever")
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestVerifyLoginUpgradesLegacyDigest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newCredentialStore(t)
	svc := &CredentialService{Store: s}

	u := seedUser(t, s, "legacy@example.com", cryptox.LegacyHash("old password"))

	t.Run("wrong password leaves digest untouched", func(t *testing.T) {
		_, ok, err := svc.VerifyLogin(ctx, "legacy@example.com", "not it")
		require.NoError(t, err)
		require.False(t, ok)

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, cryptox.IsLegacyDigest(got.PasswordHash))
	})

	t.Run("correct password migrates in place", func(t *testing.T) {
		got, ok, err := svc.VerifyLogin(ctx, "legacy@example.com", "old password")
		require.NoError(t, err)
		require.True(t, ok)
		require.False(t, cryptox.IsLegacyDigest(got.PasswordHash))

		stored, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.False(t, cryptox.IsLegacyDigest(stored.PasswordHash))
		require.NoError(t, cryptox.VerifyPassword("old password", stored.PasswordHash))
	})

	t.Run("migrated digest keeps working", func(t *testing.T) {
		stored, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)

		_, ok, err := svc.VerifyLogin(ctx, "legacy@example.com", "old password")
		require.NoError(t, err)
		require.True(t, ok)

		// No second rewrite: the digest is stable once upgraded.
		after, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, stored.PasswordHash, after.PasswordHash)
	})
}

// brokenWriteStore wraps a real store but fails every password hash write.
// Used to prove that a failed digest upgrade never blocks a valid login.
type brokenWriteStore struct {
	store.Store
}

func (s brokenWriteStore) Users() store.Users {
	return brokenWriteUsers{s.Store.Users()}
}

type brokenWriteUsers struct {
	store.Users
}

func (u brokenWriteUsers) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	return errors.New("disk full")
}

func TestVerifyLoginSucceedsWhenMigrationWriteFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newCredentialStore(t)
	svc := &CredentialService{Store: brokenWriteStore{s}}

	u := seedUser(t, s, "legacy@example.com", cryptox.LegacyHash("old password"))

	_, ok, err := svc.VerifyLogin(ctx, "legacy@example.com", "old password")
	require.NoError(t, err)
	require.True(t, ok)

	// The stored digest is still legacy, so the next login retries the
	// migration.
	stored, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, cryptox.IsLegacyDigest(stored.PasswordHash))
}
