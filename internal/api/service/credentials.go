package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cardfolio/cardfolio/internal/api/domain"
	"github.com/cardfolio/cardfolio/internal/api/store"
	"github.com/cardfolio/cardfolio/pkg/cryptox"
	"github.com/cardfolio/cardfolio/pkg/slogx"
)

// CredentialService checks login credentials against stored digests. Besides
// the current argon2id format it still accepts the unsalted SHA-256 hex
// digests left behind by early installs, and quietly rewrites those to
// argon2id on the first successful login.
type CredentialService struct {
	Store store.Store
}

// VerifyLogin returns the user and true when the email/password pair is
// valid. Unknown email and wrong password are deliberately indistinguishable:
// both return ok=false with a nil error. The error return is reserved for
// infrastructure failures (database down), never for bad credentials.
func (s *CredentialService) VerifyLogin(
	ctx context.Context,
	email string,
	password string,
) (domain.User, bool, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn comparable time so a missing account is not
			// detectable by response latency.
			_ = cryptox.VerifyPassword(password, cryptox.DummyDigest)
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}

	if cryptox.IsLegacyDigest(user.PasswordHash) {
		if !cryptox.VerifyLegacy(password, user.PasswordHash) {
			return domain.User{}, false, nil
		}

		// Correct password against a legacy digest: upgrade it in place.
		// The login must succeed even if the rewrite fails, so the
		// migration is best-effort.
		newHash, err := cryptox.HashPassword(password)
		if err != nil {
			l.Warn("failed to compute upgraded password hash",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
			return user, true, nil
		}
		if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
			l.Warn("failed to persist upgraded password hash",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
			return user, true, nil
		}

		user.PasswordHash = newHash
		l.Info("upgraded legacy password digest", slog.String("user_id", user.ID))
		return user, true, nil
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, false, nil
	}
	return user, true, nil
}
