package service

import (
	"time"

	"github.com/cardfolio/cardfolio/pkg/sessiontoken"
)

// SessionService issues and verifies the stateless session tokens that back
// the browser cookie. Sessions are sliding: once a token has consumed enough
// of its lifetime, callers are told to mint a replacement so active users
// never hit a hard expiry.
type SessionService struct {
	Secret []byte

	// MaxAge is the full lifetime of a freshly issued session.
	MaxAge time.Duration

	// RefreshThreshold is the fraction of the lifetime (0..1) after which
	// ShouldRefresh reports true. 0.5 means refresh once half-spent.
	RefreshThreshold float64

	// Leeway tolerates small clock drift between servers when checking
	// expiry. Zero disables it.
	Leeway time.Duration

	// Now is the clock. Nil means time.Now; tests inject a fixed clock.
	Now func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue mints a new session token for the given user.
func (s *SessionService) Issue(userID string) (string, sessiontoken.Claims, error) {
	now := s.now().Unix()
	claims := sessiontoken.Claims{
		Sub: userID,
		Iat: now,
		Exp: now + int64(s.MaxAge.Seconds()),
	}

	token, err := sessiontoken.Encode(claims, s.Secret)
	if err != nil {
		return "", sessiontoken.Claims{}, err
	}
	return token, claims, nil
}

// Verify decodes and validates a session token. Expiry is evaluated against
// the service clock minus Leeway. Errors are the sessiontoken sentinels.
func (s *SessionService) Verify(token string) (sessiontoken.Claims, error) {
	now := s.now().Unix() - int64(s.Leeway.Seconds())
	return sessiontoken.Decode(token, s.Secret, now)
}

// ShouldRefresh reports whether the session has consumed at least
// RefreshThreshold of its lifetime and deserves a replacement token.
func (s *SessionService) ShouldRefresh(claims sessiontoken.Claims) bool {
	lifetime := claims.Exp - claims.Iat
	if lifetime <= 0 {
		return false
	}
	age := s.now().Unix() - claims.Iat
	return float64(age)/float64(lifetime) >= s.RefreshThreshold
}

// Refresh issues a replacement token for the same subject with a full
// lifetime. The old token stays valid until its own expiry; sessions are
// stateless so there is nothing to revoke.
func (s *SessionService) Refresh(claims sessiontoken.Claims) (string, sessiontoken.Claims, error) {
	return s.Issue(claims.Sub)
}
