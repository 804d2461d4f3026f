package store

import (
	"context"
	"errors"

	"github.com/cardfolio/cardfolio/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. Sub-repositories keep concerns tidy and
// let services depend on the narrowest surface they need.
type Store interface {
	Users() Users
	Cards() Cards
	Preferences() Preferences

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise committed. This is the
	// recommended way to run multi-step writes like onboarding.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app as a UUID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateName mutates first/last name and bumps updated_at.
	UpdateName(ctx context.Context, userID, firstName, lastName string) error

	// UpdatePasswordHash sets the password digest and bumps updated_at.
	// Used at login time to promote legacy digests to argon2.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// SetOnboarded flips the has_onboarded flag.
	SetOnboarded(ctx context.Context, userID string, onboarded bool) error

	// DeleteUser cascades to preferences and cards (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users. Gates bootstrap.
	IsEmpty(ctx context.Context) (bool, error)
}

type Cards interface {
	// GetCardByID fetches a single card.
	GetCardByID(ctx context.Context, id string) (domain.Card, error)

	// ListCardsByOwner returns the owner's cards, newest first.
	ListCardsByOwner(ctx context.Context, ownerID string) ([]domain.Card, error)

	// CreateCard inserts a new card (id is a UUID minted by the app).
	CreateCard(ctx context.Context, c domain.Card) error

	// UpdateCard mutates name/type/last4 and bumps updated_at.
	UpdateCard(ctx context.Context, c domain.Card) error

	// DeleteCard removes a card.
	DeleteCard(ctx context.Context, id string) error
}

type Preferences interface {
	// GetPreferencesByUserID fetches the user's preference row.
	GetPreferencesByUserID(ctx context.Context, userID string) (domain.Preferences, error)

	// CreatePreferences inserts the row; each user has at most one.
	CreatePreferences(ctx context.Context, p domain.Preferences) error

	// UpdatePreferencesByUserID mutates the row and bumps updated_at.
	UpdatePreferencesByUserID(ctx context.Context, p domain.Preferences) error

	// DeletePreferencesByUserID removes the row.
	DeletePreferencesByUserID(ctx context.Context, userID string) error
}
