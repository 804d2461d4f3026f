package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/cardfolio/cardfolio/internal/api/domain"
	"github.com/cardfolio/cardfolio/internal/api/store"
	"github.com/google/uuid"
)

var ErrInvalidCard = errors.New("invalid card")

var last4Pattern = regexp.MustCompile(`^[0-9]{4}$`)

// CardService manages the cards a user has saved. Every operation is scoped
// to the owner; a card belonging to someone else is reported as not found
// rather than forbidden, so ids cannot be probed.
type CardService struct {
	Store store.Store
}

func validateCard(name string, cardType domain.CardType, last4 string) error {
	if name == "" || !cardType.Valid() || !last4Pattern.MatchString(last4) {
		return ErrInvalidCard
	}
	return nil
}

// ListCards returns the owner's cards, newest first.
func (s *CardService) ListCards(ctx context.Context, ownerID string) ([]domain.Card, error) {
	return s.Store.Cards().ListCardsByOwner(ctx, ownerID)
}

// GetCard fetches a single card owned by ownerID.
func (s *CardService) GetCard(ctx context.Context, ownerID, cardID string) (domain.Card, error) {
	card, err := s.Store.Cards().GetCardByID(ctx, cardID)
	if err != nil {
		return domain.Card{}, err
	}
	if card.OwnerID != ownerID {
		return domain.Card{}, store.ErrNotFound
	}
	return card, nil
}

// CreateCard saves a new card for the owner.
func (s *CardService) CreateCard(
	ctx context.Context,
	ownerID string,
	name string,
	cardType domain.CardType,
	last4 string,
) (domain.Card, error) {
	if err := validateCard(name, cardType, last4); err != nil {
		return domain.Card{}, err
	}

	now := time.Now().UTC()
	card := domain.Card{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Type:      cardType,
		Last4:     last4,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Cards().CreateCard(ctx, card); err != nil {
		return domain.Card{}, err
	}
	return card, nil
}

// UpdateCard mutates a card the owner holds.
func (s *CardService) UpdateCard(
	ctx context.Context,
	ownerID string,
	cardID string,
	name string,
	cardType domain.CardType,
	last4 string,
) (domain.Card, error) {
	if err := validateCard(name, cardType, last4); err != nil {
		return domain.Card{}, err
	}

	card, err := s.GetCard(ctx, ownerID, cardID)
	if err != nil {
		return domain.Card{}, err
	}

	card.Name = name
	card.Type = cardType
	card.Last4 = last4
	if err := s.Store.Cards().UpdateCard(ctx, card); err != nil {
		return domain.Card{}, err
	}
	return s.Store.Cards().GetCardByID(ctx, cardID)
}

// DeleteCard removes a card the owner holds.
func (s *CardService) DeleteCard(ctx context.Context, ownerID, cardID string) error {
	if _, err := s.GetCard(ctx, ownerID, cardID); err != nil {
		return err
	}
	return s.Store.Cards().DeleteCard(ctx, cardID)
}
