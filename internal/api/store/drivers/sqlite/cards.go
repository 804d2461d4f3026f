package sqlite

import (
	"context"

	"github.com/cardfolio/cardfolio/internal/api/domain"
)

type cardsRepo struct {
	db dbtx
}

const cardColumns = `id, owner_id, name, type, last4, created_at, updated_at`

func scanCard(row interface{ Scan(...any) error }) (domain.Card, error) {
	var c domain.Card
	err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.Name,
		&c.Type,
		&c.Last4,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *cardsRepo) GetCardByID(ctx context.Context, id string) (domain.Card, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if err != nil {
		return domain.Card{}, mapNotFound(err)
	}
	return c, nil
}

func (r *cardsRepo) ListCardsByOwner(ctx context.Context, ownerID string) ([]domain.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE owner_id = ? ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := make([]domain.Card, 0)
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *cardsRepo) CreateCard(ctx context.Context, c domain.Card) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (id, owner_id, name, type, last4, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.OwnerID, c.Name, c.Type, c.Last4, c.CreatedAt, c.UpdatedAt)
	return mapConstraint(err)
}

func (r *cardsRepo) UpdateCard(ctx context.Context, c domain.Card) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cards SET name = ?, type = ?, last4 = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		c.Name, c.Type, c.Last4, c.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *cardsRepo) DeleteCard(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
