package sqlite

import (
	"context"

	"github.com/cardfolio/cardfolio/internal/api/domain"
)

type preferencesRepo struct {
	db dbtx
}

const preferencesColumns = `id, user_id, notifications, dark_mode, currency, created_at, updated_at`

func scanPreferences(row interface{ Scan(...any) error }) (domain.Preferences, error) {
	var p domain.Preferences
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Notifications,
		&p.DarkMode,
		&p.Currency,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *preferencesRepo) GetPreferencesByUserID(ctx context.Context, userID string) (domain.Preferences, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+preferencesColumns+` FROM user_preferences WHERE user_id = ?`, userID)
	p, err := scanPreferences(row)
	if err != nil {
		return domain.Preferences{}, mapNotFound(err)
	}
	return p, nil
}

func (r *preferencesRepo) CreatePreferences(ctx context.Context, p domain.Preferences) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_preferences (id, user_id, notifications, dark_mode, currency, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Notifications, p.DarkMode, p.Currency, p.CreatedAt, p.UpdatedAt)
	return mapConstraint(err)
}

func (r *preferencesRepo) UpdatePreferencesByUserID(ctx context.Context, p domain.Preferences) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_preferences
		 SET notifications = ?, dark_mode = ?, currency = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE user_id = ?`,
		p.Notifications, p.DarkMode, p.Currency, p.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *preferencesRepo) DeletePreferencesByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_preferences WHERE user_id = ?`, userID)
	return err
}
