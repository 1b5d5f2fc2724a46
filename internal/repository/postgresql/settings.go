package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// GetAll implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) GetAll(ctx context.Context) ([]settings.Setting, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, setting_key, setting_value, description, created_at, updated_at
		FROM project_settings
		ORDER BY setting_key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []settings.Setting
	for rows.Next() {
		var s settings.Setting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		all = append(all, s)
	}
	return all, rows.Err()
}

// Get implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Get(ctx context.Context, key string) (settings.Setting, error) {
	q := GetQuerier(ctx, r.db)

	var s settings.Setting
	err := q.QueryRow(ctx, `
		SELECT id, setting_key, setting_value, description, created_at, updated_at
		FROM project_settings
		WHERE setting_key = $1
	`, key).Scan(&s.ID, &s.Key, &s.Value, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Setting{}, settings.ErrSettingNotFound
		}
		return settings.Setting{}, err
	}
	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, key string, value string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO project_settings (setting_key, setting_value)
		VALUES ($1, $2)
		ON CONFLICT (setting_key) DO UPDATE SET
			setting_value = EXCLUDED.setting_value,
			updated_at    = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}
	return nil
}
