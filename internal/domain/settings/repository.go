package settings

import "context"

type SettingsRepository interface {
	// GetAll returns every stored setting row
	GetAll(ctx context.Context) ([]Setting, error)

	// Get returns a single setting by key, ErrSettingNotFound when absent
	Get(ctx context.Context, key string) (Setting, error)

	// Upsert writes value under key, creating the row when missing
	Upsert(ctx context.Context, key string, value string) error
}
