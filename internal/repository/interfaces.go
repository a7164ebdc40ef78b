package repository

import "context"

// SettingsRepository persists small key-value UI settings. The only
// setting the application stores is the visible-column order.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
