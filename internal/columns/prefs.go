package columns

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/telffer/stockroom/internal/repository"
)

// SettingsKey is the settings-store key holding the visible column order.
const SettingsKey = "visible_columns"

// Prefs persists the visible-column selection through a settings
// repository and shields callers from anything unusable that may be stored
// there.
type Prefs struct {
	settings repository.SettingsRepository
	logger   *slog.Logger
}

// NewPrefs creates a Prefs backed by the given settings repository.
func NewPrefs(settings repository.SettingsRepository, logger *slog.Logger) *Prefs {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prefs{settings: settings, logger: logger}
}

// Load returns the stored visible-column order. A missing key, malformed
// JSON, or a non-array value falls back to the defaults; read problems are
// logged, never surfaced.
func (p *Prefs) Load(ctx context.Context) []string {
	raw, err := p.settings.Get(ctx, SettingsKey)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			p.logger.Warn("reading column settings", "error", err)
		}
		return slices.Clone(DefaultVisible)
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		p.logger.Warn("stored column settings are malformed, using defaults", "error", err)
		return slices.Clone(DefaultVisible)
	}
	if ids == nil {
		return slices.Clone(DefaultVisible)
	}
	return ids
}

// Save writes the visible-column order back to the settings store.
func (p *Prefs) Save(ctx context.Context, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding column settings: %w", err)
	}
	if err := p.settings.Set(ctx, SettingsKey, string(raw)); err != nil {
		return fmt.Errorf("saving column settings: %w", err)
	}
	return nil
}
