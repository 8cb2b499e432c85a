package repository

import (
	"context"

	"stockroom/internal/model"
	"stockroom/internal/store"

	"github.com/rs/zerolog"
)

// settingsKey is the id of the only settings record.
const settingsKey = "settings"

func settingsID(model.Settings) string { return settingsKey }

type settingsRepository struct {
	settings *collection[model.Settings]
}

// NewSettingsRepository creates the settings repository persisted through s.
func NewSettingsRepository(s store.Store, logger zerolog.Logger) SettingsRepository {
	logger = logger.With().Str("repository", "settings").Logger()
	return &settingsRepository{
		settings: newCollection(store.Settings, s, settingsID, logger),
	}
}

func defaultSettings() model.Settings {
	return model.Settings{CompanyName: model.DefaultCompanyName}
}

// Get returns the saved settings, or defaults when none were saved.
func (r *settingsRepository) Get(ctx context.Context) (model.Settings, error) {
	s, ok, err := r.settings.get(ctx, settingsKey)
	if err != nil {
		return model.Settings{}, err
	}
	if !ok {
		return defaultSettings(), nil
	}
	return s, nil
}

// Update applies fn to the current settings and saves the result.
func (r *settingsRepository) Update(ctx context.Context, fn func(*model.Settings)) (model.Settings, error) {
	var out model.Settings
	err := r.settings.update(ctx, func(items []model.Settings) ([]model.Settings, error) {
		out = defaultSettings()
		if len(items) > 0 {
			out = items[0]
		}
		fn(&out)
		return []model.Settings{out}, nil
	})
	if err != nil {
		return model.Settings{}, err
	}
	return out, nil
}
