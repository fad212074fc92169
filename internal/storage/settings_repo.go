package storage

import (
	"github.com/breakminder/breakminder/internal/model"
)

// SettingsRepo provides operations for the Settings singleton.
type SettingsRepo struct {
	db *DB
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get retrieves the settings, falling back to defaults when none have been
// saved yet. The defaults are not written back; the record appears on the
// first explicit update.
func (r *SettingsRepo) Get() (*model.Settings, error) {
	settings := &model.Settings{}
	err := r.db.Get(model.KeySettings, settings)
	if err == nil {
		return settings, nil
	}
	if IsErrKeyNotFound(err) {
		return model.DefaultSettings(), nil
	}
	return nil, err
}

// Update persists the settings.
func (r *SettingsRepo) Update(settings *model.Settings) error {
	return r.db.Set(settings)
}
