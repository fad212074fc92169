package storage

import (
	"github.com/breakminder/breakminder/internal/model"
)

// SoundSupportRepo provides operations for the sound-support flag.
type SoundSupportRepo struct {
	db *DB
}

// NewSoundSupportRepo creates a new sound-support repository.
func NewSoundSupportRepo(db *DB) *SoundSupportRepo {
	return &SoundSupportRepo{db: db}
}

// Get retrieves the flag. Absence reads as supported: the flag only ever
// records an observed failure.
func (r *SoundSupportRepo) Get() (bool, error) {
	support := &model.SoundSupport{}
	err := r.db.Get(model.KeySoundSupport, support)
	if err == nil {
		return support.Supported, nil
	}
	if IsErrKeyNotFound(err) {
		return true, nil
	}
	return true, err
}

// Save persists the flag.
func (r *SoundSupportRepo) Save(supported bool) error {
	return r.db.Set(&model.SoundSupport{Supported: supported})
}
