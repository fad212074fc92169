package storage

import (
	"github.com/breakminder/breakminder/internal/model"
)

// OneTimeRepo provides operations for the one-shot timer resumption record.
type OneTimeRepo struct {
	db *DB
}

// NewOneTimeRepo creates a new one-shot timer repository.
func NewOneTimeRepo(db *DB) *OneTimeRepo {
	return &OneTimeRepo{db: db}
}

// Get retrieves the in-flight countdown record, nil when none exists.
func (r *OneTimeRepo) Get() (*model.OneTimeTimer, error) {
	timer := &model.OneTimeTimer{}
	err := r.db.Get(model.KeyOneTime, timer)
	if err == nil {
		return timer, nil
	}
	if IsErrKeyNotFound(err) {
		return nil, nil
	}
	return nil, err
}

// Put persists the countdown record.
func (r *OneTimeRepo) Put(timer *model.OneTimeTimer) error {
	return r.db.Set(timer)
}

// Clear removes the countdown record. Clearing an absent record is a no-op.
func (r *OneTimeRepo) Clear() error {
	return r.db.Delete(model.KeyOneTime)
}
