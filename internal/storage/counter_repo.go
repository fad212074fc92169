package storage

import (
	"github.com/breakminder/breakminder/internal/model"
)

// CounterRepo provides operations for the daily counter singleton.
type CounterRepo struct {
	db *DB
}

// NewCounterRepo creates a new counter repository.
func NewCounterRepo(db *DB) *CounterRepo {
	return &CounterRepo{db: db}
}

// Load retrieves the counter record; a zero counter when none exists.
func (r *CounterRepo) Load() (model.DailyCounter, error) {
	counter := &model.DailyCounter{}
	err := r.db.Get(model.KeyCounter, counter)
	if err == nil {
		return *counter, nil
	}
	if IsErrKeyNotFound(err) {
		return model.DailyCounter{}, nil
	}
	return model.DailyCounter{}, err
}

// Save persists the counter record.
func (r *CounterRepo) Save(counter model.DailyCounter) error {
	return r.db.Set(&counter)
}
