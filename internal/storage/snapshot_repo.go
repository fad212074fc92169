package storage

import (
	"github.com/breakminder/breakminder/internal/model"
)

// SnapshotRepo provides operations for the last-applied alarm snapshot.
type SnapshotRepo struct {
	db *DB
}

// NewSnapshotRepo creates a new snapshot repository.
func NewSnapshotRepo(db *DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Get retrieves the snapshot; an empty snapshot when none exists.
func (r *SnapshotRepo) Get() (*model.Snapshot, error) {
	snapshot := &model.Snapshot{}
	err := r.db.Get(model.KeySnapshot, snapshot)
	if err == nil {
		return snapshot, nil
	}
	if IsErrKeyNotFound(err) {
		return model.NewSnapshot(), nil
	}
	return nil, err
}

// Put persists the snapshot. Callers must issue this only after all the
// cancel/create calls it describes have completed.
func (r *SnapshotRepo) Put(snapshot *model.Snapshot) error {
	return r.db.Set(snapshot)
}
