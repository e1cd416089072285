package statesync

import (
	"context"

	"go.uber.org/zap"

	"github.com/fleetmirror/fleetmirror/internal/hoststore"
)

// Reader is the read-side companion to Helper. All failure paths are
// absorbed: a nil result means "unknown", and callers must not distinguish
// a missing entry from a transient store failure.
type Reader struct {
	store hoststore.Store
	log   *zap.Logger
}

// NewReader creates a reader over the given store.
func NewReader(store hoststore.Store, log *zap.Logger) *Reader {
	return &Reader{store: store, log: log}
}

// LocalValue returns the value at a path in the adapter's own namespace, or
// nil if the entry does not exist, carries no meaningful data, or the store
// call fails.
func (r *Reader) LocalValue(ctx context.Context, path string) any {
	value, found, err := r.store.GetState(ctx, path)
	if err != nil {
		r.log.Error("failed to read local state", zap.String("path", path), zap.Error(err))
		return nil
	}
	if !found || !Present(value) {
		return nil
	}
	return value
}

// ForeignValue returns the value at a fully qualified cross-namespace path,
// with the same nil-on-anything-wrong contract as LocalValue.
func (r *Reader) ForeignValue(ctx context.Context, path string) any {
	value, found, err := r.store.GetForeignState(ctx, path)
	if err != nil {
		r.log.Error("failed to read foreign state", zap.String("path", path), zap.Error(err))
		return nil
	}
	if !found || !Present(value) {
		return nil
	}
	return value
}
