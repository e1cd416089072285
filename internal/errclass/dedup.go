package errclass

import (
	"context"

	"github.com/fleetmirror/fleetmirror/internal/hoststore"
)

// LastReportedErrorPath is the host-store entry holding the most recently
// reported unknown-error message.
const LastReportedErrorPath = "info.lastReportedError"

// storeDedup keeps the dedup state in a host-store entry, making the
// otherwise hidden read/write side effect an explicit dependency.
type storeDedup struct {
	store hoststore.Store
	path  string
}

// NewStoreDedup creates a DedupStore backed by the host store at path.
// An empty path uses LastReportedErrorPath.
func NewStoreDedup(store hoststore.Store, path string) DedupStore {
	if path == "" {
		path = LastReportedErrorPath
	}
	return &storeDedup{store: store, path: path}
}

func (d *storeDedup) LastReported(ctx context.Context) (string, error) {
	value, found, err := d.store.GetState(ctx, d.path)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}
	msg, _ := value.(string)
	return msg, nil
}

func (d *storeDedup) SetLastReported(ctx context.Context, msg string) error {
	return d.store.SetState(ctx, d.path, msg, true)
}
