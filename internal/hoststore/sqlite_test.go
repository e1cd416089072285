package hoststore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetmirror/fleetmirror/internal/hoststore"
)

func newTestStore(t *testing.T) *hoststore.SQLiteStore {
	t.Helper()

	store, err := hoststore.NewSQLiteStore(filepath.Join(t.TempDir(), "states.db"), "fleetmirror.0")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestSQLiteStore_ObjectRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	missing, err := store.GetObject(ctx, "battery.level")
	require.NoError(t, err)
	assert.Nil(t, missing, "absent entry is nil, not an error")

	min, max := 0.0, 100.0
	meta := &hoststore.ObjectMeta{
		DisplayName: "level",
		Type:        hoststore.TypeNumber,
		Role:        "value",
		Description: "Battery charge level",
		Readable:    true,
		Unit:        "%",
		Min:         &min,
		Max:         &max,
	}
	require.NoError(t, store.SetObject(ctx, "battery.level", meta, true))

	got, err := store.GetObject(ctx, "battery.level")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, meta, got)
}

func TestSQLiteStore_SetObjectCreateOnly(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	first := &hoststore.ObjectMeta{DisplayName: "state", Type: hoststore.TypeString, Role: "text", Readable: true}
	require.NoError(t, store.SetObject(ctx, "status.state", first, true))

	// createOnly must not clobber the existing descriptor.
	second := &hoststore.ObjectMeta{DisplayName: "state", Type: hoststore.TypeString, Role: "changed", Readable: true}
	require.NoError(t, store.SetObject(ctx, "status.state", second, true))

	got, err := store.GetObject(ctx, "status.state")
	require.NoError(t, err)
	assert.Equal(t, "text", got.Role)

	// Unconditional write overwrites.
	require.NoError(t, store.SetObject(ctx, "status.state", second, false))
	got, err = store.GetObject(ctx, "status.state")
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Role)
}

func TestSQLiteStore_StateRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	_, found, err := store.GetState(ctx, "battery.level")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.SetState(ctx, "battery.level", 72.0, true))

	value, found, err := store.GetState(ctx, "battery.level")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 72.0, value)

	// Overwrite with a different type of value.
	require.NoError(t, store.SetState(ctx, "battery.level", false, true))
	value, found, err = store.GetState(ctx, "battery.level")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, false, value)
}

func TestSQLiteStore_NamespaceQualification(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetState(ctx, "status.state", "online", true))

	// A local write is visible under its fully qualified foreign path.
	value, found, err := store.GetForeignState(ctx, "fleetmirror.0.status.state")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "online", value)

	// A foreign read of a bare path does not resolve the namespace.
	_, found, err = store.GetForeignState(ctx, "status.state")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := hoststore.NewMemoryStore()
	ctx := context.Background()

	meta := &hoststore.ObjectMeta{DisplayName: "state", Type: hoststore.TypeString, Role: "text", Readable: true}
	require.NoError(t, store.SetObject(ctx, "status.state", meta, true))

	// Mutating the caller's copy must not leak into the store.
	meta.Role = "mutated"
	got, err := store.GetObject(ctx, "status.state")
	require.NoError(t, err)
	assert.Equal(t, "text", got.Role)

	require.NoError(t, store.SetState(ctx, "status.state", "online", true))
	value, found, err := store.GetState(ctx, "status.state")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "online", value)
}
