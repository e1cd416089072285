// Package statesync provides idempotent create-or-update of typed entries in
// the host key/value store. Metadata (shape) and value (payload) have
// independent overwrite policies: the default is create the descriptor once
// and refresh the value on every call.
package statesync

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fleetmirror/fleetmirror/internal/hoststore"
)

// Default roles per value type, used when a caller does not set one.
const (
	DefaultStringRole  = "text"
	DefaultNumberRole  = "value"
	DefaultBooleanRole = "indicator"
)

// Options controls how an entry is created and updated.
type Options struct {
	// Description is free text attached to the descriptor. Defaults to "-".
	Description string

	// Role is the semantic tag used by the host platform for rendering.
	// Defaults depend on the value type.
	Role string

	// Writable marks the entry as writable from the host side.
	Writable bool

	// SkipIfExists leaves an already-present value untouched instead of
	// overwriting it on every sync.
	SkipIfExists bool

	// ForceRecreate unconditionally rewrites the metadata descriptor, even
	// over an existing one. Used when a field's semantics change across
	// adapter versions.
	ForceRecreate bool
}

// NumberOptions extends Options with numeric-entry metadata.
type NumberOptions struct {
	Options

	Unit string
	Min  *float64
	Max  *float64
	Step *float64
}

// Helper performs create-or-update syncs against an injected host store.
type Helper struct {
	store hoststore.Store
	log   *zap.Logger
}

// NewHelper creates a sync helper over the given store.
func NewHelper(store hoststore.Store, log *zap.Logger) *Helper {
	return &Helper{store: store, log: log}
}

// SyncString creates or updates a string entry. Blank values (empty or
// whitespace-only) are skipped silently: no entry is created and no error is
// raised.
func (h *Helper) SyncString(ctx context.Context, path, value string, opts Options) error {
	if strings.TrimSpace(value) == "" {
		h.log.Debug("skipping blank string value", zap.String("path", path))
		return nil
	}
	meta := h.buildMeta(path, hoststore.TypeString, DefaultStringRole, opts)
	return h.sync(ctx, path, value, meta, opts)
}

// SyncNumber creates or updates a numeric entry. A nil value is skipped
// silently; zero is a valid, written value.
func (h *Helper) SyncNumber(ctx context.Context, path string, value *float64, opts NumberOptions) error {
	if value == nil {
		h.log.Debug("skipping absent numeric value", zap.String("path", path))
		return nil
	}
	meta := h.buildMeta(path, hoststore.TypeNumber, DefaultNumberRole, opts.Options)
	meta.Unit = opts.Unit
	meta.Min = opts.Min
	meta.Max = opts.Max
	meta.Step = opts.Step
	return h.sync(ctx, path, *value, meta, opts.Options)
}

// SyncBool creates or updates a boolean entry. A nil value is skipped
// silently; false is a valid, written value.
func (h *Helper) SyncBool(ctx context.Context, path string, value *bool, opts Options) error {
	if value == nil {
		h.log.Debug("skipping absent boolean value", zap.String("path", path))
		return nil
	}
	meta := h.buildMeta(path, hoststore.TypeBoolean, DefaultBooleanRole, opts)
	return h.sync(ctx, path, *value, meta, opts)
}

// sync ensures the descriptor exists (or is rewritten under ForceRecreate)
// and then decides whether to write the value. Store failures propagate to
// the caller.
func (h *Helper) sync(ctx context.Context, path string, value any, meta *hoststore.ObjectMeta, opts Options) error {
	if opts.ForceRecreate {
		if err := h.store.SetObject(ctx, path, meta, false); err != nil {
			return err
		}
	} else {
		existing, err := h.store.GetObject(ctx, path)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := h.store.SetObject(ctx, path, meta, true); err != nil {
				return err
			}
		}
	}

	if opts.SkipIfExists {
		prior, found, err := h.store.GetState(ctx, path)
		if err != nil {
			return err
		}
		if found && Present(prior) {
			h.log.Debug("keeping existing value", zap.String("path", path))
			return nil
		}
	}

	return h.store.SetState(ctx, path, value, true)
}

// buildMeta assembles the metadata descriptor for an entry. The display name
// is the last segment of the dot-separated path.
func (*Helper) buildMeta(path string, typ hoststore.ValueType, defaultRole string, opts Options) *hoststore.ObjectMeta {
	desc := opts.Description
	if desc == "" {
		desc = "-"
	}
	role := opts.Role
	if role == "" {
		role = defaultRole
	}

	segments := strings.Split(path, ".")
	return &hoststore.ObjectMeta{
		DisplayName: segments[len(segments)-1],
		Type:        typ,
		Role:        role,
		Description: desc,
		Readable:    true,
		Writable:    opts.Writable,
	}
}
