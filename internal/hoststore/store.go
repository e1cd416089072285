// Package hoststore defines the key/value store boundary that the adapter
// mirrors vehicle telemetry into. Entries are addressed by dot-separated
// paths and split into an object (metadata descriptor) and a state (the
// current value plus an acknowledged flag), following the host platform's
// object/state model.
package hoststore

import (
	"context"
	"fmt"
)

// ValueType identifies the primitive type of an entry's value.
type ValueType string

const (
	// TypeString is a free-text entry.
	TypeString ValueType = "string"

	// TypeNumber is a numeric entry, optionally carrying unit/min/max/step.
	TypeNumber ValueType = "number"

	// TypeBoolean is a true/false entry.
	TypeBoolean ValueType = "boolean"
)

// ObjectMeta is the metadata descriptor attached to an entry.
type ObjectMeta struct {
	DisplayName string    `json:"name"`
	Type        ValueType `json:"type"`
	Role        string    `json:"role"`
	Description string    `json:"desc"`
	Readable    bool      `json:"read"`
	Writable    bool      `json:"write"`

	// Numeric entries only; omitted when unset.
	Unit string   `json:"unit,omitempty"`
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Step *float64 `json:"step,omitempty"`
}

// Store is the narrow host key/value store interface the sync core depends
// on. Local paths are relative to the adapter's namespace; foreign paths are
// fully qualified. Absence is not an error: GetObject returns (nil, nil) and
// GetState returns (nil, false, nil) for missing entries.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go Store
type Store interface {
	// GetObject returns the metadata descriptor at path, or nil if absent.
	GetObject(ctx context.Context, path string) (*ObjectMeta, error)

	// SetObject writes the metadata descriptor at path. When createOnly is
	// true an existing descriptor is left untouched.
	SetObject(ctx context.Context, path string, meta *ObjectMeta, createOnly bool) error

	// GetState returns the current value at path and whether one exists.
	GetState(ctx context.Context, path string) (any, bool, error)

	// SetState writes the value at path with the given acknowledged flag.
	SetState(ctx context.Context, path string, value any, ack bool) error

	// GetForeignState reads a fully qualified path across namespaces.
	GetForeignState(ctx context.Context, path string) (any, bool, error)
}

// StoreError wraps an I/O failure from the host store. Write-side callers
// propagate it; read helpers absorb it.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("host store %s %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError for the given operation and path.
func NewStoreError(op, path string, err error) error {
	return &StoreError{Op: op, Path: path, Err: err}
}
