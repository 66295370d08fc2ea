package store

import "errors"

var (
	// ErrStorageUnavailable means the engine could not be opened at all.
	ErrStorageUnavailable = errors.New("store: storage unavailable")
	// ErrNotInitialized is returned by Collection before Initialize succeeds.
	ErrNotInitialized = errors.New("store: not initialized")
	// ErrUnknownCollection names a collection the schema does not define.
	ErrUnknownCollection = errors.New("store: unknown collection")
	// ErrReadOnly is returned when writing through a ReadOnly handle.
	ErrReadOnly = errors.New("store: collection opened read-only")
	// ErrNotFound is returned when a keyed lookup yields no record.
	ErrNotFound = errors.New("store: record not found")
	// ErrWrite wraps an engine failure during a write request.
	ErrWrite = errors.New("store: write failed")
	// ErrRead wraps an engine failure during a read request.
	ErrRead = errors.New("store: read failed")
)
