package service

import "errors"

// Errors returned by Directory.  Callers match them with errors.Is and
// map them to user-facing messages; the underlying store error is
// logged and never included.
var (
	// ErrValidation means the field set was malformed or incomplete.
	ErrValidation = errors.New("invalid fields")
	// ErrNotFound means the id has no matching row.
	ErrNotFound = errors.New("not found")
	// ErrReferential means a show references a venue or artist that does
	// not exist.
	ErrReferential = errors.New("referenced venue or artist does not exist")
	// ErrStoreUnavailable means the store failed and the unit of work was
	// rolled back.
	ErrStoreUnavailable = errors.New("store unavailable")
)
