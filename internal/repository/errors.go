// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// directory service to distinguish between different failure scenarios
// without inspecting driver errors.
package repository

import "errors"

// ErrVenueNotFound is returned when a venue id has no matching row.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when an artist id has no matching row.
var ErrArtistNotFound = errors.New("artist not found")

// ErrShowNotFound is returned when a show id has no matching row.
var ErrShowNotFound = errors.New("show not found")

// ErrDuplicateName is returned when an insert or update collides with
// the unique name constraint of venues or artists.
var ErrDuplicateName = errors.New("duplicate name")

// ErrMissingReference is returned when a show points at a venue or
// artist row that does not exist.
var ErrMissingReference = errors.New("missing referenced row")
