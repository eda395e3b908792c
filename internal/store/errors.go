package store

import "errors"

// ErrNotFound is returned when a record does not exist or is not
// owned by the calling user. Both causes read identically.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint (currently only the users email).
var ErrDuplicate = errors.New("duplicate")
