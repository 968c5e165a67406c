package store

import "errors"

// ErrNotFound is returned when an operation references a note or
// template id absent from the snapshot.
var ErrNotFound = errors.New("not found")

// ErrInvalid is returned (wrapped) when a required field is missing,
// e.g. an empty title.
var ErrInvalid = errors.New("invalid input")
