package domain

import "errors"

// ErrNotFound is returned by id-addressed lookups that match no row.
var ErrNotFound = errors.New("not found")
