package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint rejects a write, e.g.
// blocking an IP address that is already blocked.
var ErrDuplicate = errors.New("duplicate record")
