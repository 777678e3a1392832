package grouprepo

import "errors"

// ErrNotFound indicates the singleton group record has not been seeded yet.
var ErrNotFound = errors.New("group record not found")
