package gateway

import "errors"

// ErrNotFound indicates the requested row does not exist on the backend.
var ErrNotFound = errors.New("gateway: row not found")
