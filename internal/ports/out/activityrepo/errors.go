package activityrepo

import "errors"

var (
	// ErrNotFound indicates the requested activity does not exist.
	ErrNotFound = errors.New("activity not found")

	// ErrAlreadyExists indicates an activity already exists with the provided ID.
	ErrAlreadyExists = errors.New("activity already exists")
)
