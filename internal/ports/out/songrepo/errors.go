package songrepo

import "errors"

var (
	// ErrNotFound indicates the requested song does not exist.
	ErrNotFound = errors.New("song not found")

	// ErrAlreadyExists indicates a song already exists with the provided ID.
	ErrAlreadyExists = errors.New("song already exists")

	// ErrAssetNotFound indicates the requested media asset does not exist.
	ErrAssetNotFound = errors.New("media asset not found")
)
