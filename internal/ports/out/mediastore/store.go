package mediastore

import "context"

// Store is the object-storage backend holding media files (audio, sheets,
// avatars, the group logo). Objects are addressed by opaque storage keys; the
// store mints time-limited resolvable URLs for them.
type Store interface {
	// PresignUpload returns a URL the caller can PUT the object to, plus the
	// final storage key the object will live under.
	PresignUpload(ctx context.Context, fileName, contentType string) (url string, key string, err error)

	// ResolveURL returns a readable URL for an existing object.
	ResolveURL(ctx context.Context, key string) (string, error)
}
