package domain

import "time"

// Song is a repertoire entry. Catalog listings are ordered by Title ascending.
type Song struct {
	ID        SongID
	ProjectID string

	Title      string
	Author     string
	Tone       string
	OrderIndex int

	CreatedBy MemberID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AssetKind discriminates the media attached to a song.
type AssetKind string

const (
	AssetKindAudio AssetKind = "AUDIO"
	AssetKindSheet AssetKind = "SHEET"
)

// MediaAsset is a stored file associated with a song. StorageKey addresses the
// object in the media store; resolvable URLs are minted on demand.
type MediaAsset struct {
	ID     AssetID
	SongID SongID

	Kind       AssetKind
	Title      string
	StorageKey string

	CreatedBy MemberID
	CreatedAt time.Time
}
