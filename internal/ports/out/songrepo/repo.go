package songrepo

import (
	"context"
	"time"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
)

// Song is the persistence shape used by the song repository.
type Song struct {
	ID        domain.SongID
	ProjectID string

	Title      string
	Author     string
	Tone       string
	OrderIndex int

	CreatedBy domain.MemberID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Asset is a media file registered against a song.
type Asset struct {
	ID     domain.AssetID
	SongID domain.SongID

	Kind       domain.AssetKind
	Title      string
	StorageKey string

	CreatedBy domain.MemberID
	CreatedAt time.Time
}

// Repository provides access to persisted songs and their media assets.
//
// Result ordering expectations:
// - List returns songs ordered by Title ascending (case-insensitive), ID as tiebreaker.
// - ListAssets returns assets ordered by CreatedAt ascending, ID as tiebreaker.
type Repository interface {
	Create(ctx context.Context, s Song) error
	Update(ctx context.Context, s Song) error
	Delete(ctx context.Context, id domain.SongID) error

	GetByID(ctx context.Context, id domain.SongID) (Song, error)
	List(ctx context.Context) ([]Song, error)
	Count(ctx context.Context) (int, error)

	AddAsset(ctx context.Context, a Asset) error
	GetAsset(ctx context.Context, id domain.AssetID) (Asset, error)
	ListAssets(ctx context.Context, songID domain.SongID) ([]Asset, error)
	DeleteAsset(ctx context.Context, id domain.AssetID) error
}
