package songrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/songrepo"
)

// Repo is an in-memory implementation of songrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	songs  map[domain.SongID]songrepo.Song
	assets map[domain.AssetID]songrepo.Asset
}

func NewRepo() *Repo {
	return &Repo{
		songs:  make(map[domain.SongID]songrepo.Song),
		assets: make(map[domain.AssetID]songrepo.Asset),
	}
}

func (r *Repo) Create(ctx context.Context, s songrepo.Song) error {
	_ = ctx
	if s.ID == "" {
		return songrepo.ErrAlreadyExists
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.songs[s.ID]; ok {
		return songrepo.ErrAlreadyExists
	}
	r.songs[s.ID] = s
	return nil
}

func (r *Repo) Update(ctx context.Context, s songrepo.Song) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.songs[s.ID]; !ok {
		return songrepo.ErrNotFound
	}
	r.songs[s.ID] = s
	return nil
}

func (r *Repo) Delete(ctx context.Context, id domain.SongID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.songs[id]; !ok {
		return songrepo.ErrNotFound
	}
	delete(r.songs, id)
	// Assets do not outlive their song.
	for aid, a := range r.assets {
		if a.SongID == id {
			delete(r.assets, aid)
		}
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.SongID) (songrepo.Song, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.songs[id]
	if !ok {
		return songrepo.Song{}, songrepo.ErrNotFound
	}
	return s, nil
}

func (r *Repo) List(ctx context.Context) ([]songrepo.Song, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]songrepo.Song, 0, len(r.songs))
	for _, s := range r.songs {
		out = append(out, s)
	}
	sortSongsByTitle(out)
	return out, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.songs), nil
}

func (r *Repo) AddAsset(ctx context.Context, a songrepo.Asset) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.songs[a.SongID]; !ok {
		return songrepo.ErrNotFound
	}
	r.assets[a.ID] = a
	return nil
}

func (r *Repo) GetAsset(ctx context.Context, id domain.AssetID) (songrepo.Asset, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.assets[id]
	if !ok {
		return songrepo.Asset{}, songrepo.ErrAssetNotFound
	}
	return a, nil
}

func (r *Repo) ListAssets(ctx context.Context, songID domain.SongID) ([]songrepo.Asset, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]songrepo.Asset, 0)
	for _, a := range r.assets {
		if a.SongID == songID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return string(out[i].ID) < string(out[j].ID)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Repo) DeleteAsset(ctx context.Context, id domain.AssetID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assets[id]; !ok {
		return songrepo.ErrAssetNotFound
	}
	delete(r.assets, id)
	return nil
}

func sortSongsByTitle(ss []songrepo.Song) {
	sort.Slice(ss, func(i, j int) bool {
		ti := strings.ToLower(ss[i].Title)
		tj := strings.ToLower(ss[j].Title)
		if ti == tj {
			return string(ss[i].ID) < string(ss[j].ID)
		}
		return ti < tj
	})
}
