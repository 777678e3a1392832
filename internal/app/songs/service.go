package songs

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	clockport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/clock"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/mediastore"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/songrepo"
)

// Service manages the repertoire: songs, their media assets, and the playable
// tracks derived from audio assets.
type Service struct {
	repo  songrepo.Repository
	media mediastore.Store
	clk   clockport.Clock

	newSongID  func() domain.SongID
	newAssetID func() domain.AssetID
}

func NewService(repo songrepo.Repository, media mediastore.Store, clk clockport.Clock) *Service {
	return &Service{
		repo:  repo,
		media: media,
		clk:   clk,
		newSongID: func() domain.SongID {
			return domain.SongID(uuid.NewString())
		},
		newAssetID: func() domain.AssetID {
			return domain.AssetID(uuid.NewString())
		},
	}
}

// List returns the catalog ordered by title ascending.
func (s *Service) List(ctx context.Context) ([]domain.Song, error) {
	ss, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Song, 0, len(ss))
	for _, rec := range ss {
		out = append(out, toDomain(rec))
	}
	return out, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Get(ctx context.Context, id domain.SongID) (domain.Song, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Song{}, notFoundTo404(err)
	}
	return toDomain(rec), nil
}

func (s *Service) Create(ctx context.Context, createdBy domain.MemberID, in CreateInput) (domain.Song, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Song{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid title",
			Details: map[string]any{"title": "must be non-empty"},
		}
	}

	now := s.clk.Now()
	rec := songrepo.Song{
		ID:         s.newSongID(),
		ProjectID:  strings.TrimSpace(in.ProjectID),
		Title:      title,
		Author:     strings.TrimSpace(in.Author),
		Tone:       strings.TrimSpace(in.Tone),
		OrderIndex: in.OrderIndex,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return domain.Song{}, err
	}
	return toDomain(rec), nil
}

func (s *Service) Update(ctx context.Context, id domain.SongID, in UpdateInput) (domain.Song, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Song{}, notFoundTo404(err)
	}

	if in.Title.IsSpecified() {
		if in.Title.IsNull() {
			return domain.Song{}, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "invalid title",
				Details: map[string]any{"title": "cannot be null"},
			}
		}
		title := strings.TrimSpace(in.Title.Value())
		if title == "" {
			return domain.Song{}, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "invalid title",
				Details: map[string]any{"title": "must be non-empty"},
			}
		}
		rec.Title = title
	}
	if in.ProjectID.IsSpecified() {
		if in.ProjectID.IsNull() {
			rec.ProjectID = ""
		} else {
			rec.ProjectID = strings.TrimSpace(in.ProjectID.Value())
		}
	}
	if in.Author.IsSpecified() && !in.Author.IsNull() {
		rec.Author = strings.TrimSpace(in.Author.Value())
	}
	if in.Tone.IsSpecified() && !in.Tone.IsNull() {
		rec.Tone = strings.TrimSpace(in.Tone.Value())
	}
	if in.OrderIndex.IsSpecified() && !in.OrderIndex.IsNull() {
		rec.OrderIndex = in.OrderIndex.Value()
	}

	rec.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, rec); err != nil {
		return domain.Song{}, notFoundTo404(err)
	}
	return toDomain(rec), nil
}

func (s *Service) Delete(ctx context.Context, id domain.SongID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundTo404(err)
	}
	return nil
}

// RegisterAsset records a media file for a song and mints the upload URL the
// client PUTs the file's contents to.
func (s *Service) RegisterAsset(ctx context.Context, songID domain.SongID, createdBy domain.MemberID, in RegisterAssetInput) (RegisteredAsset, error) {
	if in.Kind != domain.AssetKindAudio && in.Kind != domain.AssetKindSheet {
		return RegisteredAsset{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid kind",
			Details: map[string]any{"kind": "must be AUDIO or SHEET"},
		}
	}
	if _, err := s.repo.GetByID(ctx, songID); err != nil {
		return RegisteredAsset{}, notFoundTo404(err)
	}

	uploadURL, key, err := s.media.PresignUpload(ctx, in.FileName, in.ContentType)
	if err != nil {
		return RegisteredAsset{}, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = strings.TrimSpace(in.FileName)
	}
	rec := songrepo.Asset{
		ID:         s.newAssetID(),
		SongID:     songID,
		Kind:       in.Kind,
		Title:      title,
		StorageKey: key,
		CreatedBy:  createdBy,
		CreatedAt:  s.clk.Now(),
	}
	if err := s.repo.AddAsset(ctx, rec); err != nil {
		return RegisteredAsset{}, notFoundTo404(err)
	}
	return RegisteredAsset{Asset: assetToDomain(rec), UploadURL: uploadURL}, nil
}

func (s *Service) ListAssets(ctx context.Context, songID domain.SongID) ([]domain.MediaAsset, error) {
	if _, err := s.repo.GetByID(ctx, songID); err != nil {
		return nil, notFoundTo404(err)
	}
	as, err := s.repo.ListAssets(ctx, songID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MediaAsset, 0, len(as))
	for _, a := range as {
		out = append(out, assetToDomain(a))
	}
	return out, nil
}

func (s *Service) DeleteAsset(ctx context.Context, id domain.AssetID) error {
	if err := s.repo.DeleteAsset(ctx, id); err != nil {
		return notFoundTo404(err)
	}
	return nil
}

// Tracks resolves a song's audio assets to playable tracks. Sheet assets are
// excluded; each track's URL comes from the media store.
func (s *Service) Tracks(ctx context.Context, songID domain.SongID) ([]domain.Track, error) {
	song, err := s.repo.GetByID(ctx, songID)
	if err != nil {
		return nil, notFoundTo404(err)
	}
	as, err := s.repo.ListAssets(ctx, songID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Track, 0, len(as))
	for _, a := range as {
		if a.Kind != domain.AssetKindAudio {
			continue
		}
		url, err := s.media.ResolveURL(ctx, a.StorageKey)
		if err != nil {
			return nil, err
		}
		title := a.Title
		if title == "" {
			title = song.Title
		}
		out = append(out, domain.Track{
			ID:     string(a.ID),
			Title:  title,
			Author: song.Author,
			URL:    url,
		})
	}
	return out, nil
}

func notFoundTo404(err error) error {
	switch {
	case errors.Is(err, songrepo.ErrNotFound):
		return &Error{
			Status:  404,
			Code:    "SONG_NOT_FOUND",
			Message: "No song exists with the requested id.",
		}
	case errors.Is(err, songrepo.ErrAssetNotFound):
		return &Error{
			Status:  404,
			Code:    "ASSET_NOT_FOUND",
			Message: "No media asset exists with the requested id.",
		}
	default:
		return err
	}
}

func toDomain(rec songrepo.Song) domain.Song {
	return domain.Song{
		ID:         rec.ID,
		ProjectID:  rec.ProjectID,
		Title:      rec.Title,
		Author:     rec.Author,
		Tone:       rec.Tone,
		OrderIndex: rec.OrderIndex,
		CreatedBy:  rec.CreatedBy,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func assetToDomain(a songrepo.Asset) domain.MediaAsset {
	return domain.MediaAsset{
		ID:         a.ID,
		SongID:     a.SongID,
		Kind:       a.Kind,
		Title:      a.Title,
		StorageKey: a.StorageKey,
		CreatedBy:  a.CreatedBy,
		CreatedAt:  a.CreatedAt,
	}
}
