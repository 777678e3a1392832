package songrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/cantoria-vocal/choir-manager-api/internal/adapters/postgres"
	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/songrepo"
)

// Repo is a Postgres implementation of songrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, s songrepo.Song) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(s.ID))
	if err != nil {
		return fmt.Errorf("invalid song id: %w", err)
	}
	creator, err := uuid.Parse(string(s.CreatedBy))
	if err != nil {
		return fmt.Errorf("invalid creator member id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO songs (
			external_id,
			project_id,
			title,
			author,
			tone,
			order_index,
			created_by_member_id,
			created_at,
			updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			(SELECT id FROM members WHERE external_id = $7),
			$8, $9
		)
	`,
		id,
		nullIfEmpty(s.ProjectID),
		s.Title,
		s.Author,
		s.Tone,
		s.OrderIndex,
		creator,
		s.CreatedAt.UTC(),
		s.UpdatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return songrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, s songrepo.Song) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(s.ID))
	if err != nil {
		return songrepo.ErrNotFound
	}

	ct, err := r.pool.Exec(ctx, `
		UPDATE songs
		SET project_id = $2,
		    title = $3,
		    author = $4,
		    tone = $5,
		    order_index = $6,
		    updated_at = $7
		WHERE external_id = $1
	`,
		id,
		nullIfEmpty(s.ProjectID),
		s.Title,
		s.Author,
		s.Tone,
		s.OrderIndex,
		s.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return songrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id domain.SongID) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return songrepo.ErrNotFound
	}
	// media_assets rows cascade via FK.
	ct, err := r.pool.Exec(ctx, `DELETE FROM songs WHERE external_id = $1`, uid)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return songrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.SongID) (songrepo.Song, error) {
	if r.pool == nil {
		return songrepo.Song{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return songrepo.Song{}, songrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, selectSong+` WHERE s.external_id = $1`, uid)
	return scanSong(row)
}

func (r *Repo) List(ctx context.Context) ([]songrepo.Song, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, selectSong+` ORDER BY lower(s.title) ASC, s.external_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]songrepo.Song, 0)
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM songs`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repo) AddAsset(ctx context.Context, a songrepo.Asset) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(a.ID))
	if err != nil {
		return fmt.Errorf("invalid asset id: %w", err)
	}
	songID, err := uuid.Parse(string(a.SongID))
	if err != nil {
		return songrepo.ErrNotFound
	}
	creator, err := uuid.Parse(string(a.CreatedBy))
	if err != nil {
		return fmt.Errorf("invalid creator member id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO media_assets (
			external_id,
			song_id,
			kind,
			title,
			storage_key,
			created_by_member_id,
			created_at
		) VALUES (
			$1,
			(SELECT id FROM songs WHERE external_id = $2),
			$3, $4, $5,
			(SELECT id FROM members WHERE external_id = $6),
			$7
		)
	`,
		id,
		songID,
		string(a.Kind),
		a.Title,
		a.StorageKey,
		creator,
		a.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok {
			switch pe.Code {
			case postgres.UniqueViolationCode:
				return songrepo.ErrAlreadyExists
			case "23502": // not-null violation: song subquery found nothing
				return songrepo.ErrNotFound
			}
		}
		return err
	}
	return nil
}

func (r *Repo) GetAsset(ctx context.Context, id domain.AssetID) (songrepo.Asset, error) {
	if r.pool == nil {
		return songrepo.Asset{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return songrepo.Asset{}, songrepo.ErrAssetNotFound
	}
	row := r.pool.QueryRow(ctx, selectAsset+` WHERE a.external_id = $1`, uid)
	return scanAsset(row)
}

func (r *Repo) ListAssets(ctx context.Context, songID domain.SongID) ([]songrepo.Asset, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(songID))
	if err != nil {
		return []songrepo.Asset{}, nil
	}
	rows, err := r.pool.Query(ctx,
		selectAsset+` WHERE s.external_id = $1 ORDER BY a.created_at ASC, a.external_id ASC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]songrepo.Asset, 0)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) DeleteAsset(ctx context.Context, id domain.AssetID) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return songrepo.ErrAssetNotFound
	}
	ct, err := r.pool.Exec(ctx, `DELETE FROM media_assets WHERE external_id = $1`, uid)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return songrepo.ErrAssetNotFound
	}
	return nil
}

// --- helpers ---

const selectSong = `
	SELECT
		s.external_id,
		s.project_id,
		s.title,
		s.author,
		s.tone,
		s.order_index,
		m.external_id,
		s.created_at,
		s.updated_at
	FROM songs s
	JOIN members m ON m.id = s.created_by_member_id
`

const selectAsset = `
	SELECT
		a.external_id,
		s.external_id,
		a.kind,
		a.title,
		a.storage_key,
		m.external_id,
		a.created_at
	FROM media_assets a
	JOIN songs s ON s.id = a.song_id
	JOIN members m ON m.id = a.created_by_member_id
`

func scanSong(row interface {
	Scan(dest ...any) error
}) (songrepo.Song, error) {
	var (
		externalID uuid.UUID
		projectID  *string
		title      string
		author     string
		tone       string
		orderIndex int
		creatorID  uuid.UUID
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(
		&externalID,
		&projectID,
		&title,
		&author,
		&tone,
		&orderIndex,
		&creatorID,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return songrepo.Song{}, songrepo.ErrNotFound
		}
		return songrepo.Song{}, err
	}
	s := songrepo.Song{
		ID:         domain.SongID(externalID.String()),
		Title:      title,
		Author:     author,
		Tone:       tone,
		OrderIndex: orderIndex,
		CreatedBy:  domain.MemberID(creatorID.String()),
		CreatedAt:  createdAt.UTC(),
		UpdatedAt:  updatedAt.UTC(),
	}
	if projectID != nil {
		s.ProjectID = *projectID
	}
	return s, nil
}

func scanAsset(row interface {
	Scan(dest ...any) error
}) (songrepo.Asset, error) {
	var (
		externalID uuid.UUID
		songID     uuid.UUID
		kind       string
		title      string
		storageKey string
		creatorID  uuid.UUID
		createdAt  time.Time
	)
	if err := row.Scan(
		&externalID,
		&songID,
		&kind,
		&title,
		&storageKey,
		&creatorID,
		&createdAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return songrepo.Asset{}, songrepo.ErrAssetNotFound
		}
		return songrepo.Asset{}, err
	}
	return songrepo.Asset{
		ID:         domain.AssetID(externalID.String()),
		SongID:     domain.SongID(songID.String()),
		Kind:       domain.AssetKind(kind),
		Title:      title,
		StorageKey: storageKey,
		CreatedBy:  domain.MemberID(creatorID.String()),
		CreatedAt:  createdAt.UTC(),
	}, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
