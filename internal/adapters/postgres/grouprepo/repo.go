package grouprepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/grouprepo"
)

// Repo is a Postgres implementation of grouprepo.Repository. The group_info
// table holds a single row pinned to id = 1.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Get(ctx context.Context) (grouprepo.Group, error) {
	if r.pool == nil {
		return grouprepo.Group{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT name, logo_url, updated_at
		FROM group_info
		WHERE id = 1
	`)
	var (
		name      string
		logoURL   *string
		updatedAt time.Time
	)
	if err := row.Scan(&name, &logoURL, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return grouprepo.Group{}, grouprepo.ErrNotFound
		}
		return grouprepo.Group{}, err
	}
	return grouprepo.Group{
		Name:      name,
		LogoURL:   logoURL,
		UpdatedAt: updatedAt.UTC(),
	}, nil
}

func (r *Repo) Update(ctx context.Context, g grouprepo.Group) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO group_info (id, name, logo_url, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    logo_url = EXCLUDED.logo_url,
		    updated_at = EXCLUDED.updated_at
	`, g.Name, g.LogoURL, g.UpdatedAt.UTC())
	return err
}
