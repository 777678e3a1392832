package activityrepo

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
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/activityrepo"
)

// Repo is a Postgres implementation of activityrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, a activityrepo.Activity) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(a.ID))
	if err != nil {
		return fmt.Errorf("invalid activity id: %w", err)
	}
	creator, err := uuid.Parse(string(a.CreatedBy))
	if err != nil {
		return fmt.Errorf("invalid creator member id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO activities (
			external_id,
			title,
			kind,
			event_date,
			location,
			notes,
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
		a.Title,
		string(a.Kind),
		a.EventDate.UTC(),
		a.Location,
		a.Notes,
		creator,
		a.CreatedAt.UTC(),
		a.UpdatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return activityrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, a activityrepo.Activity) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(a.ID))
	if err != nil {
		return activityrepo.ErrNotFound
	}

	ct, err := r.pool.Exec(ctx, `
		UPDATE activities
		SET title = $2,
		    kind = $3,
		    event_date = $4,
		    location = $5,
		    notes = $6,
		    updated_at = $7
		WHERE external_id = $1
	`,
		id,
		a.Title,
		string(a.Kind),
		a.EventDate.UTC(),
		a.Location,
		a.Notes,
		a.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return activityrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id domain.ActivityID) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return activityrepo.ErrNotFound
	}
	// attendance rows cascade via FK.
	ct, err := r.pool.Exec(ctx, `DELETE FROM activities WHERE external_id = $1`, uid)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return activityrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ActivityID) (activityrepo.Activity, error) {
	if r.pool == nil {
		return activityrepo.Activity{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return activityrepo.Activity{}, activityrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, selectActivity+` WHERE a.external_id = $1`, uid)
	return scanActivity(row)
}

func (r *Repo) List(ctx context.Context) ([]activityrepo.Activity, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, selectActivity+` ORDER BY a.event_date ASC, a.external_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activityrepo.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
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

// --- helpers ---

const selectActivity = `
	SELECT
		a.external_id,
		a.title,
		a.kind,
		a.event_date,
		a.location,
		a.notes,
		m.external_id,
		a.created_at,
		a.updated_at
	FROM activities a
	JOIN members m ON m.id = a.created_by_member_id
`

func scanActivity(row interface {
	Scan(dest ...any) error
}) (activityrepo.Activity, error) {
	var (
		externalID uuid.UUID
		title      string
		kind       string
		eventDate  time.Time
		location   *string
		notes      *string
		creatorID  uuid.UUID
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(
		&externalID,
		&title,
		&kind,
		&eventDate,
		&location,
		&notes,
		&creatorID,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return activityrepo.Activity{}, activityrepo.ErrNotFound
		}
		return activityrepo.Activity{}, err
	}
	return activityrepo.Activity{
		ID:        domain.ActivityID(externalID.String()),
		Title:     title,
		Kind:      domain.ActivityKind(kind),
		EventDate: eventDate.UTC(),
		Location:  location,
		Notes:     notes,
		CreatedBy: domain.MemberID(creatorID.String()),
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}, nil
}
