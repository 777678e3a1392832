package attendancerepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/attendancerepo"
)

// Repo is a Postgres implementation of attendancerepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Get(ctx context.Context, activityID domain.ActivityID, memberID domain.MemberID) (attendancerepo.Record, error) {
	if r.pool == nil {
		return attendancerepo.Record{}, errors.New("nil postgres pool")
	}
	aid, err := uuid.Parse(string(activityID))
	if err != nil {
		return attendancerepo.Record{}, attendancerepo.ErrNotFound
	}
	mid, err := uuid.Parse(string(memberID))
	if err != nil {
		return attendancerepo.Record{}, attendancerepo.ErrNotFound
	}

	row := r.pool.QueryRow(ctx, `
		SELECT r.present, r.updated_at
		FROM attendance_records r
		JOIN activities a ON a.id = r.activity_id
		JOIN members m ON m.id = r.member_id
		WHERE a.external_id = $1 AND m.external_id = $2
	`, aid, mid)
	var present bool
	var updatedAt time.Time
	if err := row.Scan(&present, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendancerepo.Record{}, attendancerepo.ErrNotFound
		}
		return attendancerepo.Record{}, err
	}
	return attendancerepo.Record{
		ActivityID: activityID,
		MemberID:   memberID,
		Present:    present,
		UpdatedAt:  updatedAt.UTC(),
	}, nil
}

func (r *Repo) Upsert(ctx context.Context, rec attendancerepo.Record) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	aid, err := uuid.Parse(string(rec.ActivityID))
	if err != nil {
		return fmt.Errorf("invalid activity id: %w", err)
	}
	mid, err := uuid.Parse(string(rec.MemberID))
	if err != nil {
		return fmt.Errorf("invalid member id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO attendance_records (activity_id, member_id, present, updated_at)
		VALUES (
			(SELECT id FROM activities WHERE external_id = $1),
			(SELECT id FROM members WHERE external_id = $2),
			$3,
			$4
		)
		ON CONFLICT (activity_id, member_id) DO UPDATE
		SET present = EXCLUDED.present,
		    updated_at = EXCLUDED.updated_at
	`, aid, mid, rec.Present, rec.UpdatedAt.UTC())
	return err
}

func (r *Repo) ListByActivity(ctx context.Context, activityID domain.ActivityID) ([]attendancerepo.Record, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	aid, err := uuid.Parse(string(activityID))
	if err != nil {
		return []attendancerepo.Record{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT m.external_id, r.present, r.updated_at
		FROM attendance_records r
		JOIN activities a ON a.id = r.activity_id
		JOIN members m ON m.id = r.member_id
		WHERE a.external_id = $1
		ORDER BY m.external_id ASC
	`, aid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]attendancerepo.Record, 0)
	for rows.Next() {
		var mid uuid.UUID
		var present bool
		var updatedAt time.Time
		if err := rows.Scan(&mid, &present, &updatedAt); err != nil {
			return nil, err
		}
		out = append(out, attendancerepo.Record{
			ActivityID: activityID,
			MemberID:   domain.MemberID(mid.String()),
			Present:    present,
			UpdatedAt:  updatedAt.UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) ListByMember(ctx context.Context, memberID domain.MemberID) ([]attendancerepo.Record, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	mid, err := uuid.Parse(string(memberID))
	if err != nil {
		return []attendancerepo.Record{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT a.external_id, r.present, r.updated_at
		FROM attendance_records r
		JOIN activities a ON a.id = r.activity_id
		JOIN members m ON m.id = r.member_id
		WHERE m.external_id = $1
		ORDER BY a.external_id ASC
	`, mid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]attendancerepo.Record, 0)
	for rows.Next() {
		var aid uuid.UUID
		var present bool
		var updatedAt time.Time
		if err := rows.Scan(&aid, &present, &updatedAt); err != nil {
			return nil, err
		}
		out = append(out, attendancerepo.Record{
			ActivityID: domain.ActivityID(aid.String()),
			MemberID:   memberID,
			Present:    present,
			UpdatedAt:  updatedAt.UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) CountPresentByActivity(ctx context.Context, activityID domain.ActivityID) (int, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	aid, err := uuid.Parse(string(activityID))
	if err != nil {
		return 0, nil
	}
	row := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM attendance_records r
		JOIN activities a ON a.id = r.activity_id
		WHERE a.external_id = $1 AND r.present = true
	`, aid)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
