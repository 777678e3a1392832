package memberrepo

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
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/memberrepo"
)

// Repo is a Postgres implementation of memberrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, m memberrepo.Member) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(m.ID))
	if err != nil {
		return fmt.Errorf("invalid member id: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO members (
			external_id,
			subject_sub,
			full_name,
			email,
			avatar_url,
			group_role,
			is_active,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		id,
		string(m.Subject),
		m.FullName,
		m.Email,
		m.AvatarURL,
		m.GroupRole,
		m.IsActive,
		m.CreatedAt.UTC(),
		m.UpdatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			// Determine which unique constraint was violated.
			switch pe.ConstraintName {
			case "members_subject_unique":
				return memberrepo.ErrSubjectAlreadyBound
			case "members_external_id_unique":
				return memberrepo.ErrAlreadyExists
			default:
				return err
			}
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, m memberrepo.Member) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(m.ID))
	if err != nil {
		return fmt.Errorf("invalid member id: %w", err)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		existing, err := getMemberByExternalID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing.Subject != m.Subject {
			return memberrepo.ErrSubjectAlreadyBound
		}

		ct, err := tx.Exec(ctx, `
			UPDATE members
			SET full_name = $2,
			    email = $3,
			    avatar_url = $4,
			    group_role = $5,
			    is_active = $6,
			    updated_at = $7
			WHERE external_id = $1
		`,
			id,
			m.FullName,
			m.Email,
			m.AvatarURL,
			m.GroupRole,
			m.IsActive,
			m.UpdatedAt.UTC(),
		)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return memberrepo.ErrNotFound
		}
		return nil
	})
}

func (r *Repo) GetByID(ctx context.Context, id domain.MemberID) (memberrepo.Member, error) {
	if r.pool == nil {
		return memberrepo.Member{}, errors.New("nil postgres pool")
	}
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}
	return getMemberByExternalID(ctx, r.pool, uid)
}

func (r *Repo) GetBySubject(ctx context.Context, subject domain.SubjectID) (memberrepo.Member, error) {
	if r.pool == nil {
		return memberrepo.Member{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT external_id, subject_sub, full_name, email, avatar_url, group_role,
		       is_active, created_at, updated_at
		FROM members
		WHERE subject_sub = $1
	`, string(subject))
	return scanMember(row)
}

func (r *Repo) List(ctx context.Context, includeInactive bool) ([]memberrepo.Member, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	where := ""
	if !includeInactive {
		where = "WHERE is_active = true"
	}

	rows, err := r.pool.Query(ctx, `
		SELECT external_id, subject_sub, full_name, email, avatar_url, group_role,
		       is_active, created_at, updated_at
		FROM members
		`+where+`
		ORDER BY lower(full_name) ASC, external_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]memberrepo.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// --- helpers ---

func scanMember(row interface {
	Scan(dest ...any) error
}) (memberrepo.Member, error) {
	var (
		externalID uuid.UUID
		sub        string
		fullName   string
		email      string
		avatarURL  *string
		groupRole  string
		isActive   bool
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(
		&externalID,
		&sub,
		&fullName,
		&email,
		&avatarURL,
		&groupRole,
		&isActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return memberrepo.Member{}, memberrepo.ErrNotFound
		}
		return memberrepo.Member{}, err
	}
	return memberrepo.Member{
		ID:        domain.MemberID(externalID.String()),
		Subject:   domain.SubjectID(sub),
		FullName:  fullName,
		Email:     email,
		AvatarURL: avatarURL,
		GroupRole: groupRole,
		IsActive:  isActive,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}, nil
}

func getMemberByExternalID(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, id uuid.UUID) (memberrepo.Member, error) {
	row := q.QueryRow(ctx, `
		SELECT external_id, subject_sub, full_name, email, avatar_url, group_role,
		       is_active, created_at, updated_at
		FROM members
		WHERE external_id = $1
	`, id)
	return scanMember(row)
}
