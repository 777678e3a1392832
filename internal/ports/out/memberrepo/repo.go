package memberrepo

import (
	"context"
	"time"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
)

// Member is the persistence shape used by the member repository. It is an
// internal record, not an HTTP DTO.
type Member struct {
	ID      domain.MemberID
	Subject domain.SubjectID

	// FullName is the member's display name as shown in the directory.
	FullName string
	// Email is stored for the member profile, but is not safe to return in the directory.
	Email string
	// AvatarURL points at the member's avatar in the media store; nil means unset.
	AvatarURL *string
	// GroupRole is a free-form role label ("singer", "conductor", ...).
	GroupRole string

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository provides access to persisted members.
//
// Result ordering expectations:
// - List should return results ordered by FullName ascending to keep behavior deterministic.
type Repository interface {
	Create(ctx context.Context, m Member) error
	Update(ctx context.Context, m Member) error

	GetByID(ctx context.Context, id domain.MemberID) (Member, error)
	GetBySubject(ctx context.Context, subject domain.SubjectID) (Member, error)

	List(ctx context.Context, includeInactive bool) ([]Member, error)
}
