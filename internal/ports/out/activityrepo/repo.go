package activityrepo

import (
	"context"
	"time"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
)

// Activity is the persistence shape used by the activity repository.
type Activity struct {
	ID domain.ActivityID

	Title     string
	Kind      domain.ActivityKind
	EventDate time.Time
	Location  *string
	Notes     *string

	CreatedBy domain.MemberID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository provides access to persisted activities.
//
// Result ordering expectations:
// - List returns activities ordered by EventDate ascending, ID as tiebreaker.
type Repository interface {
	Create(ctx context.Context, a Activity) error
	Update(ctx context.Context, a Activity) error
	Delete(ctx context.Context, id domain.ActivityID) error

	GetByID(ctx context.Context, id domain.ActivityID) (Activity, error)
	List(ctx context.Context) ([]Activity, error)
}
