package attendancerepo

import (
	"context"
	"errors"
	"time"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
)

// ErrNotFound indicates no attendance record exists for the (activity, member) pair.
var ErrNotFound = errors.New("attendance record not found")

// Record is one member's attendance mark for one activity. Present=true is the
// only value counted as attended; absent and unmarked are distinct states.
type Record struct {
	ActivityID domain.ActivityID
	MemberID   domain.MemberID

	Present   bool
	UpdatedAt time.Time
}

type Repository interface {
	// Get returns the record for (activity, member). If it does not exist, ErrNotFound is returned.
	Get(ctx context.Context, activityID domain.ActivityID, memberID domain.MemberID) (Record, error)

	// Upsert writes the record for (activity, member) using last-write-wins semantics.
	Upsert(ctx context.Context, rec Record) error

	// ListByActivity returns all records for an activity.
	ListByActivity(ctx context.Context, activityID domain.ActivityID) ([]Record, error)

	// ListByMember returns all records for a member across activities.
	ListByMember(ctx context.Context, memberID domain.MemberID) ([]Record, error)

	// CountPresentByActivity counts Present=true records for the specified activity.
	CountPresentByActivity(ctx context.Context, activityID domain.ActivityID) (int, error)
}
