package gateway

import (
	"context"
	"time"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
)

// Session is the authenticated session held by the backend, carrying at least
// the user's member id.
type Session struct {
	UserID domain.MemberID
}

// AttendanceEntry is one attendance row for the session user, joined with the
// owning activity's event date.
type AttendanceEntry struct {
	ActivityID domain.ActivityID
	Present    bool
	EventDate  time.Time
}

// Gateway is the remote data backend as consumed by the client state core.
// Implementations parse wire rows into domain types at this boundary; untyped
// response shapes never leak past it.
//
// Every method may fail with a transport or validation error. The state slices
// absorb those errors (log, keep prior state); the gateway itself just reports them.
type Gateway interface {
	// GetSession resolves the active session, if any. ok=false with a nil error
	// means no session exists, which is not a failure.
	GetSession(ctx context.Context) (s Session, ok bool, err error)

	GetGroupInfo(ctx context.Context) (domain.GroupInfo, error)

	// GetProfile fetches the profile row for a member id ("my profile" lookups).
	GetProfile(ctx context.Context, id domain.MemberID) (domain.UserInfo, error)

	// ListMembers fetches the full member directory (id/name pairs).
	ListMembers(ctx context.Context) ([]domain.MemberSummary, error)

	// ListSongs fetches the song catalog ordered by title ascending.
	ListSongs(ctx context.Context) ([]domain.Song, error)

	// CountSongs is the count-only variant used by attendance statistics.
	CountSongs(ctx context.Context) (int, error)

	// ListAttendance fetches every attendance record for the given member.
	ListAttendance(ctx context.Context, id domain.MemberID) ([]AttendanceEntry, error)
}
