package domain

import "time"

// ActivityKind discriminates rehearsals from performances.
type ActivityKind string

const (
	ActivityKindRehearsal   ActivityKind = "REHEARSAL"
	ActivityKindPerformance ActivityKind = "PERFORMANCE"
)

// Activity is a scheduled group event that attendance is recorded against.
type Activity struct {
	ID ActivityID

	Title     string
	Kind      ActivityKind
	EventDate time.Time
	Location  *string
	Notes     *string

	CreatedBy MemberID

	CreatedAt time.Time
	UpdatedAt time.Time
}
