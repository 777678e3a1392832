package domain

import "time"

// Member is the domain representation of a member profile.
type Member struct {
	ID      MemberID
	Subject SubjectID

	FullName  string
	Email     string
	AvatarURL *string
	GroupRole string

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MemberSummary is the directory entry shape: just enough for id→name lookups
// (e.g. "created by"). Emails never appear in the directory.
type MemberSummary struct {
	ID       MemberID
	FullName string
}

// UserInfo is the profile of the currently authenticated member as held by the
// client state core. 1:1 with the active session.
type UserInfo struct {
	ID        MemberID
	FullName  string
	AvatarURL *string
	GroupRole string
}
