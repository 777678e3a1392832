package domain

// SubjectID is the authenticated subject as issued by the identity backend.
// We model it as an opaque identifier: its format is controlled externally.
type SubjectID string

// MemberID is an internal identifier for a member record.
type MemberID string

// SongID is an internal identifier for a repertoire song.
type SongID string

// ActivityID is an internal identifier for a rehearsal/performance record.
type ActivityID string

// AssetID is an internal identifier for a media asset attached to a song.
type AssetID string
