package httpapi

import (
	"time"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
)

// Wire DTOs for the REST surface. PATCH bodies use nullable.Nullable so
// omitted, null, and valued fields stay distinguishable.

type GroupInfoResponse struct {
	Name      string    `json:"name"`
	LogoUrl   *string   `json:"logoUrl"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UpdateGroupRequest struct {
	Name    nullable.Nullable[string] `json:"name,omitempty"`
	LogoUrl nullable.Nullable[string] `json:"logoUrl,omitempty"`
}

type SessionResponse struct {
	UserId string `json:"userId"`
}

type MemberDirectoryEntry struct {
	MemberId string `json:"memberId"`
	FullName string `json:"fullName"`
}

type ListMembersResponse struct {
	Members []MemberDirectoryEntry `json:"members"`
}

type MemberProfileResponse struct {
	MemberId  string  `json:"memberId"`
	FullName  string  `json:"fullName"`
	AvatarUrl *string `json:"avatarUrl"`
	GroupRole string  `json:"groupRole"`
}

type MyProfileResponse struct {
	MemberId  string              `json:"memberId"`
	FullName  string              `json:"fullName"`
	Email     openapi_types.Email `json:"email"`
	AvatarUrl *string             `json:"avatarUrl"`
	GroupRole string              `json:"groupRole"`
	IsActive  bool                `json:"isActive"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type CreateMyProfileRequest struct {
	FullName  string              `json:"fullName"`
	Email     openapi_types.Email `json:"email"`
	AvatarUrl *string             `json:"avatarUrl,omitempty"`
	GroupRole string              `json:"groupRole,omitempty"`
}

type UpdateMyProfileRequest struct {
	FullName  nullable.Nullable[string]              `json:"fullName,omitempty"`
	Email     nullable.Nullable[openapi_types.Email] `json:"email,omitempty"`
	AvatarUrl nullable.Nullable[string]              `json:"avatarUrl,omitempty"`
	GroupRole nullable.Nullable[string]              `json:"groupRole,omitempty"`
}

type SongResponse struct {
	SongId     string    `json:"songId"`
	ProjectId  *string   `json:"projectId"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Tone       string    `json:"tone"`
	OrderIndex int       `json:"orderIndex"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ListSongsResponse struct {
	Songs []SongResponse `json:"songs"`
}

type SongCountResponse struct {
	Count int `json:"count"`
}

type CreateSongRequest struct {
	ProjectId  string `json:"projectId,omitempty"`
	Title      string `json:"title"`
	Author     string `json:"author,omitempty"`
	Tone       string `json:"tone,omitempty"`
	OrderIndex int    `json:"orderIndex,omitempty"`
}

type UpdateSongRequest struct {
	ProjectId  nullable.Nullable[string] `json:"projectId,omitempty"`
	Title      nullable.Nullable[string] `json:"title,omitempty"`
	Author     nullable.Nullable[string] `json:"author,omitempty"`
	Tone       nullable.Nullable[string] `json:"tone,omitempty"`
	OrderIndex nullable.Nullable[int]    `json:"orderIndex,omitempty"`
}

type MediaAssetResponse struct {
	AssetId   string    `json:"assetId"`
	SongId    string    `json:"songId"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListAssetsResponse struct {
	Assets []MediaAssetResponse `json:"assets"`
}

type RegisterAssetRequest struct {
	Kind        string `json:"kind"`
	Title       string `json:"title,omitempty"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type RegisterAssetResponse struct {
	Asset     MediaAssetResponse `json:"asset"`
	UploadUrl string             `json:"uploadUrl"`
}

type TrackResponse struct {
	TrackId string `json:"trackId"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Url     string `json:"url"`
}

type ListTracksResponse struct {
	Tracks []TrackResponse `json:"tracks"`
}

type ActivityResponse struct {
	ActivityId string             `json:"activityId"`
	Title      string             `json:"title"`
	Kind       string             `json:"kind"`
	EventDate  openapi_types.Date `json:"eventDate"`
	Location   *string            `json:"location"`
	Notes      *string            `json:"notes"`
	CreatedBy  string             `json:"createdBy"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

type CreateActivityRequest struct {
	Title     string             `json:"title"`
	Kind      string             `json:"kind"`
	EventDate openapi_types.Date `json:"eventDate"`
	Location  *string            `json:"location,omitempty"`
	Notes     *string            `json:"notes,omitempty"`
}

type UpdateActivityRequest struct {
	Title     nullable.Nullable[string]             `json:"title,omitempty"`
	Kind      nullable.Nullable[string]             `json:"kind,omitempty"`
	EventDate nullable.Nullable[openapi_types.Date] `json:"eventDate,omitempty"`
	Location  nullable.Nullable[string]             `json:"location,omitempty"`
	Notes     nullable.Nullable[string]             `json:"notes,omitempty"`
}

type AttendanceMarkResponse struct {
	ActivityId string    `json:"activityId"`
	MemberId   string    `json:"memberId"`
	Present    bool      `json:"present"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type AttendanceSheetResponse struct {
	ActivityId   string                   `json:"activityId"`
	Marks        []AttendanceMarkResponse `json:"marks"`
	PresentCount int                      `json:"presentCount"`
}

type RecordAttendanceRequest struct {
	Present bool `json:"present"`
}

type AttendanceHistoryEntry struct {
	ActivityId string             `json:"activityId"`
	Present    bool               `json:"present"`
	EventDate  openapi_types.Date `json:"eventDate"`
}

type ListAttendanceHistoryResponse struct {
	Entries []AttendanceHistoryEntry `json:"entries"`
}

// --- domain → wire mappers ---

func groupInfoResponse(g domain.GroupInfo) GroupInfoResponse {
	return GroupInfoResponse{
		Name:      g.Name,
		LogoUrl:   g.LogoURL,
		UpdatedAt: g.UpdatedAt,
	}
}

func memberProfileResponse(u domain.UserInfo) MemberProfileResponse {
	return MemberProfileResponse{
		MemberId:  string(u.ID),
		FullName:  u.FullName,
		AvatarUrl: u.AvatarURL,
		GroupRole: u.GroupRole,
	}
}

func myProfileResponse(m domain.Member) MyProfileResponse {
	return MyProfileResponse{
		MemberId:  string(m.ID),
		FullName:  m.FullName,
		Email:     openapi_types.Email(m.Email),
		AvatarUrl: m.AvatarURL,
		GroupRole: m.GroupRole,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func songResponse(s domain.Song) SongResponse {
	out := SongResponse{
		SongId:     string(s.ID),
		Title:      s.Title,
		Author:     s.Author,
		Tone:       s.Tone,
		OrderIndex: s.OrderIndex,
		CreatedBy:  string(s.CreatedBy),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	if s.ProjectID != "" {
		v := s.ProjectID
		out.ProjectId = &v
	}
	return out
}

func mediaAssetResponse(a domain.MediaAsset) MediaAssetResponse {
	return MediaAssetResponse{
		AssetId:   string(a.ID),
		SongId:    string(a.SongID),
		Kind:      string(a.Kind),
		Title:     a.Title,
		CreatedBy: string(a.CreatedBy),
		CreatedAt: a.CreatedAt,
	}
}

func trackResponse(t domain.Track) TrackResponse {
	return TrackResponse{
		TrackId: t.ID,
		Title:   t.Title,
		Author:  t.Author,
		Url:     t.URL,
	}
}

func activityResponse(a domain.Activity) ActivityResponse {
	return ActivityResponse{
		ActivityId: string(a.ID),
		Title:      a.Title,
		Kind:       string(a.Kind),
		EventDate:  openapi_types.Date{Time: a.EventDate},
		Location:   a.Location,
		Notes:      a.Notes,
		CreatedBy:  string(a.CreatedBy),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
