// Package httpclient implements the remote data gateway against the choir
// manager REST API. It is the client-side counterpart of the httpapi adapter:
// wire rows are parsed into domain types here and untyped shapes never leak
// past this package.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/gateway"
)

// Options configure a Gateway. Exactly one of Token or DebugSubject should be
// set; DebugSubject is only honored by servers running the dev auth middleware.
type Options struct {
	BaseURL      string
	Token        string
	DebugSubject string

	// HTTPClient defaults to a client with a 10s timeout.
	HTTPClient *http.Client
}

type Gateway struct {
	baseURL      string
	token        string
	debugSubject string
	client       *http.Client
}

var _ gateway.Gateway = (*Gateway)(nil)

func NewGateway(opts Options) *Gateway {
	c := opts.HTTPClient
	if c == nil {
		c = &http.Client{Timeout: 10 * time.Second}
	}
	return &Gateway{
		baseURL:      opts.BaseURL,
		token:        opts.Token,
		debugSubject: opts.DebugSubject,
		client:       c,
	}
}

// RemoteError is a non-2xx response from the backend, carrying the error code
// and message from the response envelope when one could be decoded.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("remote: status %d: %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("remote: status %d", e.Status)
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type sessionRow struct {
	UserId string `json:"userId"`
}

type groupInfoRow struct {
	Name      string    `json:"name"`
	LogoUrl   *string   `json:"logoUrl"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type memberProfileRow struct {
	MemberId  string  `json:"memberId"`
	FullName  string  `json:"fullName"`
	AvatarUrl *string `json:"avatarUrl"`
	GroupRole string  `json:"groupRole"`
}

type memberDirectoryRow struct {
	MemberId string `json:"memberId"`
	FullName string `json:"fullName"`
}

type listMembersRow struct {
	Members []memberDirectoryRow `json:"members"`
}

type songRow struct {
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

type listSongsRow struct {
	Songs []songRow `json:"songs"`
}

type songCountRow struct {
	Count int `json:"count"`
}

type attendanceEntryRow struct {
	ActivityId string             `json:"activityId"`
	Present    bool               `json:"present"`
	EventDate  openapi_types.Date `json:"eventDate"`
}

type listAttendanceRow struct {
	Entries []attendanceEntryRow `json:"entries"`
}

func (g *Gateway) GetSession(ctx context.Context) (gateway.Session, bool, error) {
	var row sessionRow
	err := g.getJSON(ctx, "/session", &row)
	if err != nil {
		var re *RemoteError
		// An unauthenticated or unprovisioned caller has no session; that is
		// not a failure.
		if errors.As(err, &re) && re.Status == http.StatusUnauthorized {
			return gateway.Session{}, false, nil
		}
		return gateway.Session{}, false, err
	}
	return gateway.Session{UserID: domain.MemberID(row.UserId)}, true, nil
}

func (g *Gateway) GetGroupInfo(ctx context.Context) (domain.GroupInfo, error) {
	var row groupInfoRow
	if err := g.getJSON(ctx, "/group", &row); err != nil {
		return domain.GroupInfo{}, err
	}
	return domain.GroupInfo{
		Name:      row.Name,
		LogoURL:   row.LogoUrl,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (g *Gateway) GetProfile(ctx context.Context, id domain.MemberID) (domain.UserInfo, error) {
	var row memberProfileRow
	if err := g.getJSON(ctx, "/members/"+url.PathEscape(string(id)), &row); err != nil {
		return domain.UserInfo{}, err
	}
	return domain.UserInfo{
		ID:        domain.MemberID(row.MemberId),
		FullName:  row.FullName,
		AvatarURL: row.AvatarUrl,
		GroupRole: row.GroupRole,
	}, nil
}

func (g *Gateway) ListMembers(ctx context.Context) ([]domain.MemberSummary, error) {
	var row listMembersRow
	if err := g.getJSON(ctx, "/members", &row); err != nil {
		return nil, err
	}
	out := make([]domain.MemberSummary, 0, len(row.Members))
	for _, m := range row.Members {
		out = append(out, domain.MemberSummary{
			ID:       domain.MemberID(m.MemberId),
			FullName: m.FullName,
		})
	}
	return out, nil
}

func (g *Gateway) ListSongs(ctx context.Context) ([]domain.Song, error) {
	var row listSongsRow
	if err := g.getJSON(ctx, "/songs", &row); err != nil {
		return nil, err
	}
	out := make([]domain.Song, 0, len(row.Songs))
	for _, s := range row.Songs {
		projectID := ""
		if s.ProjectId != nil {
			projectID = *s.ProjectId
		}
		out = append(out, domain.Song{
			ID:         domain.SongID(s.SongId),
			ProjectID:  projectID,
			Title:      s.Title,
			Author:     s.Author,
			Tone:       s.Tone,
			OrderIndex: s.OrderIndex,
			CreatedBy:  domain.MemberID(s.CreatedBy),
			CreatedAt:  s.CreatedAt,
			UpdatedAt:  s.UpdatedAt,
		})
	}
	return out, nil
}

func (g *Gateway) CountSongs(ctx context.Context) (int, error) {
	var row songCountRow
	if err := g.getJSON(ctx, "/songs/count", &row); err != nil {
		return 0, err
	}
	return row.Count, nil
}

func (g *Gateway) ListAttendance(ctx context.Context, id domain.MemberID) ([]gateway.AttendanceEntry, error) {
	var row listAttendanceRow
	if err := g.getJSON(ctx, "/members/"+url.PathEscape(string(id))+"/attendance", &row); err != nil {
		return nil, err
	}
	out := make([]gateway.AttendanceEntry, 0, len(row.Entries))
	for _, e := range row.Entries {
		out = append(out, gateway.AttendanceEntry{
			ActivityID: domain.ActivityID(e.ActivityId),
			Present:    e.Present,
			EventDate:  e.EventDate.Time,
		})
	}
	return out, nil
}

func (g *Gateway) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	if g.debugSubject != "" {
		req.Header.Set("X-Debug-Subject", g.debugSubject)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		re := &RemoteError{Status: resp.StatusCode}
		var env errorEnvelope
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if json.Unmarshal(body, &env) == nil {
			re.Code = env.Error.Code
			re.Message = env.Error.Message
		}
		return re
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
