package httpapi

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cantoria-vocal/choir-manager-api/internal/app/activities"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/attendance"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/group"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/members"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/songs"
	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/idempotency"
)

// Server is the HTTP adapter over the application services. Handlers decode
// the wire DTOs, call the service, and map application errors to JSON error
// responses.
type Server struct {
	Group      *group.Service
	Members    *members.Service
	Songs      *songs.Service
	Activities *activities.Service
	Attendance *attendance.Service
	Idem       idempotency.Store
}

func NewServer(groupSvc *group.Service, membersSvc *members.Service, songsSvc *songs.Service, activitiesSvc *activities.Service, attendanceSvc *attendance.Service, idem idempotency.Store) *Server {
	return &Server{
		Group:      groupSvc,
		Members:    membersSvc,
		Songs:      songsSvc,
		Activities: activitiesSvc,
		Attendance: attendanceSvc,
		Idem:       idem,
	}
}

// --- session ---

func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	m, ok := s.requireProvisionedMember(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{UserId: string(m.ID)})
}

// --- group ---

func (s *Server) GetGroup(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireSubject(w, r); !ok {
		return
	}
	g, err := s.Group.Get(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groupInfoResponse(g))
}

func (s *Server) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	var body UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}

	var in group.UpdateInput
	if body.Name.IsSpecified() {
		if body.Name.IsNull() {
			writeAPIError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid name", map[string]any{"name": "cannot be null"})
			return
		}
		v, _ := body.Name.Get()
		in.Name = &v
	}
	if body.LogoUrl.IsSpecified() {
		if body.LogoUrl.IsNull() {
			in.ClearLogo = true
		} else {
			v, _ := body.LogoUrl.Get()
			in.LogoURL = &v
		}
	}

	g, err := s.Group.Update(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groupInfoResponse(g))
}

// --- members ---

func (s *Server) ListMembers(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	includeInactive := false
	if v := r.URL.Query().Get("includeInactive"); v != "" {
		includeInactive, _ = strconv.ParseBool(v)
	}
	ms, err := s.Members.ListDirectory(r.Context(), includeInactive)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := ListMembersResponse{Members: make([]MemberDirectoryEntry, 0, len(ms))}
	for _, m := range ms {
		out.Members = append(out.Members, MemberDirectoryEntry{
			MemberId: string(m.ID),
			FullName: m.FullName,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) GetMemberProfile(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	id := domain.MemberID(chi.URLParam(r, "memberId"))
	u, err := s.Members.GetProfile(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberProfileResponse(u))
}

func (s *Server) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.requireSubject(w, r)
	if !ok {
		return
	}
	m, err := s.Members.GetMyProfile(r.Context(), domain.SubjectID(sub))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, myProfileResponse(m))
}

func (s *Server) CreateMyProfile(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.requireSubject(w, r)
	if !ok {
		return
	}
	var body CreateMyProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}

	m, err := s.Members.CreateMyProfile(r.Context(), domain.SubjectID(sub), members.CreateMyProfileInput{
		FullName:  body.FullName,
		Email:     string(body.Email),
		AvatarURL: body.AvatarUrl,
		GroupRole: body.GroupRole,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, myProfileResponse(m))
}

func (s *Server) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.requireSubject(w, r)
	if !ok {
		return
	}
	raw, err := readBody(r)
	if err != nil {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}
	var body UpdateMyProfileRequest
	if err := json.Unmarshal(raw, &body); err != nil {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}

	// Idempotency handling:
	// - Replay if same actor+key+route+bodyHash
	// - Reject if same actor+key+route with different bodyHash (409)
	idemKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	bodyHash := hashBody(raw)
	if s.Idem != nil && idemKey != "" {
		metaFP := idempotency.Fingerprint{
			Key:      idempotency.Key(idemKey),
			Subject:  domain.SubjectID(sub),
			Method:   http.MethodPatch,
			Route:    "/members/me",
			BodyHash: "",
		}
		if meta, ok, err := s.Idem.Get(r.Context(), metaFP); err != nil {
			s.writeServiceError(w, r, err)
			return
		} else if ok {
			if string(meta.Body) != bodyHash {
				writeAPIError(w, r, http.StatusConflict, "IDEMPOTENCY_KEY_REUSE", "idempotency key reuse with different payload", nil)
				return
			}
		} else {
			_ = s.Idem.Put(r.Context(), metaFP, idempotency.Record{
				StatusCode:  0,
				ContentType: "text/plain",
				Body:        []byte(bodyHash),
				CreatedAt:   time.Now().UTC(),
			})
		}

		respFP := metaFP
		respFP.BodyHash = bodyHash
		if rec, ok, err := s.Idem.Get(r.Context(), respFP); err != nil {
			s.writeServiceError(w, r, err)
			return
		} else if ok && rec.StatusCode == http.StatusOK && strings.HasPrefix(rec.ContentType, "application/json") {
			w.Header().Set("Content-Type", rec.ContentType)
			w.WriteHeader(rec.StatusCode)
			_, _ = w.Write(rec.Body)
			return
		}
	}

	in := members.UpdateMyProfileInput{
		FullName:  optionalString(body.FullName),
		AvatarURL: optionalString(body.AvatarUrl),
		GroupRole: optionalString(body.GroupRole),
	}
	if body.Email.IsSpecified() {
		if body.Email.IsNull() {
			in.Email = members.Null[string]()
		} else {
			v, _ := body.Email.Get()
			in.Email = members.Some(string(v))
		}
	}

	m, err := s.Members.UpdateMyProfile(r.Context(), domain.SubjectID(sub), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	resp := myProfileResponse(m)

	// Store successful response for replay.
	if s.Idem != nil && idemKey != "" {
		respFP := idempotency.Fingerprint{
			Key:      idempotency.Key(idemKey),
			Subject:  domain.SubjectID(sub),
			Method:   http.MethodPatch,
			Route:    "/members/me",
			BodyHash: bodyHash,
		}
		if b, err := json.Marshal(resp); err == nil {
			// writeJSON emits a trailing newline; keep the stored body
			// byte-identical so replays match the original response.
			_ = s.Idem.Put(r.Context(), respFP, idempotency.Record{
				StatusCode:  http.StatusOK,
				ContentType: "application/json",
				Body:        append(b, '\n'),
				CreatedAt:   time.Now().UTC(),
			})
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- songs ---

func (s *Server) ListSongs(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	ss, err := s.Songs.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := ListSongsResponse{Songs: make([]SongResponse, 0, len(ss))}
	for _, song := range ss {
		out.Songs = append(out.Songs, songResponse(song))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) CountSongs(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	n, err := s.Songs.Count(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SongCountResponse{Count: n})
}

func (s *Server) GetSong(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	song, err := s.Songs.Get(r.Context(), domain.SongID(chi.URLParam(r, "songId")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, songResponse(song))
}

func (s *Server) CreateSong(w http.ResponseWriter, r *http.Request) {
	me, ok := s.requireProvisionedMember(w, r)
	if !ok {
		return
	}
	var body CreateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}
	song, err := s.Songs.Create(r.Context(), me.ID, songs.CreateInput{
		ProjectID:  body.ProjectId,
		Title:      body.Title,
		Author:     body.Author,
		Tone:       body.Tone,
		OrderIndex: body.OrderIndex,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, songResponse(song))
}

func (s *Server) UpdateSong(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	var body UpdateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}
	in := songs.UpdateInput{
		ProjectID:  songsOptionalString(body.ProjectId),
		Title:      songsOptionalString(body.Title),
		Author:     songsOptionalString(body.Author),
		Tone:       songsOptionalString(body.Tone),
		OrderIndex: songsOptionalInt(body.OrderIndex),
	}
	song, err := s.Songs.Update(r.Context(), domain.SongID(chi.URLParam(r, "songId")), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, songResponse(song))
}

func (s *Server) DeleteSong(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	if err := s.Songs.Delete(r.Context(), domain.SongID(chi.URLParam(r, "songId"))); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ListSongAssets(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	as, err := s.Songs.ListAssets(r.Context(), domain.SongID(chi.URLParam(r, "songId")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := ListAssetsResponse{Assets: make([]MediaAssetResponse, 0, len(as))}
	for _, a := range as {
		out.Assets = append(out.Assets, mediaAssetResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) RegisterSongAsset(w http.ResponseWriter, r *http.Request) {
	me, ok := s.requireProvisionedMember(w, r)
	if !ok {
		return
	}
	var body RegisterAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}
	reg, err := s.Songs.RegisterAsset(r.Context(), domain.SongID(chi.URLParam(r, "songId")), me.ID, songs.RegisterAssetInput{
		Kind:        domain.AssetKind(body.Kind),
		Title:       body.Title,
		FileName:    body.FileName,
		ContentType: body.ContentType,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, RegisterAssetResponse{
		Asset:     mediaAssetResponse(reg.Asset),
		UploadUrl: reg.UploadURL,
	})
}

func (s *Server) DeleteSongAsset(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	if err := s.Songs.DeleteAsset(r.Context(), domain.AssetID(chi.URLParam(r, "assetId"))); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ListSongTracks(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	ts, err := s.Songs.Tracks(r.Context(), domain.SongID(chi.URLParam(r, "songId")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := ListTracksResponse{Tracks: make([]TrackResponse, 0, len(ts))}
	for _, t := range ts {
		out.Tracks = append(out.Tracks, trackResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// --- activities ---

func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	as, err := s.Activities.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := ListActivitiesResponse{Activities: make([]ActivityResponse, 0, len(as))}
	for _, a := range as {
		out.Activities = append(out.Activities, activityResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) GetActivity(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	a, err := s.Activities.Get(r.Context(), domain.ActivityID(chi.URLParam(r, "activityId")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activityResponse(a))
}

func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	me, ok := s.requireProvisionedMember(w, r)
	if !ok {
		return
	}
	var body CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}
	a, err := s.Activities.Create(r.Context(), me.ID, activities.CreateInput{
		Title:     body.Title,
		Kind:      domain.ActivityKind(body.Kind),
		EventDate: body.EventDate.Time,
		Location:  body.Location,
		Notes:     body.Notes,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, activityResponse(a))
}

func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	var body UpdateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}
	var in activities.UpdateInput
	if body.Title.IsSpecified() {
		if body.Title.IsNull() {
			in.Title = activities.Null[string]()
		} else {
			v, _ := body.Title.Get()
			in.Title = activities.Some(v)
		}
	}
	if body.Kind.IsSpecified() {
		if body.Kind.IsNull() {
			in.Kind = activities.Null[domain.ActivityKind]()
		} else {
			v, _ := body.Kind.Get()
			in.Kind = activities.Some(domain.ActivityKind(v))
		}
	}
	if body.EventDate.IsSpecified() {
		if body.EventDate.IsNull() {
			in.EventDate = activities.Null[time.Time]()
		} else {
			v, _ := body.EventDate.Get()
			in.EventDate = activities.Some(v.Time)
		}
	}
	if body.Location.IsSpecified() {
		if body.Location.IsNull() {
			in.Location = activities.Null[string]()
		} else {
			v, _ := body.Location.Get()
			in.Location = activities.Some(v)
		}
	}
	if body.Notes.IsSpecified() {
		if body.Notes.IsNull() {
			in.Notes = activities.Null[string]()
		} else {
			v, _ := body.Notes.Get()
			in.Notes = activities.Some(v)
		}
	}

	a, err := s.Activities.Update(r.Context(), domain.ActivityID(chi.URLParam(r, "activityId")), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activityResponse(a))
}

func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	if err := s.Activities.Delete(r.Context(), domain.ActivityID(chi.URLParam(r, "activityId"))); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- attendance ---

func (s *Server) GetAttendanceSheet(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	sheet, err := s.Attendance.SheetForActivity(r.Context(), domain.ActivityID(chi.URLParam(r, "activityId")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := AttendanceSheetResponse{
		ActivityId:   string(sheet.ActivityID),
		Marks:        make([]AttendanceMarkResponse, 0, len(sheet.Marks)),
		PresentCount: sheet.PresentCount,
	}
	for _, m := range sheet.Marks {
		out.Marks = append(out.Marks, attendanceMarkResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	var body RecordAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "malformed request body", nil)
		return
	}
	mark, err := s.Attendance.Record(r.Context(),
		domain.ActivityID(chi.URLParam(r, "activityId")),
		domain.MemberID(chi.URLParam(r, "memberId")),
		body.Present,
	)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attendanceMarkResponse(mark))
}

func (s *Server) ListMemberAttendance(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireProvisionedMember(w, r); !ok {
		return
	}
	entries, err := s.Attendance.HistoryForMember(r.Context(), domain.MemberID(chi.URLParam(r, "memberId")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := ListAttendanceHistoryResponse{Entries: make([]AttendanceHistoryEntry, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, attendanceHistoryEntry(e))
	}
	writeJSON(w, http.StatusOK, out)
}

// --- helpers ---

func (s *Server) requireSubject(w http.ResponseWriter, r *http.Request) (string, bool) {
	sub, ok := SubjectFromContext(r.Context())
	if !ok {
		writeAPIError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing subject", nil)
		return "", false
	}
	return sub, true
}

// requireProvisionedMember resolves the caller to a member profile. Most
// endpoints require the caller to be provisioned, matching the 401 code used
// for profile lookups.
func (s *Server) requireProvisionedMember(w http.ResponseWriter, r *http.Request) (domain.Member, bool) {
	sub, ok := s.requireSubject(w, r)
	if !ok {
		return domain.Member{}, false
	}
	m, err := s.Members.GetMyProfile(r.Context(), domain.SubjectID(sub))
	if err != nil {
		if isMemberNotProvisioned(err) {
			writeAPIError(w, r, http.StatusUnauthorized, "MEMBER_NOT_PROVISIONED", "No member profile exists for the authenticated subject.", nil)
			return domain.Member{}, false
		}
		s.writeServiceError(w, r, err)
		return domain.Member{}, false
	}
	return m, true
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if status, code, message, details, ok := appErrorParts(err); ok {
		writeAPIError(w, r, status, code, message, details)
		return
	}
	log.Printf("httpapi: internal error: %v", err)
	writeAPIError(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}

func appErrorParts(err error) (int, string, string, map[string]any, bool) {
	var ge *group.Error
	if errors.As(err, &ge) {
		return ge.Status, ge.Code, ge.Message, ge.Details, true
	}
	var me *members.Error
	if errors.As(err, &me) {
		return me.Status, me.Code, me.Message, me.Details, true
	}
	var se *songs.Error
	if errors.As(err, &se) {
		return se.Status, se.Code, se.Message, se.Details, true
	}
	var ace *activities.Error
	if errors.As(err, &ace) {
		return ace.Status, ace.Code, ace.Message, ace.Details, true
	}
	var ate *attendance.Error
	if errors.As(err, &ate) {
		return ate.Status, ate.Code, ate.Message, ate.Details, true
	}
	return 0, "", "", nil, false
}

func isMemberNotProvisioned(err error) bool {
	var me *members.Error
	return errors.As(err, &me) && me.Code == "MEMBER_NOT_PROVISIONED"
}

func attendanceMarkResponse(m attendance.Mark) AttendanceMarkResponse {
	return AttendanceMarkResponse{
		ActivityId: string(m.ActivityID),
		MemberId:   string(m.MemberID),
		Present:    m.Present,
		UpdatedAt:  m.UpdatedAt,
	}
}

func attendanceHistoryEntry(e attendance.MemberEntry) AttendanceHistoryEntry {
	return AttendanceHistoryEntry{
		ActivityId: string(e.ActivityID),
		Present:    e.Present,
		EventDate:  dateFromTime(e.EventDate),
	}
}

func hashBody(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
