package session

import (
	"context"
	"log"
	"math"
	"sync"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/gateway"
)

// AttendanceStats is the derived attendance view for the session user.
// Trend carries no historical comparison in this version and is always 0.
type AttendanceStats struct {
	Percentage int
	Trend      int
	TotalSongs int
}

// Slice tracks the currently authenticated user's profile and a derived
// attendance statistic.
//
// The same failure policy as the reference cache applies: fetch methods absorb
// gateway errors, log them, and leave state unchanged. Nothing is returned to
// the caller.
type Slice struct {
	gw     gateway.Gateway
	logf   func(format string, v ...any)
	notify func()

	mu    sync.RWMutex
	user  *domain.UserInfo
	stats *AttendanceStats
}

// NewSlice constructs an empty session slice. logf may be nil (defaults to
// log.Printf); notify may be nil and is invoked after every state change.
func NewSlice(gw gateway.Gateway, logf func(format string, v ...any), notify func()) *Slice {
	if logf == nil {
		logf = log.Printf
	}
	return &Slice{gw: gw, logf: logf, notify: notify}
}

// FetchUserInfo resolves the active session and, if one exists, loads the
// matching profile. No session means no state change and no error. It reports
// whether a profile was stored so the composed store can chain the attendance
// statistics refresh.
func (s *Slice) FetchUserInfo(ctx context.Context) bool {
	sess, ok, err := s.gw.GetSession(ctx)
	if err != nil {
		s.logf("session: resolve session: %v", err)
		return false
	}
	if !ok {
		return false
	}
	u, err := s.gw.GetProfile(ctx, sess.UserID)
	if err != nil {
		s.logf("session: fetch profile: %v", err)
		return false
	}
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	s.changed()
	return true
}

// SetUserInfo overrides the stored profile directly (used after profile edits).
func (s *Slice) SetUserInfo(u domain.UserInfo) {
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	s.changed()
}

// FetchAttendanceStats recomputes the attendance statistic for the current
// user. It is a no-op when no user is loaded. With zero attendance records the
// percentage is 0 (never a division by zero) while the song count is still set.
func (s *Slice) FetchAttendanceStats(ctx context.Context) {
	s.mu.RLock()
	user := s.user
	s.mu.RUnlock()
	if user == nil {
		return
	}

	totalSongs, err := s.gw.CountSongs(ctx)
	if err != nil {
		s.logf("session: count songs: %v", err)
		return
	}
	entries, err := s.gw.ListAttendance(ctx, user.ID)
	if err != nil {
		s.logf("session: fetch attendance: %v", err)
		return
	}

	present := 0
	for _, e := range entries {
		if e.Present {
			present++
		}
	}
	pct := 0
	if len(entries) > 0 {
		pct = int(math.Round(100 * float64(present) / float64(len(entries))))
	}

	s.mu.Lock()
	s.stats = &AttendanceStats{Percentage: pct, Trend: 0, TotalSongs: totalSongs}
	s.mu.Unlock()
	s.changed()
}

// UserInfo returns the stored profile, if a session has been resolved.
func (s *Slice) UserInfo() (domain.UserInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.UserInfo{}, false
	}
	return *s.user, true
}

// Stats returns the derived attendance statistic, if one has been computed.
func (s *Slice) Stats() (AttendanceStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return AttendanceStats{}, false
	}
	return *s.stats, true
}

func (s *Slice) changed() {
	if s.notify != nil {
		s.notify()
	}
}
