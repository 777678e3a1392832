package gateway

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	gatewayport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/gateway"
)

// Gateway is an in-memory implementation of the remote data gateway consumed
// by the client state core. It is used by slice tests and as the backend when
// the server runs without external services. It is safe for concurrent use.
type Gateway struct {
	mu sync.RWMutex

	session    *gatewayport.Session
	group      *domain.GroupInfo
	profiles   map[domain.MemberID]domain.UserInfo
	members    []domain.MemberSummary
	songs      []domain.Song
	attendance map[domain.MemberID][]gatewayport.AttendanceEntry

	songCount *int
	failWith  error
}

func NewGateway() *Gateway {
	return &Gateway{
		profiles:   make(map[domain.MemberID]domain.UserInfo),
		attendance: make(map[domain.MemberID][]gatewayport.AttendanceEntry),
	}
}

func (g *Gateway) GetSession(ctx context.Context) (gatewayport.Session, bool, error) {
	_ = ctx
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.failWith != nil {
		return gatewayport.Session{}, false, g.failWith
	}
	if g.session == nil {
		return gatewayport.Session{}, false, nil
	}
	return *g.session, true, nil
}

func (g *Gateway) GetGroupInfo(ctx context.Context) (domain.GroupInfo, error) {
	_ = ctx
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.failWith != nil {
		return domain.GroupInfo{}, g.failWith
	}
	if g.group == nil {
		return domain.GroupInfo{}, gatewayport.ErrNotFound
	}
	return *g.group, nil
}

func (g *Gateway) GetProfile(ctx context.Context, id domain.MemberID) (domain.UserInfo, error) {
	_ = ctx
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.failWith != nil {
		return domain.UserInfo{}, g.failWith
	}
	u, ok := g.profiles[id]
	if !ok {
		return domain.UserInfo{}, gatewayport.ErrNotFound
	}
	return u, nil
}

func (g *Gateway) ListMembers(ctx context.Context) ([]domain.MemberSummary, error) {
	_ = ctx
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.failWith != nil {
		return nil, g.failWith
	}
	out := make([]domain.MemberSummary, len(g.members))
	copy(out, g.members)
	return out, nil
}

func (g *Gateway) ListSongs(ctx context.Context) ([]domain.Song, error) {
	_ = ctx
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.failWith != nil {
		return nil, g.failWith
	}
	out := make([]domain.Song, len(g.songs))
	copy(out, g.songs)
	sort.Slice(out, func(i, j int) bool {
		ti := strings.ToLower(out[i].Title)
		tj := strings.ToLower(out[j].Title)
		if ti == tj {
			return out[i].ID < out[j].ID
		}
		return ti < tj
	})
	return out, nil
}

func (g *Gateway) CountSongs(ctx context.Context) (int, error) {
	_ = ctx
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.failWith != nil {
		return 0, g.failWith
	}
	if g.songCount != nil {
		return *g.songCount, nil
	}
	return len(g.songs), nil
}

func (g *Gateway) ListAttendance(ctx context.Context, id domain.MemberID) ([]gatewayport.AttendanceEntry, error) {
	_ = ctx
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.failWith != nil {
		return nil, g.failWith
	}
	src := g.attendance[id]
	out := make([]gatewayport.AttendanceEntry, len(src))
	copy(out, src)
	return out, nil
}

// --- state setters (backend side of the fake) ---

func (g *Gateway) SetSession(s gatewayport.Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = &s
}

func (g *Gateway) ClearSession() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = nil
}

func (g *Gateway) SetGroupInfo(info domain.GroupInfo) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.group = &info
}

func (g *Gateway) PutProfile(u domain.UserInfo) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.profiles[u.ID] = u
}

func (g *Gateway) SetMembers(ms []domain.MemberSummary) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.members = append([]domain.MemberSummary(nil), ms...)
}

func (g *Gateway) SetSongs(ss []domain.Song) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.songs = append([]domain.Song(nil), ss...)
}

// SetSongCount overrides the count-only query independently of SetSongs.
func (g *Gateway) SetSongCount(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.songCount = &n
}

func (g *Gateway) SetAttendance(id domain.MemberID, entries []gatewayport.AttendanceEntry) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.attendance[id] = append([]gatewayport.AttendanceEntry(nil), entries...)
}

// FailWith makes every subsequent call return err; pass nil to restore.
func (g *Gateway) FailWith(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failWith = err
}
