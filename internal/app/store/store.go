package store

import (
	"context"
	"sync"

	"github.com/cantoria-vocal/choir-manager-api/internal/app/player"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/refdata"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/session"
	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/gateway"
)

// Snapshot is the combined state a view renders from.
type Snapshot struct {
	Group   *domain.GroupInfo
	Members []domain.MemberSummary
	Songs   []domain.Song

	User  *domain.UserInfo
	Stats *session.AttendanceStats

	Playback player.State
}

// Store composes the reference cache, the session slice, and the playback
// engine into one observable unit. It is the only integration point between
// slices; every operation reads the current combined state at call time.
//
// Store is an explicitly constructed, dependency-injected container: tests can
// run any number of isolated instances.
type Store struct {
	refdata *refdata.Cache
	session *session.Slice
	player  *player.Engine

	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// Options tunes store construction.
type Options struct {
	// Logf receives the log lines emitted by absorbed fetch failures.
	// Defaults to log.Printf.
	Logf func(format string, v ...any)
}

// New builds a store around the given gateway.
func New(gw gateway.Gateway, opts Options) *Store {
	s := &Store{subs: make(map[int]func())}
	s.refdata = refdata.NewCache(gw, opts.Logf, s.broadcast)
	s.session = session.NewSlice(gw, opts.Logf, s.broadcast)
	s.player = player.NewEngine(s.broadcast)
	return s
}

// Subscribe registers fn to run after every state change and returns an
// unsubscribe func. fn receives no payload; subscribers read via Snapshot so
// they always observe current state.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Snapshot assembles the combined current state.
func (s *Store) Snapshot() Snapshot {
	var snap Snapshot
	if g, ok := s.refdata.GroupInfo(); ok {
		snap.Group = &g
	}
	snap.Members = s.refdata.Members()
	snap.Songs = s.refdata.Songs()
	if u, ok := s.session.UserInfo(); ok {
		snap.User = &u
	}
	if st, ok := s.session.Stats(); ok {
		snap.Stats = &st
	}
	snap.Playback = s.player.Snapshot()
	return snap
}

// --- reference data operations ---

func (s *Store) FetchGroupInfo(ctx context.Context) { s.refdata.FetchGroupInfo(ctx) }
func (s *Store) SetGroupInfo(g domain.GroupInfo)    { s.refdata.SetGroupInfo(g) }
func (s *Store) FetchMembers(ctx context.Context)   { s.refdata.FetchMembers(ctx) }
func (s *Store) FetchSongs(ctx context.Context)     { s.refdata.FetchSongs(ctx) }

// --- session operations ---

// FetchUserInfo resolves the session and profile, then refreshes the
// attendance statistics. The statistics refresh runs only after a successful
// profile fetch; the chain is sequential and explicit.
func (s *Store) FetchUserInfo(ctx context.Context) {
	if s.session.FetchUserInfo(ctx) {
		s.session.FetchAttendanceStats(ctx)
	}
}

func (s *Store) SetUserInfo(u domain.UserInfo)            { s.session.SetUserInfo(u) }
func (s *Store) FetchAttendanceStats(ctx context.Context) { s.session.FetchAttendanceStats(ctx) }

// --- playback operations ---

func (s *Store) PlayTrack(t domain.Track)                        { s.player.PlayTrack(t) }
func (s *Store) PlayQueue(tracks []domain.Track, startIndex int) { s.player.PlayQueue(tracks, startIndex) }
func (s *Store) PlayNext()                                       { s.player.PlayNext() }
func (s *Store) PlayPrevious()                                   { s.player.PlayPrevious() }
func (s *Store) TogglePlay()                                     { s.player.TogglePlay() }
func (s *Store) ClosePlayer()                                    { s.player.Close() }

func (s *Store) broadcast() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	// Run outside the lock so subscribers can call Snapshot or unsubscribe.
	for _, fn := range fns {
		fn()
	}
}
