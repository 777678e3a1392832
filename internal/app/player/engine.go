package player

import (
	"sync"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
)

// State is a consistent snapshot of the playback engine.
//
// Invariants maintained by the engine:
// - CurrentIndex is -1 exactly when Queue is empty, otherwise a valid index into Queue.
// - ActiveTrack, when a queue is active, equals Queue[CurrentIndex].
type State struct {
	ActiveTrack  *domain.Track
	Queue        []domain.Track
	CurrentIndex int
	IsPlaying    bool
}

// Engine models a single-listener audio playback session: an ordered queue of
// tracks, a position cursor, and a playing flag. It is purely local; it only
// needs a resolvable URL string per track.
//
// The media-rendering surface is expected to call PlayNext when the active
// track finishes and to reflect IsPlaying/ActiveTrack changes onto the actual
// media element. The engine only maintains queue/position/flag state.
//
// All transitions are atomic; the engine is safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	active  *domain.Track
	queue   []domain.Track
	index   int
	playing bool

	notify func()
}

// NewEngine constructs an idle engine. notify, if non-nil, is invoked after
// every state change (outside the engine lock is not guaranteed; keep it cheap).
func NewEngine(notify func()) *Engine {
	return &Engine{index: -1, notify: notify}
}

// PlayTrack is the entry point for "play this one thing". Requesting the track
// that is already active toggles the playing flag and leaves queue/position
// untouched; anything else collapses the queue to just this track.
func (e *Engine) PlayTrack(t domain.Track) {
	e.mu.Lock()
	if e.active != nil && e.active.URL == t.URL {
		e.playing = !e.playing
		e.mu.Unlock()
		e.changed()
		return
	}
	tr := t
	e.queue = []domain.Track{tr}
	e.index = 0
	e.active = &tr
	e.playing = true
	e.mu.Unlock()
	e.changed()
}

// PlayQueue starts sequential playback of tracks at startIndex.
//
// An empty list or out-of-range index is a no-op. If the candidate track's URL
// matches the currently active track, only the playing flag toggles: the queue
// and position from the prior call are kept even when the arguments differ.
// This is the deliberate "re-clicking the same track" behavior. Otherwise the
// queue is replaced wholesale.
func (e *Engine) PlayQueue(tracks []domain.Track, startIndex int) {
	if startIndex < 0 || startIndex >= len(tracks) {
		return
	}
	candidate := tracks[startIndex]

	e.mu.Lock()
	if e.active != nil && e.active.URL == candidate.URL {
		e.playing = !e.playing
		e.mu.Unlock()
		e.changed()
		return
	}
	q := make([]domain.Track, len(tracks))
	copy(q, tracks)
	e.queue = q
	e.index = startIndex
	tr := candidate
	e.active = &tr
	e.playing = true
	e.mu.Unlock()
	e.changed()
}

// PlayNext advances the cursor. At (or past) the end of the queue it stops
// playback without resetting position or active track.
func (e *Engine) PlayNext() {
	e.mu.Lock()
	if e.index < len(e.queue)-1 {
		e.index++
		tr := e.queue[e.index]
		e.active = &tr
		e.playing = true
	} else {
		e.playing = false
	}
	e.mu.Unlock()
	e.changed()
}

// PlayPrevious steps the cursor back. At the start of the queue it does
// nothing: no wrap-around, no pause.
func (e *Engine) PlayPrevious() {
	e.mu.Lock()
	if e.index <= 0 {
		e.mu.Unlock()
		return
	}
	e.index--
	tr := e.queue[e.index]
	e.active = &tr
	e.playing = true
	e.mu.Unlock()
	e.changed()
}

// TogglePlay flips the playing flag unconditionally, even with no active
// track. The UI is expected not to expose the control in that state; the
// engine itself stays permissive.
func (e *Engine) TogglePlay() {
	e.mu.Lock()
	e.playing = !e.playing
	e.mu.Unlock()
	e.changed()
}

// Close resets the engine to idle.
func (e *Engine) Close() {
	e.mu.Lock()
	e.active = nil
	e.queue = nil
	e.index = -1
	e.playing = false
	e.mu.Unlock()
	e.changed()
}

// Snapshot returns a copy of the current state. The returned queue slice is
// owned by the caller.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := State{
		CurrentIndex: e.index,
		IsPlaying:    e.playing,
	}
	if e.active != nil {
		tr := *e.active
		st.ActiveTrack = &tr
	}
	if len(e.queue) > 0 {
		st.Queue = make([]domain.Track, len(e.queue))
		copy(st.Queue, e.queue)
	} else {
		st.Queue = []domain.Track{}
	}
	return st
}

func (e *Engine) changed() {
	if e.notify != nil {
		e.notify()
	}
}
