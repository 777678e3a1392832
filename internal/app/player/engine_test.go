package player

import (
	"testing"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
)

func track(id, url string) domain.Track {
	return domain.Track{ID: id, Title: "t-" + id, Author: "a", URL: url}
}

// checkInvariants verifies index bounds and active/queue consistency for any
// reachable state.
func checkInvariants(t *testing.T, st State) {
	t.Helper()
	if len(st.Queue) == 0 {
		if st.CurrentIndex != -1 {
			t.Fatalf("empty queue must have index -1, got %d", st.CurrentIndex)
		}
		return
	}
	if st.CurrentIndex < 0 || st.CurrentIndex >= len(st.Queue) {
		t.Fatalf("index %d out of bounds for queue of %d", st.CurrentIndex, len(st.Queue))
	}
	if st.ActiveTrack == nil {
		t.Fatalf("non-empty queue must have an active track")
	}
	if *st.ActiveTrack != st.Queue[st.CurrentIndex] {
		t.Fatalf("active track %+v != queue[%d] %+v", *st.ActiveTrack, st.CurrentIndex, st.Queue[st.CurrentIndex])
	}
}

func TestEngine_InitialStateIsIdle(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	st := e.Snapshot()
	if st.ActiveTrack != nil || st.IsPlaying || len(st.Queue) != 0 || st.CurrentIndex != -1 {
		t.Fatalf("unexpected initial state: %+v", st)
	}
}

func TestEngine_PlayTrack_ReplacesQueueWithSingleTrack(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	e.PlayQueue([]domain.Track{track("1", "x"), track("2", "y")}, 0)

	e.PlayTrack(track("3", "z"))
	st := e.Snapshot()
	checkInvariants(t, st)
	if len(st.Queue) != 1 || st.CurrentIndex != 0 {
		t.Fatalf("queue not collapsed: %+v", st)
	}
	if st.ActiveTrack.URL != "z" || !st.IsPlaying {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestEngine_PlayTrack_SameURLTogglesWithoutTouchingQueue(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	e.PlayQueue([]domain.Track{track("1", "A"), track("2", "B")}, 0)

	// Repeated calls with the active URL only flip the flag.
	for i, wantPlaying := range []bool{false, true, false} {
		e.PlayTrack(track("99", "A"))
		st := e.Snapshot()
		checkInvariants(t, st)
		if st.IsPlaying != wantPlaying {
			t.Fatalf("call %d: isPlaying=%v, want %v", i, st.IsPlaying, wantPlaying)
		}
		if len(st.Queue) != 2 || st.CurrentIndex != 0 {
			t.Fatalf("call %d: queue/index mutated: %+v", i, st)
		}
	}
}

func TestEngine_PlayQueue_StartsAtOffset(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	e.PlayQueue([]domain.Track{track("1", "x"), track("2", "y"), track("3", "z")}, 1)

	st := e.Snapshot()
	checkInvariants(t, st)
	if len(st.Queue) != 3 || st.CurrentIndex != 1 {
		t.Fatalf("unexpected queue state: %+v", st)
	}
	if st.ActiveTrack.URL != "y" || !st.IsPlaying {
		t.Fatalf("unexpected active state: %+v", st)
	}
}

func TestEngine_PlayQueue_OutOfRangeIsNoOp(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	e.PlayQueue([]domain.Track{track("1", "x")}, 0)
	before := e.Snapshot()

	e.PlayQueue(nil, 0)
	e.PlayQueue([]domain.Track{track("2", "y")}, 5)
	e.PlayQueue([]domain.Track{track("2", "y")}, -1)

	after := e.Snapshot()
	checkInvariants(t, after)
	if after.CurrentIndex != before.CurrentIndex || after.IsPlaying != before.IsPlaying ||
		len(after.Queue) != len(before.Queue) || after.ActiveTrack.URL != before.ActiveTrack.URL {
		t.Fatalf("state mutated by no-op calls: before=%+v after=%+v", before, after)
	}
}

func TestEngine_PlayQueue_SameURLTogglesEvenWithDifferentArguments(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	e.PlayQueue([]domain.Track{track("1", "x"), track("2", "y")}, 1)

	// A different queue whose candidate URL matches the active track: the
	// prior queue and index stay.
	e.PlayQueue([]domain.Track{track("9", "y"), track("8", "w"), track("7", "v")}, 0)
	st := e.Snapshot()
	checkInvariants(t, st)
	if st.IsPlaying {
		t.Fatalf("expected toggle to paused, got %+v", st)
	}
	if len(st.Queue) != 2 || st.CurrentIndex != 1 || st.ActiveTrack.URL != "y" {
		t.Fatalf("queue/index should be unchanged: %+v", st)
	}
}

func TestEngine_PlayNext_AdvancesThenStopsAtEnd(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	e.PlayQueue([]domain.Track{track("1", "x"), track("2", "y")}, 0)

	e.PlayNext()
	st := e.Snapshot()
	checkInvariants(t, st)
	if st.CurrentIndex != 1 || st.ActiveTrack.URL != "y" || !st.IsPlaying {
		t.Fatalf("unexpected state after advance: %+v", st)
	}

	// End of queue: stop, do not reset.
	e.PlayNext()
	st = e.Snapshot()
	checkInvariants(t, st)
	if st.IsPlaying {
		t.Fatalf("expected stopped at end of queue")
	}
	if st.CurrentIndex != 1 || st.ActiveTrack.URL != "y" {
		t.Fatalf("end-of-queue must not reset position: %+v", st)
	}
}

func TestEngine_PlayNext_OnIdleStaysIdle(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	e.PlayNext()
	st := e.Snapshot()
	checkInvariants(t, st)
	if st.IsPlaying || st.ActiveTrack != nil || st.CurrentIndex != -1 {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestEngine_PlayPrevious_NoWrapAtStart(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	e.PlayQueue([]domain.Track{track("1", "x"), track("2", "y")}, 0)
	e.TogglePlay() // pause so a wrongly-taken branch would be visible

	e.PlayPrevious()
	st := e.Snapshot()
	checkInvariants(t, st)
	if st.CurrentIndex != 0 || st.ActiveTrack.URL != "x" || st.IsPlaying {
		t.Fatalf("PlayPrevious at start must be a no-op, got %+v", st)
	}
}

func TestEngine_PlayPrevious_StepsBack(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	e.PlayQueue([]domain.Track{track("1", "x"), track("2", "y"), track("3", "z")}, 2)

	e.PlayPrevious()
	st := e.Snapshot()
	checkInvariants(t, st)
	if st.CurrentIndex != 1 || st.ActiveTrack.URL != "y" || !st.IsPlaying {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestEngine_TogglePlay_IsPermissiveOnIdle(t *testing.T) {
	t.Parallel()

	// The engine does not guard the flag against a missing active track.
	e := NewEngine(nil)
	e.TogglePlay()
	st := e.Snapshot()
	if !st.IsPlaying || st.ActiveTrack != nil {
		t.Fatalf("expected isPlaying=true with no active track, got %+v", st)
	}
	e.TogglePlay()
	if st := e.Snapshot(); st.IsPlaying {
		t.Fatalf("expected isPlaying=false after second toggle")
	}
}

func TestEngine_Close_ResetsFully(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	e.PlayQueue([]domain.Track{track("1", "x"), track("2", "y")}, 1)

	e.Close()
	st := e.Snapshot()
	if st.ActiveTrack != nil || st.IsPlaying || len(st.Queue) != 0 || st.CurrentIndex != -1 {
		t.Fatalf("close must reset to idle, got %+v", st)
	}
}

func TestEngine_NotifyFiresOnChanges(t *testing.T) {
	t.Parallel()

	var n int
	e := NewEngine(func() { n++ })

	e.PlayTrack(track("1", "x"))
	e.TogglePlay()
	e.Close()
	if n != 3 {
		t.Fatalf("notify count=%d, want 3", n)
	}

	// No-ops do not notify.
	e.PlayQueue(nil, 0)
	e.PlayPrevious()
	if n != 3 {
		t.Fatalf("no-op must not notify, count=%d", n)
	}
}
