package refdata

import (
	"context"
	"errors"
	"testing"

	memgateway "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/gateway"
	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
)

func discardLogf(string, ...any) {}

func song(id, title string) domain.Song {
	return domain.Song{ID: domain.SongID(id), Title: title, Author: "anon"}
}

func TestCache_FetchGroupInfo(t *testing.T) {
	t.Parallel()

	gw := memgateway.NewGateway()
	gw.SetGroupInfo(domain.GroupInfo{Name: "Cantoria"})
	c := NewCache(gw, discardLogf, nil)

	if _, ok := c.GroupInfo(); ok {
		t.Fatalf("group must start unset")
	}
	c.FetchGroupInfo(context.Background())
	g, ok := c.GroupInfo()
	if !ok || g.Name != "Cantoria" {
		t.Fatalf("group=%+v ok=%v", g, ok)
	}
}

func TestCache_SetGroupInfo_OverridesWithoutRoundTrip(t *testing.T) {
	t.Parallel()

	gw := memgateway.NewGateway()
	c := NewCache(gw, discardLogf, nil)

	logo := "https://media.example/logo.png"
	c.SetGroupInfo(domain.GroupInfo{Name: "Renamed", LogoURL: &logo})
	g, ok := c.GroupInfo()
	if !ok || g.Name != "Renamed" || g.LogoURL == nil || *g.LogoURL != logo {
		t.Fatalf("group=%+v ok=%v", g, ok)
	}
}

func TestCache_FetchSongs_ReplacesNotMerges(t *testing.T) {
	t.Parallel()

	gw := memgateway.NewGateway()
	gw.SetSongs([]domain.Song{song("a", "Ave Maria"), song("b", "Berceuse")})
	c := NewCache(gw, discardLogf, nil)
	c.FetchSongs(context.Background())
	if got := c.Songs(); len(got) != 2 {
		t.Fatalf("seed fetch: got %d songs", len(got))
	}

	// The backend now returns a single different song: the cache must hold
	// exactly that, not a union.
	gw.SetSongs([]domain.Song{song("c", "Cantique")})
	c.FetchSongs(context.Background())
	got := c.Songs()
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("songs=%+v, want exactly [c]", got)
	}
}

func TestCache_FetchSongs_OrderedByTitle(t *testing.T) {
	t.Parallel()

	gw := memgateway.NewGateway()
	gw.SetSongs([]domain.Song{song("1", "Zadok"), song("2", "ave verum"), song("3", "Miserere")})
	c := NewCache(gw, discardLogf, nil)

	c.FetchSongs(context.Background())
	got := c.Songs()
	if len(got) != 3 || got[0].Title != "ave verum" || got[1].Title != "Miserere" || got[2].Title != "Zadok" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestCache_FetchMembers_ErrorKeepsPriorState(t *testing.T) {
	t.Parallel()

	gw := memgateway.NewGateway()
	gw.SetMembers([]domain.MemberSummary{{ID: "m-1", FullName: "Alice"}})
	c := NewCache(gw, discardLogf, nil)
	c.FetchMembers(context.Background())

	gw.FailWith(errors.New("backend down"))
	c.FetchMembers(context.Background())

	got := c.Members()
	if len(got) != 1 || got[0].FullName != "Alice" {
		t.Fatalf("prior directory must survive a failed fetch, got %+v", got)
	}
}

func TestCache_MemberName(t *testing.T) {
	t.Parallel()

	gw := memgateway.NewGateway()
	gw.SetMembers([]domain.MemberSummary{
		{ID: "m-1", FullName: "Alice"},
		{ID: "m-2", FullName: "Bob"},
	})
	c := NewCache(gw, discardLogf, nil)
	c.FetchMembers(context.Background())

	if name, ok := c.MemberName("m-2"); !ok || name != "Bob" {
		t.Fatalf("name=%q ok=%v", name, ok)
	}
	if _, ok := c.MemberName("m-9"); ok {
		t.Fatalf("unknown id must not resolve")
	}
}

func TestCache_NotifyFiresOnStateChangeOnly(t *testing.T) {
	t.Parallel()

	gw := memgateway.NewGateway()
	gw.SetGroupInfo(domain.GroupInfo{Name: "Cantoria"})
	var n int
	c := NewCache(gw, discardLogf, func() { n++ })

	c.FetchGroupInfo(context.Background())
	if n != 1 {
		t.Fatalf("notify count=%d, want 1", n)
	}

	gw.FailWith(errors.New("backend down"))
	c.FetchGroupInfo(context.Background())
	if n != 1 {
		t.Fatalf("failed fetch must not notify, count=%d", n)
	}
}
