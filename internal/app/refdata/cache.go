package refdata

import (
	"context"
	"log"
	"sync"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/gateway"
)

// Cache holds the read-mostly reference collections fetched from the backend:
// the group singleton, the member directory, and the song catalog. Refresh is
// caller-triggered; there is no background sync.
//
// Fetch methods never return an error. Failures are logged through the
// injected logger and leave the prior state untouched, so readers always see
// one consistent backend snapshot or the previous one, never a mix.
//
// No lock is held across a gateway call. Two overlapping fetches of the same
// collection can interleave; whichever response lands last wins. That is a
// known, accepted limitation (there is no request fencing).
type Cache struct {
	gw     gateway.Gateway
	logf   func(format string, v ...any)
	notify func()

	mu      sync.RWMutex
	group   *domain.GroupInfo
	members []domain.MemberSummary
	songs   []domain.Song
}

// NewCache constructs an empty cache. logf may be nil (defaults to log.Printf);
// notify may be nil and is invoked after every state change.
func NewCache(gw gateway.Gateway, logf func(format string, v ...any), notify func()) *Cache {
	if logf == nil {
		logf = log.Printf
	}
	return &Cache{gw: gw, logf: logf, notify: notify}
}

// FetchGroupInfo refreshes the group singleton.
func (c *Cache) FetchGroupInfo(ctx context.Context) {
	g, err := c.gw.GetGroupInfo(ctx)
	if err != nil {
		c.logf("refdata: fetch group info: %v", err)
		return
	}
	c.mu.Lock()
	c.group = &g
	c.mu.Unlock()
	c.changed()
}

// SetGroupInfo overrides the cached group record directly, used after the
// record was edited elsewhere to avoid a redundant round trip.
func (c *Cache) SetGroupInfo(g domain.GroupInfo) {
	c.mu.Lock()
	c.group = &g
	c.mu.Unlock()
	c.changed()
}

// FetchMembers replaces the member directory wholesale.
func (c *Cache) FetchMembers(ctx context.Context) {
	ms, err := c.gw.ListMembers(ctx)
	if err != nil {
		c.logf("refdata: fetch members: %v", err)
		return
	}
	c.mu.Lock()
	c.members = ms
	c.mu.Unlock()
	c.changed()
}

// FetchSongs replaces the song catalog wholesale. The backend orders songs by
// title ascending; the order is preserved as fetched.
func (c *Cache) FetchSongs(ctx context.Context) {
	ss, err := c.gw.ListSongs(ctx)
	if err != nil {
		c.logf("refdata: fetch songs: %v", err)
		return
	}
	c.mu.Lock()
	c.songs = ss
	c.mu.Unlock()
	c.changed()
}

// GroupInfo returns the cached group record, if one has been loaded.
func (c *Cache) GroupInfo() (domain.GroupInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.group == nil {
		return domain.GroupInfo{}, false
	}
	return *c.group, true
}

// Members returns the cached member directory. The returned slice is owned by
// the caller.
func (c *Cache) Members() []domain.MemberSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.MemberSummary, len(c.members))
	copy(out, c.members)
	return out
}

// MemberName resolves a member id to a full name ("created by" lookups).
func (c *Cache) MemberName(id domain.MemberID) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.members {
		if m.ID == id {
			return m.FullName, true
		}
	}
	return "", false
}

// Songs returns the cached song catalog. The returned slice is owned by the caller.
func (c *Cache) Songs() []domain.Song {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Song, len(c.songs))
	copy(out, c.songs)
	return out
}

func (c *Cache) changed() {
	if c.notify != nil {
		c.notify()
	}
}
