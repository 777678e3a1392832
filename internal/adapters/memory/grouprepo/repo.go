package grouprepo

import (
	"context"
	"sync"

	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/grouprepo"
)

// Repo is an in-memory implementation of grouprepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu     sync.RWMutex
	group  grouprepo.Group
	seeded bool
}

func NewRepo() *Repo {
	return &Repo{}
}

// NewSeededRepo returns a repo holding an initial group record, mirroring the
// bootstrap row a real deployment seeds via migration.
func NewSeededRepo(g grouprepo.Group) *Repo {
	return &Repo{group: cloneGroup(g), seeded: true}
}

func (r *Repo) Get(ctx context.Context) (grouprepo.Group, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.seeded {
		return grouprepo.Group{}, grouprepo.ErrNotFound
	}
	return cloneGroup(r.group), nil
}

func (r *Repo) Update(ctx context.Context, g grouprepo.Group) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.group = cloneGroup(g)
	r.seeded = true
	return nil
}

func cloneGroup(g grouprepo.Group) grouprepo.Group {
	out := g
	if g.LogoURL != nil {
		v := *g.LogoURL
		out.LogoURL = &v
	}
	return out
}
