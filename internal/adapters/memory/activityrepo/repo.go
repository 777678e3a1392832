package activityrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/activityrepo"
)

// Repo is an in-memory implementation of activityrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.ActivityID]activityrepo.Activity
}

func NewRepo() *Repo {
	return &Repo{byID: make(map[domain.ActivityID]activityrepo.Activity)}
}

func (r *Repo) Create(ctx context.Context, a activityrepo.Activity) error {
	_ = ctx
	if a.ID == "" {
		return activityrepo.ErrAlreadyExists
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; ok {
		return activityrepo.ErrAlreadyExists
	}
	r.byID[a.ID] = cloneActivity(a)
	return nil
}

func (r *Repo) Update(ctx context.Context, a activityrepo.Activity) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; !ok {
		return activityrepo.ErrNotFound
	}
	r.byID[a.ID] = cloneActivity(a)
	return nil
}

func (r *Repo) Delete(ctx context.Context, id domain.ActivityID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return activityrepo.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ActivityID) (activityrepo.Activity, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return activityrepo.Activity{}, activityrepo.ErrNotFound
	}
	return cloneActivity(a), nil
}

func (r *Repo) List(ctx context.Context) ([]activityrepo.Activity, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]activityrepo.Activity, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, cloneActivity(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EventDate.Equal(out[j].EventDate) {
			return string(out[i].ID) < string(out[j].ID)
		}
		return out[i].EventDate.Before(out[j].EventDate)
	})
	return out, nil
}

func cloneActivity(a activityrepo.Activity) activityrepo.Activity {
	out := a
	out.Location = cloneStringPtr(a.Location)
	out.Notes = cloneStringPtr(a.Notes)
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
