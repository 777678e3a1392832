package attendancerepo

import (
	"context"
	"sort"
	"sync"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/attendancerepo"
)

type key struct {
	activityID domain.ActivityID
	memberID   domain.MemberID
}

// Repo is an in-memory implementation of attendancerepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex
	m  map[key]attendancerepo.Record
}

func NewRepo() *Repo {
	return &Repo{m: make(map[key]attendancerepo.Record)}
}

func (r *Repo) Get(ctx context.Context, activityID domain.ActivityID, memberID domain.MemberID) (attendancerepo.Record, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.m[key{activityID: activityID, memberID: memberID}]
	if !ok {
		return attendancerepo.Record{}, attendancerepo.ErrNotFound
	}
	return v, nil
}

func (r *Repo) Upsert(ctx context.Context, rec attendancerepo.Record) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[key{activityID: rec.ActivityID, memberID: rec.MemberID}] = rec
	return nil
}

func (r *Repo) ListByActivity(ctx context.Context, activityID domain.ActivityID) ([]attendancerepo.Record, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]attendancerepo.Record, 0)
	for k, v := range r.m {
		if k.activityID == activityID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return string(out[i].MemberID) < string(out[j].MemberID)
	})
	return out, nil
}

func (r *Repo) ListByMember(ctx context.Context, memberID domain.MemberID) ([]attendancerepo.Record, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]attendancerepo.Record, 0)
	for k, v := range r.m {
		if k.memberID == memberID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return string(out[i].ActivityID) < string(out[j].ActivityID)
	})
	return out, nil
}

func (r *Repo) CountPresentByActivity(ctx context.Context, activityID domain.ActivityID) (int, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for k, v := range r.m {
		if k.activityID != activityID {
			continue
		}
		if v.Present {
			n++
		}
	}
	return n, nil
}
