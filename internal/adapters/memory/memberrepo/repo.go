package memberrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/memberrepo"
)

// Repo is an in-memory implementation of memberrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID    map[domain.MemberID]memberrepo.Member
	idBySub map[domain.SubjectID]domain.MemberID
}

func NewRepo() *Repo {
	return &Repo{
		byID:    make(map[domain.MemberID]memberrepo.Member),
		idBySub: make(map[domain.SubjectID]domain.MemberID),
	}
}

func (r *Repo) Create(ctx context.Context, m memberrepo.Member) error {
	_ = ctx
	if m.ID == "" {
		return memberrepo.ErrAlreadyExists // treat empty ID as invalid; app layer validates real inputs
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[m.ID]; ok {
		return memberrepo.ErrAlreadyExists
	}
	if existingID, ok := r.idBySub[m.Subject]; ok && existingID != "" {
		return memberrepo.ErrSubjectAlreadyBound
	}

	r.byID[m.ID] = cloneMember(m)
	r.idBySub[m.Subject] = m.ID
	return nil
}

func (r *Repo) Update(ctx context.Context, m memberrepo.Member) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[m.ID]
	if !ok {
		return memberrepo.ErrNotFound
	}
	// Subject binding is immutable.
	if existing.Subject != m.Subject {
		return memberrepo.ErrSubjectAlreadyBound
	}

	r.byID[m.ID] = cloneMember(m)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.MemberID) (memberrepo.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}
	return cloneMember(m), nil
}

func (r *Repo) GetBySubject(ctx context.Context, subject domain.SubjectID) (memberrepo.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.idBySub[subject]
	if !ok {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}
	m, ok := r.byID[id]
	if !ok {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}
	return cloneMember(m), nil
}

func (r *Repo) List(ctx context.Context, includeInactive bool) ([]memberrepo.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]memberrepo.Member, 0, len(r.byID))
	for _, m := range r.byID {
		if !includeInactive && !m.IsActive {
			continue
		}
		out = append(out, cloneMember(m))
	}
	sortMembersByFullName(out)
	return out, nil
}

func cloneMember(m memberrepo.Member) memberrepo.Member {
	out := m
	if m.AvatarURL != nil {
		v := *m.AvatarURL
		out.AvatarURL = &v
	}
	return out
}

func sortMembersByFullName(ms []memberrepo.Member) {
	sort.Slice(ms, func(i, j int) bool {
		ni := strings.ToLower(ms[i].FullName)
		nj := strings.ToLower(ms[j].FullName)
		if ni == nj {
			return string(ms[i].ID) < string(ms[j].ID)
		}
		return ni < nj
	})
}
