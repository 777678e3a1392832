package group

import (
	"context"
	"errors"
	"strings"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	clockport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/clock"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/grouprepo"
)

// Error is an application-layer error that can be mapped to an HTTP response.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// UpdateInput carries the editable group fields. Name cannot be null; a null
// LogoURL clears the logo.
type UpdateInput struct {
	Name    *string
	LogoURL *string
	// ClearLogo clears the logo independently of LogoURL.
	ClearLogo bool
}

// Service manages the singleton group record.
type Service struct {
	repo grouprepo.Repository
	clk  clockport.Clock
}

func NewService(repo grouprepo.Repository, clk clockport.Clock) *Service {
	return &Service{repo: repo, clk: clk}
}

func (s *Service) Get(ctx context.Context) (domain.GroupInfo, error) {
	g, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, grouprepo.ErrNotFound) {
			return domain.GroupInfo{}, &Error{
				Status:  404,
				Code:    "GROUP_NOT_CONFIGURED",
				Message: "The group record has not been seeded.",
			}
		}
		return domain.GroupInfo{}, err
	}
	return toDomain(g), nil
}

func (s *Service) Update(ctx context.Context, in UpdateInput) (domain.GroupInfo, error) {
	g, err := s.repo.Get(ctx)
	if err != nil && !errors.Is(err, grouprepo.ErrNotFound) {
		return domain.GroupInfo{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.GroupInfo{}, &Error{
				Status:  422,
				Code:    "VALIDATION_ERROR",
				Message: "invalid name",
				Details: map[string]any{"name": "must be non-empty"},
			}
		}
		g.Name = name
	} else if g.Name == "" {
		return domain.GroupInfo{}, &Error{
			Status:  422,
			Code:    "VALIDATION_ERROR",
			Message: "invalid name",
			Details: map[string]any{"name": "must be set on first update"},
		}
	}

	switch {
	case in.ClearLogo:
		g.LogoURL = nil
	case in.LogoURL != nil:
		v := strings.TrimSpace(*in.LogoURL)
		if v == "" {
			g.LogoURL = nil
		} else {
			g.LogoURL = &v
		}
	}

	g.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, g); err != nil {
		return domain.GroupInfo{}, err
	}
	return toDomain(g), nil
}

func toDomain(g grouprepo.Group) domain.GroupInfo {
	out := domain.GroupInfo{Name: g.Name, UpdatedAt: g.UpdatedAt}
	if g.LogoURL != nil {
		v := *g.LogoURL
		out.LogoURL = &v
	}
	return out
}
