package activities

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/activityrepo"
	clockport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/clock"
)

// Service manages the group's schedule of rehearsals and performances.
type Service struct {
	repo activityrepo.Repository
	clk  clockport.Clock

	newActivityID func() domain.ActivityID
}

func NewService(repo activityrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		repo: repo,
		clk:  clk,
		newActivityID: func() domain.ActivityID {
			return domain.ActivityID(uuid.NewString())
		},
	}
}

// List returns the schedule ordered by event date ascending.
func (s *Service) List(ctx context.Context) ([]domain.Activity, error) {
	as, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Activity, 0, len(as))
	for _, rec := range as {
		out = append(out, toDomain(rec))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id domain.ActivityID) (domain.Activity, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Activity{}, notFoundTo404(err)
	}
	return toDomain(rec), nil
}

func (s *Service) Create(ctx context.Context, createdBy domain.MemberID, in CreateInput) (domain.Activity, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Activity{}, validationError("title", "must be non-empty")
	}
	if in.Kind != domain.ActivityKindRehearsal && in.Kind != domain.ActivityKindPerformance {
		return domain.Activity{}, validationError("kind", "must be REHEARSAL or PERFORMANCE")
	}
	if in.EventDate.IsZero() {
		return domain.Activity{}, validationError("eventDate", "is required")
	}

	now := s.clk.Now()
	rec := activityrepo.Activity{
		ID:        s.newActivityID(),
		Title:     title,
		Kind:      in.Kind,
		EventDate: in.EventDate,
		Location:  trimPtr(in.Location),
		Notes:     trimPtr(in.Notes),
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return domain.Activity{}, err
	}
	return toDomain(rec), nil
}

func (s *Service) Update(ctx context.Context, id domain.ActivityID, in UpdateInput) (domain.Activity, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Activity{}, notFoundTo404(err)
	}

	if in.Title.IsSpecified() {
		if in.Title.IsNull() {
			return domain.Activity{}, validationError("title", "cannot be null")
		}
		title := strings.TrimSpace(in.Title.Value())
		if title == "" {
			return domain.Activity{}, validationError("title", "must be non-empty")
		}
		rec.Title = title
	}
	if in.Kind.IsSpecified() {
		if in.Kind.IsNull() {
			return domain.Activity{}, validationError("kind", "cannot be null")
		}
		k := in.Kind.Value()
		if k != domain.ActivityKindRehearsal && k != domain.ActivityKindPerformance {
			return domain.Activity{}, validationError("kind", "must be REHEARSAL or PERFORMANCE")
		}
		rec.Kind = k
	}
	if in.EventDate.IsSpecified() {
		if in.EventDate.IsNull() || in.EventDate.Value().IsZero() {
			return domain.Activity{}, validationError("eventDate", "cannot be null")
		}
		rec.EventDate = in.EventDate.Value()
	}
	if in.Location.IsSpecified() {
		if in.Location.IsNull() {
			rec.Location = nil
		} else {
			v := strings.TrimSpace(in.Location.Value())
			rec.Location = &v
		}
	}
	if in.Notes.IsSpecified() {
		if in.Notes.IsNull() {
			rec.Notes = nil
		} else {
			v := strings.TrimSpace(in.Notes.Value())
			rec.Notes = &v
		}
	}

	rec.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, rec); err != nil {
		return domain.Activity{}, notFoundTo404(err)
	}
	return toDomain(rec), nil
}

func (s *Service) Delete(ctx context.Context, id domain.ActivityID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundTo404(err)
	}
	return nil
}

func validationError(field, msg string) *Error {
	return &Error{
		Status:  422,
		Code:    "VALIDATION_ERROR",
		Message: "invalid " + field,
		Details: map[string]any{field: msg},
	}
}

func notFoundTo404(err error) error {
	if errors.Is(err, activityrepo.ErrNotFound) {
		return &Error{
			Status:  404,
			Code:    "ACTIVITY_NOT_FOUND",
			Message: "No activity exists with the requested id.",
		}
	}
	return err
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func toDomain(rec activityrepo.Activity) domain.Activity {
	return domain.Activity{
		ID:        rec.ID,
		Title:     rec.Title,
		Kind:      rec.Kind,
		EventDate: rec.EventDate,
		Location:  rec.Location,
		Notes:     rec.Notes,
		CreatedBy: rec.CreatedBy,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
