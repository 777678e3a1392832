package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/activityrepo"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/attendancerepo"
	clockport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/clock"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/memberrepo"
)

// Mark is one member's attendance state for one activity.
type Mark struct {
	ActivityID domain.ActivityID
	MemberID   domain.MemberID
	Present    bool
	UpdatedAt  time.Time
}

// MemberEntry is a member's mark joined with the owning activity's event date,
// the shape consumed by per-member attendance history.
type MemberEntry struct {
	ActivityID domain.ActivityID
	Present    bool
	EventDate  time.Time
}

// ActivitySheet is the roll for one activity: every recorded mark plus the
// Present=true total.
type ActivitySheet struct {
	ActivityID   domain.ActivityID
	Marks        []Mark
	PresentCount int
}

// Service records and reads attendance. Marks use last-write-wins semantics;
// absent and unmarked are distinct states.
type Service struct {
	records    attendancerepo.Repository
	activities activityrepo.Repository
	members    memberrepo.Repository
	clk        clockport.Clock
}

func NewService(records attendancerepo.Repository, activities activityrepo.Repository, members memberrepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		records:    records,
		activities: activities,
		members:    members,
		clk:        clk,
	}
}

// Record upserts the mark for (activity, member).
func (s *Service) Record(ctx context.Context, activityID domain.ActivityID, memberID domain.MemberID, present bool) (Mark, error) {
	if _, err := s.activities.GetByID(ctx, activityID); err != nil {
		return Mark{}, mapLookupError(err)
	}
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		return Mark{}, mapLookupError(err)
	}

	rec := attendancerepo.Record{
		ActivityID: activityID,
		MemberID:   memberID,
		Present:    present,
		UpdatedAt:  s.clk.Now(),
	}
	if err := s.records.Upsert(ctx, rec); err != nil {
		return Mark{}, err
	}
	return Mark(rec), nil
}

// SheetForActivity returns the full roll for one activity.
func (s *Service) SheetForActivity(ctx context.Context, activityID domain.ActivityID) (ActivitySheet, error) {
	if _, err := s.activities.GetByID(ctx, activityID); err != nil {
		return ActivitySheet{}, mapLookupError(err)
	}

	recs, err := s.records.ListByActivity(ctx, activityID)
	if err != nil {
		return ActivitySheet{}, err
	}
	sheet := ActivitySheet{ActivityID: activityID, Marks: make([]Mark, 0, len(recs))}
	for _, rec := range recs {
		sheet.Marks = append(sheet.Marks, Mark(rec))
		if rec.Present {
			sheet.PresentCount++
		}
	}
	return sheet, nil
}

// HistoryForMember returns every mark for a member joined with each activity's
// event date. Marks whose activity has since been deleted are skipped.
func (s *Service) HistoryForMember(ctx context.Context, memberID domain.MemberID) ([]MemberEntry, error) {
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		return nil, mapLookupError(err)
	}

	recs, err := s.records.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	out := make([]MemberEntry, 0, len(recs))
	for _, rec := range recs {
		act, err := s.activities.GetByID(ctx, rec.ActivityID)
		if err != nil {
			if errors.Is(err, activityrepo.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, MemberEntry{
			ActivityID: rec.ActivityID,
			Present:    rec.Present,
			EventDate:  act.EventDate,
		})
	}
	return out, nil
}

func mapLookupError(err error) error {
	switch {
	case errors.Is(err, activityrepo.ErrNotFound):
		return &Error{
			Status:  404,
			Code:    "ACTIVITY_NOT_FOUND",
			Message: "No activity exists with the requested id.",
		}
	case errors.Is(err, memberrepo.ErrNotFound):
		return &Error{
			Status:  404,
			Code:    "MEMBER_NOT_FOUND",
			Message: "No member exists with the requested id.",
		}
	default:
		return err
	}
}
