package attendance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	memactivities "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/activityrepo"
	memattendance "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/attendancerepo"
	memclock "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/clock"
	memmembers "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/memberrepo"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/attendance"
	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/activityrepo"
	"github.com/cantoria-vocal/choir-manager-api/internal/ports/out/memberrepo"
)

type fixture struct {
	svc        *attendance.Service
	activities *memactivities.Repo
	members    *memmembers.Repo
	clk        *memclock.ManualClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		activities: memactivities.NewRepo(),
		members:    memmembers.NewRepo(),
		clk:        memclock.NewManualClock(time.Date(2025, 4, 1, 19, 0, 0, 0, time.UTC)),
	}
	f.svc = attendance.NewService(memattendance.NewRepo(), f.activities, f.members, f.clk)
	return f
}

func (f *fixture) addActivity(t *testing.T, id domain.ActivityID, day int) {
	t.Helper()
	err := f.activities.Create(context.Background(), activityrepo.Activity{
		ID:        id,
		Title:     "rehearsal " + string(id),
		Kind:      domain.ActivityKindRehearsal,
		EventDate: time.Date(2025, 4, day, 19, 0, 0, 0, time.UTC),
		CreatedAt: f.clk.Now(),
		UpdatedAt: f.clk.Now(),
	})
	if err != nil {
		t.Fatalf("seed activity %s: %v", id, err)
	}
}

func (f *fixture) addMember(t *testing.T, id domain.MemberID) {
	t.Helper()
	err := f.members.Create(context.Background(), memberrepo.Member{
		ID:        id,
		Subject:   domain.SubjectID("sub-" + string(id)),
		FullName:  "Member " + string(id),
		Email:     string(id) + "@example.org",
		GroupRole: "singer",
		IsActive:  true,
		CreatedAt: f.clk.Now(),
		UpdatedAt: f.clk.Now(),
	})
	if err != nil {
		t.Fatalf("seed member %s: %v", id, err)
	}
}

func appError(t *testing.T, err error) *attendance.Error {
	t.Helper()
	var ae *attendance.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *attendance.Error, got %v", err)
	}
	return ae
}

func TestRecordAndSheet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addActivity(t, "act-1", 8)
	f.addMember(t, "m1")
	f.addMember(t, "m2")
	f.addMember(t, "m3")

	for _, tc := range []struct {
		member  domain.MemberID
		present bool
	}{
		{"m1", true},
		{"m2", false},
		{"m3", true},
	} {
		if _, err := f.svc.Record(ctx, "act-1", tc.member, tc.present); err != nil {
			t.Fatalf("Record(%s): %v", tc.member, err)
		}
	}

	sheet, err := f.svc.SheetForActivity(ctx, "act-1")
	if err != nil {
		t.Fatalf("SheetForActivity: %v", err)
	}
	if len(sheet.Marks) != 3 {
		t.Errorf("got %d marks, want 3", len(sheet.Marks))
	}
	if sheet.PresentCount != 2 {
		t.Errorf("PresentCount = %d, want 2", sheet.PresentCount)
	}
}

func TestRecordLastWriteWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addActivity(t, "act-1", 8)
	f.addMember(t, "m1")

	if _, err := f.svc.Record(ctx, "act-1", "m1", true); err != nil {
		t.Fatalf("Record: %v", err)
	}
	f.clk.Advance(time.Minute)
	mark, err := f.svc.Record(ctx, "act-1", "m1", false)
	if err != nil {
		t.Fatalf("Record (second): %v", err)
	}
	if mark.Present {
		t.Errorf("second write did not win")
	}

	sheet, err := f.svc.SheetForActivity(ctx, "act-1")
	if err != nil {
		t.Fatalf("SheetForActivity: %v", err)
	}
	if len(sheet.Marks) != 1 {
		t.Fatalf("got %d marks, want 1", len(sheet.Marks))
	}
	if sheet.Marks[0].Present || sheet.PresentCount != 0 {
		t.Errorf("sheet = %+v", sheet)
	}
}

func TestRecordUnknownActivityOrMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addActivity(t, "act-1", 8)
	f.addMember(t, "m1")

	_, err := f.svc.Record(ctx, "nope", "m1", true)
	ae := appError(t, err)
	if ae.Status != 404 || ae.Code != "ACTIVITY_NOT_FOUND" {
		t.Errorf("got %d/%s, want 404/ACTIVITY_NOT_FOUND", ae.Status, ae.Code)
	}

	_, err = f.svc.Record(ctx, "act-1", "nope", true)
	ae = appError(t, err)
	if ae.Status != 404 || ae.Code != "MEMBER_NOT_FOUND" {
		t.Errorf("got %d/%s, want 404/MEMBER_NOT_FOUND", ae.Status, ae.Code)
	}
}

func TestHistoryForMemberJoinsEventDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addActivity(t, "act-1", 8)
	f.addActivity(t, "act-2", 15)
	f.addMember(t, "m1")

	if _, err := f.svc.Record(ctx, "act-1", "m1", true); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := f.svc.Record(ctx, "act-2", "m1", false); err != nil {
		t.Fatalf("Record: %v", err)
	}

	hist, err := f.svc.HistoryForMember(ctx, "m1")
	if err != nil {
		t.Fatalf("HistoryForMember: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("got %d entries, want 2", len(hist))
	}
	byActivity := map[domain.ActivityID]attendance.MemberEntry{}
	for _, e := range hist {
		byActivity[e.ActivityID] = e
	}
	e1 := byActivity["act-1"]
	if !e1.Present || !e1.EventDate.Equal(time.Date(2025, 4, 8, 19, 0, 0, 0, time.UTC)) {
		t.Errorf("act-1 entry = %+v", e1)
	}
	e2 := byActivity["act-2"]
	if e2.Present || !e2.EventDate.Equal(time.Date(2025, 4, 15, 19, 0, 0, 0, time.UTC)) {
		t.Errorf("act-2 entry = %+v", e2)
	}
}

func TestHistorySkipsDeletedActivities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addActivity(t, "act-1", 8)
	f.addActivity(t, "act-2", 15)
	f.addMember(t, "m1")

	if _, err := f.svc.Record(ctx, "act-1", "m1", true); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := f.svc.Record(ctx, "act-2", "m1", true); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := f.activities.Delete(ctx, "act-2"); err != nil {
		t.Fatalf("delete activity: %v", err)
	}

	hist, err := f.svc.HistoryForMember(ctx, "m1")
	if err != nil {
		t.Fatalf("HistoryForMember: %v", err)
	}
	if len(hist) != 1 || hist[0].ActivityID != "act-1" {
		t.Errorf("history = %+v", hist)
	}
}
