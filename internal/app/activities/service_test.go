package activities_test

import (
	"context"
	"errors"
	"testing"
	"time"

	memactivities "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/activityrepo"
	memclock "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/clock"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/activities"
	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
)

func newService(t *testing.T) (*activities.Service, *memclock.ManualClock) {
	t.Helper()
	clk := memclock.NewManualClock(time.Date(2025, 4, 1, 19, 0, 0, 0, time.UTC))
	return activities.NewService(memactivities.NewRepo(), clk), clk
}

func appError(t *testing.T, err error) *activities.Error {
	t.Helper()
	var ae *activities.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *activities.Error, got %v", err)
	}
	return ae
}

func TestCreateAndGet(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()

	loc := "Parish hall"
	created, err := svc.Create(ctx, "member-1", activities.CreateInput{
		Title:     "Tuesday rehearsal",
		Kind:      domain.ActivityKindRehearsal,
		EventDate: time.Date(2025, 4, 8, 19, 30, 0, 0, time.UTC),
		Location:  &loc,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Kind != domain.ActivityKindRehearsal {
		t.Errorf("Kind = %s", created.Kind)
	}
	if created.Location == nil || *created.Location != "Parish hall" {
		t.Errorf("Location = %v", created.Location)
	}
	if !created.CreatedAt.Equal(clk.Now()) {
		t.Errorf("CreatedAt not taken from clock")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != created.ID || got.Title != "Tuesday rehearsal" {
		t.Errorf("Get = %+v", got)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	date := time.Date(2025, 5, 1, 19, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   activities.CreateInput
	}{
		{"empty title", activities.CreateInput{Title: " ", Kind: domain.ActivityKindRehearsal, EventDate: date}},
		{"bad kind", activities.CreateInput{Title: "Concert", Kind: "PICNIC", EventDate: date}},
		{"missing date", activities.CreateInput{Title: "Concert", Kind: domain.ActivityKindPerformance}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "member-1", tc.in)
			ae := appError(t, err)
			if ae.Status != 422 || ae.Code != "VALIDATION_ERROR" {
				t.Errorf("got %d/%s, want 422/VALIDATION_ERROR", ae.Status, ae.Code)
			}
		})
	}
}

func TestListOrdersByEventDate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	mk := func(title string, day int) {
		t.Helper()
		_, err := svc.Create(ctx, "member-1", activities.CreateInput{
			Title:     title,
			Kind:      domain.ActivityKindRehearsal,
			EventDate: time.Date(2025, 6, day, 19, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("Create(%q): %v", title, err)
		}
	}
	mk("third", 21)
	mk("first", 7)
	mk("second", 14)

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(list) != len(want) {
		t.Fatalf("got %d activities, want %d", len(list), len(want))
	}
	for i := range want {
		if list[i].Title != want[i] {
			t.Errorf("list[%d].Title = %q, want %q", i, list[i].Title, want[i])
		}
	}
}

func TestUpdateTriState(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()

	loc := "Parish hall"
	created, err := svc.Create(ctx, "member-1", activities.CreateInput{
		Title:     "Spring concert",
		Kind:      domain.ActivityKindPerformance,
		EventDate: time.Date(2025, 5, 17, 20, 0, 0, 0, time.UTC),
		Location:  &loc,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	clk.Advance(time.Hour)

	newDate := time.Date(2025, 5, 24, 20, 0, 0, 0, time.UTC)
	updated, err := svc.Update(ctx, created.ID, activities.UpdateInput{
		EventDate: activities.Some(newDate),
		Location:  activities.Null[string](),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.EventDate.Equal(newDate) {
		t.Errorf("EventDate = %v", updated.EventDate)
	}
	if updated.Location != nil {
		t.Errorf("Location not cleared: %v", *updated.Location)
	}
	if updated.Title != "Spring concert" || updated.Kind != domain.ActivityKindPerformance {
		t.Errorf("unspecified fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Errorf("UpdatedAt not advanced")
	}

	_, err = svc.Update(ctx, created.ID, activities.UpdateInput{Kind: activities.Some(domain.ActivityKind("PICNIC"))})
	ae := appError(t, err)
	if ae.Status != 422 {
		t.Errorf("bad kind: got status %d, want 422", ae.Status)
	}
}

func TestDeleteAndNotFound(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "member-1", activities.CreateInput{
		Title:     "Retreat",
		Kind:      domain.ActivityKindRehearsal,
		EventDate: time.Date(2025, 7, 5, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err = svc.Get(ctx, created.ID)
	ae := appError(t, err)
	if ae.Status != 404 || ae.Code != "ACTIVITY_NOT_FOUND" {
		t.Errorf("got %d/%s, want 404/ACTIVITY_NOT_FOUND", ae.Status, ae.Code)
	}
}
