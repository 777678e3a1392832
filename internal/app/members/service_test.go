package members_test

import (
	"context"
	"errors"
	"testing"
	"time"

	memclock "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/clock"
	memmembers "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/memberrepo"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/members"
	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
)

func newService(t *testing.T) (*members.Service, *memclock.ManualClock) {
	t.Helper()
	clk := memclock.NewManualClock(time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))
	return members.NewService(memmembers.NewRepo(), clk), clk
}

func appError(t *testing.T, err error) *members.Error {
	t.Helper()
	var ae *members.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *members.Error, got %v", err)
	}
	return ae
}

func TestCreateMyProfile(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()

	m, err := svc.CreateMyProfile(ctx, "sub-1", members.CreateMyProfileInput{
		FullName: "  María    García  ",
		Email:    "maria@example.org",
	})
	if err != nil {
		t.Fatalf("CreateMyProfile: %v", err)
	}
	if m.FullName != "María García" {
		t.Errorf("FullName = %q, want whitespace-normalized name", m.FullName)
	}
	if m.GroupRole != members.DefaultGroupRole {
		t.Errorf("GroupRole = %q, want default %q", m.GroupRole, members.DefaultGroupRole)
	}
	if !m.IsActive {
		t.Errorf("new member not active")
	}
	if !m.CreatedAt.Equal(clk.Now()) {
		t.Errorf("CreatedAt not taken from clock")
	}

	got, err := svc.GetMyProfile(ctx, "sub-1")
	if err != nil {
		t.Fatalf("GetMyProfile: %v", err)
	}
	if got.ID != m.ID {
		t.Errorf("GetMyProfile returned different member")
	}
}

func TestCreateMyProfileConflicts(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.CreateMyProfile(ctx, "sub-1", members.CreateMyProfileInput{
		FullName: "Anna Lind",
		Email:    "anna@example.org",
	}); err != nil {
		t.Fatalf("CreateMyProfile: %v", err)
	}

	_, err := svc.CreateMyProfile(ctx, "sub-1", members.CreateMyProfileInput{
		FullName: "Anna Lind",
		Email:    "anna2@example.org",
	})
	ae := appError(t, err)
	if ae.Status != 409 || ae.Code != "MEMBER_ALREADY_EXISTS" {
		t.Errorf("got %d/%s, want 409/MEMBER_ALREADY_EXISTS", ae.Status, ae.Code)
	}

	_, err = svc.CreateMyProfile(ctx, "sub-2", members.CreateMyProfileInput{
		FullName: "Other Person",
		Email:    "ANNA@example.org",
	})
	ae = appError(t, err)
	if ae.Status != 409 || ae.Code != "EMAIL_ALREADY_IN_USE" {
		t.Errorf("got %d/%s, want 409/EMAIL_ALREADY_IN_USE", ae.Status, ae.Code)
	}
}

func TestCreateMyProfileValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   members.CreateMyProfileInput
	}{
		{"empty name", members.CreateMyProfileInput{FullName: "   ", Email: "a@example.org"}},
		{"empty email", members.CreateMyProfileInput{FullName: "A B", Email: ""}},
		{"garbage email", members.CreateMyProfileInput{FullName: "A B", Email: "not-an-email"}},
		{"display-name email", members.CreateMyProfileInput{FullName: "A B", Email: "A <a@example.org>"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateMyProfile(ctx, "sub-x", tc.in)
			ae := appError(t, err)
			if ae.Status != 422 || ae.Code != "VALIDATION_ERROR" {
				t.Errorf("got %d/%s, want 422/VALIDATION_ERROR", ae.Status, ae.Code)
			}
		})
	}
}

func TestGetMyProfileNotProvisioned(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GetMyProfile(context.Background(), "sub-unknown")
	ae := appError(t, err)
	if ae.Status != 404 || ae.Code != "MEMBER_NOT_PROVISIONED" {
		t.Errorf("got %d/%s, want 404/MEMBER_NOT_PROVISIONED", ae.Status, ae.Code)
	}
}

func TestGetProfile(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	avatar := "https://media.invalid/avatars/1.png"
	created, err := svc.CreateMyProfile(ctx, "sub-1", members.CreateMyProfileInput{
		FullName:  "Jonas Berg",
		Email:     "jonas@example.org",
		AvatarURL: &avatar,
		GroupRole: "conductor",
	})
	if err != nil {
		t.Fatalf("CreateMyProfile: %v", err)
	}

	info, err := svc.GetProfile(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if info.FullName != "Jonas Berg" || info.GroupRole != "conductor" {
		t.Errorf("info = %+v", info)
	}
	if info.AvatarURL == nil || *info.AvatarURL != avatar {
		t.Errorf("AvatarURL = %v", info.AvatarURL)
	}

	_, err = svc.GetProfile(ctx, "missing")
	ae := appError(t, err)
	if ae.Status != 404 || ae.Code != "MEMBER_NOT_FOUND" {
		t.Errorf("got %d/%s, want 404/MEMBER_NOT_FOUND", ae.Status, ae.Code)
	}
}

func TestListDirectory(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for i, name := range []string{"Zoe Adams", "anna Lind", "Mark Reed"} {
		if _, err := svc.CreateMyProfile(ctx, domain.SubjectID("sub-"+string(rune('a'+i))), members.CreateMyProfileInput{
			FullName: name,
			Email:    name[:1] + "@example.org",
		}); err != nil {
			t.Fatalf("CreateMyProfile(%q): %v", name, err)
		}
	}

	dir, err := svc.ListDirectory(ctx, false)
	if err != nil {
		t.Fatalf("ListDirectory: %v", err)
	}
	var names []string
	for _, m := range dir {
		names = append(names, m.FullName)
	}
	want := []string{"anna Lind", "Mark Reed", "Zoe Adams"}
	if len(names) != len(want) {
		t.Fatalf("got %d members, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestUpdateMyProfileTriState(t *testing.T) {
	svc, clk := newService(t)
	ctx := context.Background()

	avatar := "https://media.invalid/avatars/1.png"
	created, err := svc.CreateMyProfile(ctx, "sub-1", members.CreateMyProfileInput{
		FullName:  "Anna Lind",
		Email:     "anna@example.org",
		AvatarURL: &avatar,
	})
	if err != nil {
		t.Fatalf("CreateMyProfile: %v", err)
	}
	clk.Advance(time.Hour)

	updated, err := svc.UpdateMyProfile(ctx, "sub-1", members.UpdateMyProfileInput{
		Email:     members.Some("anna.lind@example.org"),
		AvatarURL: members.Null[string](),
	})
	if err != nil {
		t.Fatalf("UpdateMyProfile: %v", err)
	}
	if updated.Email != "anna.lind@example.org" {
		t.Errorf("Email = %q", updated.Email)
	}
	if updated.AvatarURL != nil {
		t.Errorf("AvatarURL not cleared: %v", *updated.AvatarURL)
	}
	if updated.FullName != "Anna Lind" || updated.GroupRole != members.DefaultGroupRole {
		t.Errorf("unspecified fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt not advanced")
	}

	_, err = svc.UpdateMyProfile(ctx, "sub-1", members.UpdateMyProfileInput{
		FullName: members.Null[string](),
	})
	ae := appError(t, err)
	if ae.Status != 422 {
		t.Errorf("null fullName: got status %d, want 422", ae.Status)
	}
}

func TestUpdateMyProfileEmailConflict(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.CreateMyProfile(ctx, "sub-1", members.CreateMyProfileInput{
		FullName: "Anna Lind",
		Email:    "anna@example.org",
	}); err != nil {
		t.Fatalf("CreateMyProfile: %v", err)
	}
	if _, err := svc.CreateMyProfile(ctx, "sub-2", members.CreateMyProfileInput{
		FullName: "Mark Reed",
		Email:    "mark@example.org",
	}); err != nil {
		t.Fatalf("CreateMyProfile: %v", err)
	}

	_, err := svc.UpdateMyProfile(ctx, "sub-2", members.UpdateMyProfileInput{
		Email: members.Some("Anna@example.org"),
	})
	ae := appError(t, err)
	if ae.Status != 409 || ae.Code != "EMAIL_ALREADY_IN_USE" {
		t.Errorf("got %d/%s, want 409/EMAIL_ALREADY_IN_USE", ae.Status, ae.Code)
	}

	// Keeping your own email is not a conflict.
	if _, err := svc.UpdateMyProfile(ctx, "sub-2", members.UpdateMyProfileInput{
		Email: members.Some("mark@example.org"),
	}); err != nil {
		t.Errorf("re-submitting own email: %v", err)
	}
}
