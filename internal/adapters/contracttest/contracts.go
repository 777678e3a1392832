// Package contracttest holds behavior suites shared by every adapter
// implementing the same outbound port. Memory and Postgres adapters run the
// same suite so they cannot drift apart.
package contracttest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
	activityrepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/activityrepo"
	attendancerepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/attendancerepo"
	grouprepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/grouprepo"
	idempotencyport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/idempotency"
	memberrepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/memberrepo"
	songrepoport "github.com/cantoria-vocal/choir-manager-api/internal/ports/out/songrepo"
)

type CleanupFunc = func()

type MemberRepoFactory func(t *testing.T) (memberrepoport.Repository, CleanupFunc)
type GroupRepoFactory func(t *testing.T) (grouprepoport.Repository, CleanupFunc)
type SongRepoFactory func(t *testing.T) (songrepoport.Repository, CleanupFunc)
type ActivityRepoFactory func(t *testing.T) (activityrepoport.Repository, CleanupFunc)
type AttendanceRepoFactory func(t *testing.T) (attendancerepoport.Repository, CleanupFunc)
type IdemStoreFactory func(t *testing.T) (idempotencyport.Store, CleanupFunc)

func RunMemberRepo(t *testing.T, newRepo MemberRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	aID := domain.MemberID(uuid.NewString())
	sub := domain.SubjectID("sub-a")
	if err := repo.Create(ctx, memberrepoport.Member{
		ID:        aID,
		Subject:   sub,
		FullName:  "Alice Johnson",
		Email:     "alice@example.com",
		GroupRole: "singer",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if _, err := repo.GetByID(ctx, aID); err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if _, err := repo.GetBySubject(ctx, sub); err != nil {
		t.Fatalf("GetBySubject: %v", err)
	}

	// Subject uniqueness.
	if err := repo.Create(ctx, memberrepoport.Member{
		ID:        domain.MemberID(uuid.NewString()),
		Subject:   sub,
		FullName:  "Alice 2",
		Email:     "alice2@example.com",
		GroupRole: "singer",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}); err == nil {
		t.Fatalf("expected subject uniqueness error")
	}

	// Deterministic list ordering by fullName (case-insensitive).
	bID := domain.MemberID(uuid.NewString())
	if err := repo.Create(ctx, memberrepoport.Member{
		ID:        bID,
		Subject:   domain.SubjectID("sub-b"),
		FullName:  "bob",
		Email:     "bob@example.com",
		GroupRole: "singer",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("Create b: %v", err)
	}
	cs, err := repo.List(ctx, true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cs) < 2 || cs[0].FullName != "Alice Johnson" {
		t.Fatalf("unexpected ordering: %#v", cs)
	}

	// Inactive members hidden unless requested.
	inactiveID := domain.MemberID(uuid.NewString())
	if err := repo.Create(ctx, memberrepoport.Member{
		ID:        inactiveID,
		Subject:   domain.SubjectID("sub-c"),
		FullName:  "Carol Gone",
		Email:     "carol@example.com",
		GroupRole: "singer",
		IsActive:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("Create inactive: %v", err)
	}
	active, err := repo.List(ctx, false)
	if err != nil {
		t.Fatalf("List active: %v", err)
	}
	for _, m := range active {
		if m.ID == inactiveID {
			t.Fatalf("inactive member leaked into active list")
		}
	}
}

func RunGroupRepo(t *testing.T, newRepo GroupRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	logo := "https://cdn.example.com/logo.png"
	if err := repo.Update(ctx, grouprepoport.Group{
		Name:      "Cantoria Vocal",
		LogoURL:   &logo,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Cantoria Vocal" || got.LogoURL == nil || *got.LogoURL != logo {
		t.Fatalf("unexpected group: %#v", got)
	}

	// Wholesale replace, including clearing the logo.
	if err := repo.Update(ctx, grouprepoport.Group{
		Name:      "Cantoria",
		UpdatedAt: now.Add(time.Hour),
	}); err != nil {
		t.Fatalf("Update replace: %v", err)
	}
	got, err = repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get after replace: %v", err)
	}
	if got.Name != "Cantoria" || got.LogoURL != nil {
		t.Fatalf("replace not wholesale: %#v", got)
	}
}

func RunSongRepo(t *testing.T, newMemberRepo MemberRepoFactory, newRepo SongRepoFactory) {
	t.Helper()
	ctx := context.Background()

	members, mCleanup := newMemberRepo(t)
	if mCleanup != nil {
		t.Cleanup(mCleanup)
	}
	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(2000, 0).UTC()
	creatorID := seedCreator(t, ctx, members, now)

	aID := domain.SongID(uuid.NewString())
	if err := repo.Create(ctx, songrepoport.Song{
		ID:        aID,
		Title:     "Zadok the Priest",
		Author:    "Handel",
		CreatedBy: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("Create a: %v", err)
	}
	bID := domain.SongID(uuid.NewString())
	if err := repo.Create(ctx, songrepoport.Song{
		ID:        bID,
		Title:     "ave maria",
		Author:    "Schubert",
		CreatedBy: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("Create b: %v", err)
	}

	// Ordering by title (case-insensitive).
	ss, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ss) != 2 || ss[0].ID != bID || ss[1].ID != aID {
		t.Fatalf("unexpected ordering: %#v", ss)
	}
	if n, err := repo.Count(ctx); err != nil || n != 2 {
		t.Fatalf("Count: n=%d err=%v", n, err)
	}

	// Assets round-trip plus delete cascade.
	assetID := domain.AssetID(uuid.NewString())
	if err := repo.AddAsset(ctx, songrepoport.Asset{
		ID:         assetID,
		SongID:     aID,
		Kind:       domain.AssetKindAudio,
		Title:      "Full mix",
		StorageKey: "media/full.mp3",
		CreatedBy:  creatorID,
		CreatedAt:  now,
	}); err != nil {
		t.Fatalf("AddAsset: %v", err)
	}
	as, err := repo.ListAssets(ctx, aID)
	if err != nil || len(as) != 1 || as[0].ID != assetID {
		t.Fatalf("ListAssets: %#v err=%v", as, err)
	}
	if err := repo.Delete(ctx, aID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetAsset(ctx, assetID); err == nil {
		t.Fatalf("asset survived song delete")
	}
}

// RunActivityAndAttendanceRepos exercises behaviors that require coordinated seeding.
func RunActivityAndAttendanceRepos(t *testing.T, newMemberRepo MemberRepoFactory, newActivityRepo ActivityRepoFactory, newAttendanceRepo AttendanceRepoFactory) {
	t.Helper()
	ctx := context.Background()

	members, mCleanup := newMemberRepo(t)
	if mCleanup != nil {
		t.Cleanup(mCleanup)
	}
	activities, aCleanup := newActivityRepo(t)
	if aCleanup != nil {
		t.Cleanup(aCleanup)
	}
	records, rCleanup := newAttendanceRepo(t)
	if rCleanup != nil {
		t.Cleanup(rCleanup)
	}

	now := time.Unix(3000, 0).UTC()
	creatorID := seedCreator(t, ctx, members, now)

	actID := domain.ActivityID(uuid.NewString())
	if err := activities.Create(ctx, activityrepoport.Activity{
		ID:        actID,
		Title:     "Tuesday rehearsal",
		Kind:      domain.ActivityKindRehearsal,
		EventDate: now.Add(7 * 24 * time.Hour),
		CreatedBy: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("Create activity: %v", err)
	}
	got, err := activities.GetByID(ctx, actID)
	if err != nil {
		t.Fatalf("GetByID activity: %v", err)
	}
	if got.ID != actID || got.Kind != domain.ActivityKindRehearsal {
		t.Fatalf("unexpected activity: %#v", got)
	}

	// Attendance upsert is last-write-wins.
	if err := records.Upsert(ctx, attendancerepoport.Record{
		ActivityID: actID,
		MemberID:   creatorID,
		Present:    true,
		UpdatedAt:  now,
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if n, err := records.CountPresentByActivity(ctx, actID); err != nil || n != 1 {
		t.Fatalf("CountPresentByActivity: n=%d err=%v", n, err)
	}
	if err := records.Upsert(ctx, attendancerepoport.Record{
		ActivityID: actID,
		MemberID:   creatorID,
		Present:    false,
		UpdatedAt:  now.Add(time.Minute),
	}); err != nil {
		t.Fatalf("Upsert overwrite: %v", err)
	}
	rec, err := records.Get(ctx, actID, creatorID)
	if err != nil || rec.Present {
		t.Fatalf("expected overwritten record, got %#v err=%v", rec, err)
	}
	if n, err := records.CountPresentByActivity(ctx, actID); err != nil || n != 0 {
		t.Fatalf("CountPresentByActivity after flip: n=%d err=%v", n, err)
	}

	rows, err := records.ListByMember(ctx, creatorID)
	if err != nil || len(rows) != 1 || rows[0].ActivityID != actID {
		t.Fatalf("ListByMember: %#v err=%v", rows, err)
	}
}

func RunIdempotencyStore(t *testing.T, newStore IdemStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	fp := idempotencyport.Fingerprint{
		Key:      "k-1",
		Subject:  domain.SubjectID("sub-1"),
		Method:   "PATCH",
		Route:    "/members/me",
		BodyHash: "",
	}
	rec := idempotencyport.Record{
		StatusCode:  200,
		ContentType: "application/json",
		Body:        []byte(`{"ok":true}`),
		CreatedAt:   time.Unix(123, 0).UTC(),
	}
	if err := store.Put(ctx, fp, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := store.Get(ctx, fp)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if string(got.Body) != `{"ok":true}` || got.ContentType != "application/json" || got.StatusCode != 200 {
		t.Fatalf("unexpected record: %+v", got)
	}

	// A different body hash is a different fingerprint.
	fp2 := fp
	fp2.BodyHash = "other"
	if _, ok, err := store.Get(ctx, fp2); err != nil || ok {
		t.Fatalf("expected miss for different body hash, ok=%v err=%v", ok, err)
	}

	// Overwrite semantics.
	rec2 := rec
	rec2.Body = []byte(`{"ok":false}`)
	if err := store.Put(ctx, fp, rec2); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, ok, err = store.Get(ctx, fp)
	if err != nil || !ok || string(got.Body) != `{"ok":false}` {
		t.Fatalf("expected overwritten record, got ok=%v err=%v body=%q", ok, err, string(got.Body))
	}
}

func seedCreator(t *testing.T, ctx context.Context, members memberrepoport.Repository, now time.Time) domain.MemberID {
	t.Helper()
	creatorID := domain.MemberID(uuid.NewString())
	if err := members.Create(ctx, memberrepoport.Member{
		ID:        creatorID,
		Subject:   domain.SubjectID("sub-" + string(creatorID)),
		FullName:  "Creator",
		Email:     string(creatorID) + "@example.com",
		GroupRole: "conductor",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("seed creator: %v", err)
	}
	return creatorID
}
