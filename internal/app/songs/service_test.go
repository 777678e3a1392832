package songs_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	memclock "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/clock"
	memmedia "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/mediastore"
	memsongs "github.com/cantoria-vocal/choir-manager-api/internal/adapters/memory/songrepo"
	"github.com/cantoria-vocal/choir-manager-api/internal/app/songs"
	"github.com/cantoria-vocal/choir-manager-api/internal/domain"
)

func newService(t *testing.T) (*songs.Service, *memmedia.Store, *memclock.ManualClock) {
	t.Helper()
	clk := memclock.NewManualClock(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	media := memmedia.NewStore()
	svc := songs.NewService(memsongs.NewRepo(), media, clk)
	return svc, media, clk
}

func mustCreate(t *testing.T, svc *songs.Service, title string) domain.Song {
	t.Helper()
	s, err := svc.Create(context.Background(), "member-1", songs.CreateInput{Title: title})
	if err != nil {
		t.Fatalf("Create(%q): %v", title, err)
	}
	return s
}

func appError(t *testing.T, err error) *songs.Error {
	t.Helper()
	var ae *songs.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *songs.Error, got %v", err)
	}
	return ae
}

func TestCreateAndGet(t *testing.T) {
	svc, _, clk := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "member-1", songs.CreateInput{
		ProjectID:  "spring-concert",
		Title:      "  Ave Verum Corpus  ",
		Author:     "Mozart",
		Tone:       "D",
		OrderIndex: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Title != "Ave Verum Corpus" {
		t.Errorf("title not trimmed: %q", created.Title)
	}
	if !created.CreatedAt.Equal(clk.Now()) || !created.UpdatedAt.Equal(clk.Now()) {
		t.Errorf("timestamps not taken from clock")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != created {
		t.Errorf("Get = %+v, want %+v", got, created)
	}
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Create(context.Background(), "member-1", songs.CreateInput{Title: "   "})
	ae := appError(t, err)
	if ae.Status != 422 || ae.Code != "VALIDATION_ERROR" {
		t.Errorf("got %d/%s, want 422/VALIDATION_ERROR", ae.Status, ae.Code)
	}
}

func TestGetUnknownSong(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Get(context.Background(), "nope")
	ae := appError(t, err)
	if ae.Status != 404 || ae.Code != "SONG_NOT_FOUND" {
		t.Errorf("got %d/%s, want 404/SONG_NOT_FOUND", ae.Status, ae.Code)
	}
}

func TestListOrdersByTitle(t *testing.T) {
	svc, _, _ := newService(t)

	mustCreate(t, svc, "Zadok the Priest")
	mustCreate(t, svc, "ave maria")
	mustCreate(t, svc, "Hallelujah")

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var titles []string
	for _, s := range list {
		titles = append(titles, s.Title)
	}
	want := []string{"ave maria", "Hallelujah", "Zadok the Priest"}
	if len(titles) != len(want) {
		t.Fatalf("got %d songs, want %d", len(titles), len(want))
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("titles[%d] = %q, want %q", i, titles[i], want[i])
		}
	}

	n, err := svc.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}

func TestUpdateTriState(t *testing.T) {
	svc, _, clk := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "member-1", songs.CreateInput{
		ProjectID: "spring-concert",
		Title:     "Locus Iste",
		Author:    "Bruckner",
		Tone:      "C",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	clk.Advance(time.Hour)

	updated, err := svc.Update(ctx, created.ID, songs.UpdateInput{
		Title:     songs.Some("Locus iste"),
		ProjectID: songs.Null[string](),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Locus iste" {
		t.Errorf("Title = %q", updated.Title)
	}
	if updated.ProjectID != "" {
		t.Errorf("ProjectID not cleared: %q", updated.ProjectID)
	}
	if updated.Author != "Bruckner" || updated.Tone != "C" {
		t.Errorf("unspecified fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Errorf("UpdatedAt not advanced")
	}

	_, err = svc.Update(ctx, created.ID, songs.UpdateInput{Title: songs.Null[string]()})
	ae := appError(t, err)
	if ae.Status != 422 {
		t.Errorf("null title: got status %d, want 422", ae.Status)
	}
}

func TestDelete(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, "Sicut Cervus")
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err := svc.Get(ctx, created.ID)
	ae := appError(t, err)
	if ae.Status != 404 {
		t.Errorf("got status %d, want 404", ae.Status)
	}

	err = svc.Delete(ctx, created.ID)
	ae = appError(t, err)
	if ae.Status != 404 {
		t.Errorf("repeat delete: got status %d, want 404", ae.Status)
	}
}

func TestRegisterAsset(t *testing.T) {
	svc, media, _ := newService(t)
	ctx := context.Background()

	song := mustCreate(t, svc, "O Magnum Mysterium")

	reg, err := svc.RegisterAsset(ctx, song.ID, "member-1", songs.RegisterAssetInput{
		Kind:        domain.AssetKindAudio,
		Title:       "Soprano guide",
		FileName:    "soprano guide.mp3",
		ContentType: "audio/mpeg",
	})
	if err != nil {
		t.Fatalf("RegisterAsset: %v", err)
	}
	if reg.UploadURL == "" {
		t.Errorf("no upload URL returned")
	}
	if reg.Asset.Kind != domain.AssetKindAudio || reg.Asset.SongID != song.ID {
		t.Errorf("asset = %+v", reg.Asset)
	}
	keys := media.Keys()
	if len(keys) != 1 || keys[0] != reg.Asset.StorageKey {
		t.Errorf("storage key not minted by media store: %v vs %q", keys, reg.Asset.StorageKey)
	}

	as, err := svc.ListAssets(ctx, song.ID)
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(as) != 1 || as[0].ID != reg.Asset.ID {
		t.Errorf("ListAssets = %+v", as)
	}
}

func TestRegisterAssetValidation(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	song := mustCreate(t, svc, "Cantique de Jean Racine")

	_, err := svc.RegisterAsset(ctx, song.ID, "member-1", songs.RegisterAssetInput{
		Kind:     "VIDEO",
		FileName: "x.mp4",
	})
	ae := appError(t, err)
	if ae.Status != 422 || ae.Code != "VALIDATION_ERROR" {
		t.Errorf("got %d/%s, want 422/VALIDATION_ERROR", ae.Status, ae.Code)
	}

	_, err = svc.RegisterAsset(ctx, "missing", "member-1", songs.RegisterAssetInput{
		Kind:     domain.AssetKindAudio,
		FileName: "x.mp3",
	})
	ae = appError(t, err)
	if ae.Status != 404 || ae.Code != "SONG_NOT_FOUND" {
		t.Errorf("got %d/%s, want 404/SONG_NOT_FOUND", ae.Status, ae.Code)
	}
}

func TestTracksResolvesAudioOnly(t *testing.T) {
	svc, _, clk := newService(t)
	ctx := context.Background()

	song, err := svc.Create(ctx, "member-1", songs.CreateInput{Title: "Ubi Caritas", Author: "Duruflé"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	audio, err := svc.RegisterAsset(ctx, song.ID, "member-1", songs.RegisterAssetInput{
		Kind:        domain.AssetKindAudio,
		Title:       "Full mix",
		FileName:    "full.mp3",
		ContentType: "audio/mpeg",
	})
	if err != nil {
		t.Fatalf("RegisterAsset audio: %v", err)
	}
	clk.Advance(time.Minute)
	if _, err := svc.RegisterAsset(ctx, song.ID, "member-1", songs.RegisterAssetInput{
		Kind:        domain.AssetKindSheet,
		Title:       "Score",
		FileName:    "score.pdf",
		ContentType: "application/pdf",
	}); err != nil {
		t.Fatalf("RegisterAsset sheet: %v", err)
	}

	tracks, err := svc.Tracks(ctx, song.ID)
	if err != nil {
		t.Fatalf("Tracks: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}
	tr := tracks[0]
	if tr.ID != string(audio.Asset.ID) || tr.Title != "Full mix" || tr.Author != "Duruflé" {
		t.Errorf("track = %+v", tr)
	}
	if !strings.Contains(tr.URL, audio.Asset.StorageKey) {
		t.Errorf("URL %q does not reference storage key %q", tr.URL, audio.Asset.StorageKey)
	}
}
