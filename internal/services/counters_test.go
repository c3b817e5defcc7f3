package services

import (
	"context"
	"testing"
)

func TestAlbumCountersFollowTrackLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	tracks := NewTrackService(st)
	albums := NewAlbumService(st)

	artist := seedArtist(t, st, "Nova Circuit")
	albumA, err := albums.Create(ctx, CreateAlbumInput{AlbumTitle: "First Light", ArtistID: artist.ID})
	if err != nil {
		t.Fatalf("create album: %v", err)
	}
	if albumA.TotalTracks != 0 || albumA.TotalDurationSeconds != 0 {
		t.Fatalf("fresh album should have zero counters, got %d/%d", albumA.TotalTracks, albumA.TotalDurationSeconds)
	}

	t1, err := tracks.Create(ctx, CreateTrackInput{
		Title: "Dawn", TrackFile: "dawn.mp3", ArtistID: artist.ID, AlbumID: &albumA.ID, Duration: 180,
	})
	if err != nil {
		t.Fatalf("create t1: %v", err)
	}
	if _, err := tracks.Create(ctx, CreateTrackInput{
		Title: "Noon", TrackFile: "noon.mp3", ArtistID: artist.ID, AlbumID: &albumA.ID, Duration: 120,
	}); err != nil {
		t.Fatalf("create t2: %v", err)
	}

	got, err := albums.Get(ctx, albumA.ID)
	if err != nil {
		t.Fatalf("get album: %v", err)
	}
	if got.TotalTracks != 2 || got.TotalDurationSeconds != 300 {
		t.Fatalf("after two creates want 2/300, got %d/%d", got.TotalTracks, got.TotalDurationSeconds)
	}

	if err := tracks.Delete(ctx, t1.ID); err != nil {
		t.Fatalf("delete t1: %v", err)
	}
	got, err = albums.Get(ctx, albumA.ID)
	if err != nil {
		t.Fatalf("get album: %v", err)
	}
	if got.TotalTracks != 1 || got.TotalDurationSeconds != 120 {
		t.Fatalf("after delete want 1/120, got %d/%d", got.TotalTracks, got.TotalDurationSeconds)
	}

	// The persisted counters converge too, not just the read-time ones
	stored, err := st.Albums.FindByID(ctx, albumA.ID)
	if err != nil {
		t.Fatalf("load stored album: %v", err)
	}
	if stored.TotalTracks != 1 || stored.TotalDurationSeconds != 120 {
		t.Fatalf("stored counters want 1/120, got %d/%d", stored.TotalTracks, stored.TotalDurationSeconds)
	}
}

func TestMovingTrackAdjustsBothAlbums(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	tracks := NewTrackService(st)

	artist := seedArtist(t, st, "Delta Waves")
	albumA := seedAlbum(t, st, "Side A", artist.ID)
	albumB := seedAlbum(t, st, "Side B", artist.ID)

	track, err := tracks.Create(ctx, CreateTrackInput{
		Title: "Drift", TrackFile: "drift.mp3", ArtistID: artist.ID, AlbumID: &albumA.ID, Duration: 240,
	})
	if err != nil {
		t.Fatalf("create track: %v", err)
	}

	if _, err := tracks.Update(ctx, track.ID, UpdateTrackInput{AlbumID: &albumB.ID}); err != nil {
		t.Fatalf("move track: %v", err)
	}

	a, _ := st.Albums.FindByID(ctx, albumA.ID)
	b, _ := st.Albums.FindByID(ctx, albumB.ID)
	if a.TotalTracks != 0 || a.TotalDurationSeconds != 0 {
		t.Errorf("source album should be empty, got %d/%d", a.TotalTracks, a.TotalDurationSeconds)
	}
	if b.TotalTracks != 1 || b.TotalDurationSeconds != 240 {
		t.Errorf("target album want 1/240, got %d/%d", b.TotalTracks, b.TotalDurationSeconds)
	}
}

func TestDurationChangeRepropagatesToAlbum(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	tracks := NewTrackService(st)

	artist := seedArtist(t, st, "Lo Tide")
	album := seedAlbum(t, st, "Ebb", artist.ID)
	track, err := tracks.Create(ctx, CreateTrackInput{
		Title: "Pull", TrackFile: "pull.mp3", ArtistID: artist.ID, AlbumID: &album.ID, Duration: 100,
	})
	if err != nil {
		t.Fatalf("create track: %v", err)
	}

	longer := 150
	if _, err := tracks.Update(ctx, track.ID, UpdateTrackInput{Duration: &longer}); err != nil {
		t.Fatalf("update duration: %v", err)
	}

	stored, _ := st.Albums.FindByID(ctx, album.ID)
	if stored.TotalDurationSeconds != 150 {
		t.Fatalf("album duration want 150, got %d", stored.TotalDurationSeconds)
	}
}
