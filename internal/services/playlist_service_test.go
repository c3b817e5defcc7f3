package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tunestream/backend/pkg/apperror"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlaylistCountersConverge(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	playlists := NewPlaylistService(st)

	owner := seedUser(t, st, "mara", "mara@example.com")
	artist := seedArtist(t, st, "Koto Fields")
	t1 := seedTrack(t, st, "One", artist.ID, nil, 60)
	t2 := seedTrack(t, st, "Two", artist.ID, nil, 90)

	created, err := playlists.Create(ctx, owner.ID, CreatePlaylistInput{
		PlayListTitle: "Morning",
		TrackIDs:      []primitive.ObjectID{t1.ID},
	})
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}
	if created.TotalTracks != 1 || created.TotalDurationSeconds != 60 {
		t.Fatalf("after create want 1/60, got %d/%d", created.TotalTracks, created.TotalDurationSeconds)
	}

	after, err := playlists.AddTrack(ctx, created.ID, owner.ID, t2.ID)
	if err != nil {
		t.Fatalf("add track: %v", err)
	}
	if after.TotalTracks != 2 || after.TotalDurationSeconds != 150 {
		t.Fatalf("after add want 2/150, got %d/%d", after.TotalTracks, after.TotalDurationSeconds)
	}

	after, err = playlists.RemoveTrack(ctx, created.ID, owner.ID, t1.ID)
	if err != nil {
		t.Fatalf("remove track: %v", err)
	}
	if after.TotalTracks != 1 || after.TotalDurationSeconds != 90 {
		t.Fatalf("after remove want 1/90, got %d/%d", after.TotalTracks, after.TotalDurationSeconds)
	}
}

func TestPlaylistAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	playlists := NewPlaylistService(st)

	owner := seedUser(t, st, "ivo", "ivo@example.com")
	artist := seedArtist(t, st, "Static Bloom")
	track := seedTrack(t, st, "Loop", artist.ID, nil, 200)

	created, err := playlists.Create(ctx, owner.ID, CreatePlaylistInput{
		PlayListTitle: "Repeats",
		TrackIDs:      []primitive.ObjectID{track.ID},
	})
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	again, err := playlists.AddTrack(ctx, created.ID, owner.ID, track.ID)
	if err != nil {
		t.Fatalf("second add should succeed: %v", err)
	}
	if len(again.TrackIDs) != 1 {
		t.Fatalf("duplicate add must not grow the list, got %d refs", len(again.TrackIDs))
	}
	if again.TotalTracks != 1 || again.TotalDurationSeconds != 200 {
		t.Fatalf("counters must be unchanged, got %d/%d", again.TotalTracks, again.TotalDurationSeconds)
	}
}

func TestPlaylistRemoveAbsentTrackIsNoOp(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	playlists := NewPlaylistService(st)

	owner := seedUser(t, st, "noa", "noa@example.com")
	artist := seedArtist(t, st, "Glasshouse")
	kept := seedTrack(t, st, "Kept", artist.ID, nil, 120)
	other := seedTrack(t, st, "Elsewhere", artist.ID, nil, 45)

	created, err := playlists.Create(ctx, owner.ID, CreatePlaylistInput{
		PlayListTitle: "Stable",
		TrackIDs:      []primitive.ObjectID{kept.ID},
	})
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	after, err := playlists.RemoveTrack(ctx, created.ID, owner.ID, other.ID)
	if err != nil {
		t.Fatalf("removing an absent track must succeed: %v", err)
	}
	if len(after.TrackIDs) != 1 || after.TotalTracks != 1 || after.TotalDurationSeconds != 120 {
		t.Fatalf("playlist must be unchanged, got %d refs, counters %d/%d",
			len(after.TrackIDs), after.TotalTracks, after.TotalDurationSeconds)
	}
}

func TestPlaylistCreateRejectsUnknownTracks(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	playlists := NewPlaylistService(st)

	owner := seedUser(t, st, "remy", "remy@example.com")
	_, err := playlists.Create(ctx, owner.ID, CreatePlaylistInput{
		PlayListTitle: "Ghost Tracks",
		TrackIDs:      []primitive.ObjectID{primitive.NewObjectID()},
	})
	if err == nil {
		t.Fatal("expected an error for unknown track ids")
	}
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Status != 404 {
		t.Fatalf("want 404, got %v", err)
	}
}

func TestPrivatePlaylistVisibility(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	playlists := NewPlaylistService(st)

	owner := seedUser(t, st, "dana", "dana@example.com")
	stranger := seedUser(t, st, "sol", "sol@example.com")

	created, err := playlists.Create(ctx, owner.ID, CreatePlaylistInput{PlayListTitle: "Secret"})
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	if _, err := playlists.Get(ctx, created.ID, owner.ID); err != nil {
		t.Fatalf("owner must see own private playlist: %v", err)
	}

	_, err = playlists.Get(ctx, created.ID, stranger.ID)
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Status != 403 {
		t.Fatalf("stranger access want 403, got %v", err)
	}

	_, err = playlists.Get(ctx, created.ID, primitive.NilObjectID)
	if !errors.As(err, &appErr) || appErr.Status != 403 {
		t.Fatalf("anonymous access want 403, got %v", err)
	}
}

func TestPlaylistMutationRequiresOwner(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	playlists := NewPlaylistService(st)

	owner := seedUser(t, st, "kip", "kip@example.com")
	stranger := seedUser(t, st, "vex", "vex@example.com")
	artist := seedArtist(t, st, "Redshift")
	track := seedTrack(t, st, "Shift", artist.ID, nil, 80)

	created, err := playlists.Create(ctx, owner.ID, CreatePlaylistInput{
		PlayListTitle: "Mine",
		IsPublic:      true,
	})
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	var appErr *apperror.Error
	if _, err := playlists.AddTrack(ctx, created.ID, stranger.ID, track.ID); !errors.As(err, &appErr) || appErr.Status != 403 {
		t.Fatalf("stranger add want 403, got %v", err)
	}
	if err := playlists.Delete(ctx, created.ID, stranger.ID); !errors.As(err, &appErr) || appErr.Status != 403 {
		t.Fatalf("stranger delete want 403, got %v", err)
	}
}
