package services

import (
	"context"
	"testing"
)

func TestLikedTracksRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	users := NewUserService(st)

	user := seedUser(t, st, "faye", "faye@example.com")
	artist := seedArtist(t, st, "Echoform")
	t1 := seedTrack(t, st, "First", artist.ID, nil, 100)
	t2 := seedTrack(t, st, "Second", artist.ID, nil, 110)

	if _, err := users.LikeTrack(ctx, user.ID, t1.ID); err != nil {
		t.Fatalf("like t1: %v", err)
	}
	if _, err := users.LikeTrack(ctx, user.ID, t2.ID); err != nil {
		t.Fatalf("like t2: %v", err)
	}
	// Liking again must not duplicate the reference
	after, err := users.LikeTrack(ctx, user.ID, t1.ID)
	if err != nil {
		t.Fatalf("re-like t1: %v", err)
	}
	if len(after.LikedTracks) != 2 {
		t.Fatalf("want 2 liked refs, got %d", len(after.LikedTracks))
	}

	tracks, err := users.LikedTracks(ctx, user.ID)
	if err != nil {
		t.Fatalf("list liked: %v", err)
	}
	if len(tracks) != 2 || tracks[0].ID != t1.ID || tracks[1].ID != t2.ID {
		t.Fatalf("liked tracks must come back hydrated in liked order")
	}
	if tracks[0].Artist == nil || tracks[0].Artist.ArtistName != "Echoform" {
		t.Fatal("liked tracks must be populated with their artist")
	}

	// Unliking an absent track is a no-op
	after, err = users.UnlikeTrack(ctx, user.ID, seedTrack(t, st, "Other", artist.ID, nil, 10).ID)
	if err != nil {
		t.Fatalf("unlike absent: %v", err)
	}
	if len(after.LikedTracks) != 2 {
		t.Fatalf("unlike of absent track must not change the list")
	}

	after, err = users.UnlikeTrack(ctx, user.ID, t1.ID)
	if err != nil {
		t.Fatalf("unlike t1: %v", err)
	}
	if len(after.LikedTracks) != 1 || after.LikedTracks[0] != t2.ID {
		t.Fatalf("unlike must drop exactly the one reference")
	}
}

func TestTopTracksOrdersByPlayFrequency(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	users := NewUserService(st)

	user := seedUser(t, st, "gus", "gus@example.com")
	artist := seedArtist(t, st, "Tallies")
	often := seedTrack(t, st, "Often", artist.ID, nil, 90)
	rarely := seedTrack(t, st, "Rarely", artist.ID, nil, 95)

	for i := 0; i < 3; i++ {
		seedPlay(t, st, user.ID, often.ID)
	}
	seedPlay(t, st, user.ID, rarely.ID)

	top, err := users.TopTracks(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("top tracks: %v", err)
	}
	if len(top) != 2 || top[0].ID != often.ID || top[1].ID != rarely.ID {
		t.Fatalf("top tracks must order by play frequency")
	}
}

func TestDeleteAccountRemovesOwnedPlaylists(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	users := NewUserService(st)
	playlists := NewPlaylistService(st)

	user := seedUser(t, st, "hal", "hal@example.com")
	created, err := playlists.Create(ctx, user.ID, CreatePlaylistInput{PlayListTitle: "Goners"})
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	if err := users.DeleteAccount(ctx, user.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, err := st.Users.FindByID(ctx, user.ID); err == nil {
		t.Fatal("user must be gone")
	}
	if _, err := st.Playlists.FindByID(ctx, created.ID); err == nil {
		t.Fatal("owned playlist must be gone")
	}
}
