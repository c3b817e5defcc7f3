package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestForYouExcludesRecentPlays(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	recs := NewRecommendationService(st)

	user := seedUser(t, st, "ada", "ada@example.com")
	artist := seedArtist(t, st, "Night Loops")

	played := seedTaggedTrack(t, st, "Heard", artist.ID, []string{"ambient"}, nil, 500)
	unheard1 := seedTaggedTrack(t, st, "Fresh A", artist.ID, []string{"ambient"}, nil, 300)
	unheard2 := seedTaggedTrack(t, st, "Fresh B", artist.ID, []string{"ambient"}, nil, 100)
	seedPlay(t, st, user.ID, played.ID)

	result, err := recs.ForYou(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("for-you: %v", err)
	}

	for _, track := range result.Tracks {
		if track.ID == played.ID {
			t.Fatalf("recommendation contains a recently played track")
		}
	}
	if len(result.Tracks) != 2 {
		t.Fatalf("want the 2 unheard tracks, got %d", len(result.Tracks))
	}
	if result.Tracks[0].ID != unheard1.ID || result.Tracks[1].ID != unheard2.ID {
		t.Fatalf("tracks must come back in descending playCount order")
	}
	if len(result.FavoriteGenres) != 1 || result.FavoriteGenres[0] != "ambient" {
		t.Fatalf("taste signature want [ambient], got %v", result.FavoriteGenres)
	}
}

func TestForYouNeverExceedsRequestedCount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	recs := NewRecommendationService(st)

	user := seedUser(t, st, "bo", "bo@example.com")
	artist := seedArtist(t, st, "Wide Field")
	for i := 0; i < 8; i++ {
		seedTaggedTrack(t, st, fmt.Sprintf("T%d", i), artist.ID, []string{"pop"}, nil, int64(i))
	}

	result, err := recs.ForYou(ctx, user.ID, 3)
	if err != nil {
		t.Fatalf("for-you: %v", err)
	}
	if len(result.Tracks) != 3 {
		t.Fatalf("want exactly 3 tracks, got %d", len(result.Tracks))
	}
}

func TestForYouReturnsExactlyTheUnseenWhenScarce(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	recs := NewRecommendationService(st)

	user := seedUser(t, st, "cy", "cy@example.com")
	artist := seedArtist(t, st, "Sparse")

	heard := seedTaggedTrack(t, st, "Old", artist.ID, []string{"jazz"}, nil, 50)
	seedTaggedTrack(t, st, "Only New", artist.ID, []string{"jazz"}, nil, 10)
	seedPlay(t, st, user.ID, heard.ID)

	result, err := recs.ForYou(ctx, user.ID, 20)
	if err != nil {
		t.Fatalf("for-you: %v", err)
	}
	if len(result.Tracks) != 1 {
		t.Fatalf("want exactly the 1 unseen candidate, got %d", len(result.Tracks))
	}
}

func TestForYouWithoutHistoryFallsBackToPopularity(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	recs := NewRecommendationService(st)

	user := seedUser(t, st, "dee", "dee@example.com")
	artist := seedArtist(t, st, "Cold Start")
	low := seedTaggedTrack(t, st, "Low", artist.ID, []string{"rock"}, nil, 1)
	high := seedTaggedTrack(t, st, "High", artist.ID, []string{"folk"}, nil, 99)

	result, err := recs.ForYou(ctx, user.ID, 5)
	if err != nil {
		t.Fatalf("for-you: %v", err)
	}
	if len(result.FavoriteGenres) != 0 || len(result.FavoriteMoods) != 0 {
		t.Fatalf("no history must yield an empty signature, got %v/%v", result.FavoriteGenres, result.FavoriteMoods)
	}
	if len(result.Tracks) != 2 || result.Tracks[0].ID != high.ID || result.Tracks[1].ID != low.ID {
		t.Fatalf("unrestricted candidates must be ordered by playCount desc")
	}
}

func TestForYouPersistsAuditLog(t *testing.T) {
	ctx := context.Background()
	st := newTestStore()
	recs := NewRecommendationService(st)

	user := seedUser(t, st, "eli", "eli@example.com")
	artist := seedArtist(t, st, "Ledger")
	heard := seedTaggedTrack(t, st, "Past", artist.ID, []string{"techno"}, nil, 40)
	seedTaggedTrack(t, st, "Next", artist.ID, []string{"techno"}, nil, 30)
	seedPlay(t, st, user.ID, heard.ID)

	result, err := recs.ForYou(ctx, user.ID, 5)
	if err != nil {
		t.Fatalf("for-you: %v", err)
	}
	if result.LogID.IsZero() {
		t.Fatal("result must reference the persisted log")
	}

	logs := recommendationLogs(t, st)
	if len(logs) != 1 {
		t.Fatalf("want 1 audit log, got %d", len(logs))
	}
	entry := logs[0]
	if entry.ID != result.LogID {
		t.Fatalf("log id mismatch")
	}
	if entry.Type != models.RecommendationTypeForYou || entry.Source != models.RecommendationSourceRules {
		t.Fatalf("unexpected log tagging: %s/%s", entry.Type, entry.Source)
	}
	if len(entry.RecommendedTracks) != len(result.Tracks) {
		t.Fatalf("log must mirror the returned list")
	}
	for i, rec := range entry.RecommendedTracks {
		if rec.Rank != i+1 {
			t.Fatalf("ranks must be 1-based and sequential, got %d at %d", rec.Rank, i)
		}
		if rec.TrackID != result.Tracks[i].ID {
			t.Fatalf("log order must match result order")
		}
	}
	if len(entry.InputContext.RecentTrackIDs) != 1 || entry.InputContext.RecentTrackIDs[0] != heard.ID {
		t.Fatalf("log must snapshot the recent-play input")
	}
}

func seedTaggedTrack(t *testing.T, st *store.Store, title string, artistID primitive.ObjectID, genres []string, mood []string, plays int64) *models.Track {
	t.Helper()
	track := &models.Track{
		Title:     title,
		TrackFile: title + ".mp3",
		ArtistID:  artistID,
		Genres:    genres,
		Mood:      mood,
		Duration:  120,
		PlayCount: plays,
	}
	if err := st.Tracks.Create(context.Background(), track); err != nil {
		t.Fatalf("seed track %q: %v", title, err)
	}
	return track
}

func recommendationLogs(t *testing.T, st *store.Store) []models.RecommendationLog {
	t.Helper()
	type logLister interface {
		Logs() []models.RecommendationLog
	}
	lister, ok := st.Recommendations.(logLister)
	if !ok {
		t.Fatal("store does not expose recommendation logs")
	}
	return lister.Logs()
}
