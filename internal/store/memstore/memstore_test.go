package memstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTrackPagesUnionEqualsFilteredSet(t *testing.T) {
	ctx := context.Background()
	st := New()

	artistID := primitive.NewObjectID()
	total := 23
	for i := 0; i < total; i++ {
		track := &models.Track{
			Title:     fmt.Sprintf("Track %02d", i),
			TrackFile: "f.mp3",
			ArtistID:  artistID,
			Genres:    []string{"electronic"},
		}
		if err := st.Tracks.Create(ctx, track); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	filter := store.TrackFilter{Genre: "electronic"}
	seen := map[primitive.ObjectID]int{}
	limit := int64(7)
	for page := int64(1); ; page++ {
		items, count, err := st.Tracks.Find(ctx, filter, store.TrackSortNewest, store.Page{Number: page, Limit: limit})
		if err != nil {
			t.Fatalf("find page %d: %v", page, err)
		}
		if count != int64(total) {
			t.Fatalf("total want %d, got %d", total, count)
		}
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			seen[item.ID]++
		}
	}

	if len(seen) != total {
		t.Fatalf("union of pages want %d distinct tracks, got %d", total, len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("track %s appeared %d times across pages", id.Hex(), n)
		}
	}
}

func TestTrackFilterAnyTagsIsUnionNotIntersection(t *testing.T) {
	ctx := context.Background()
	st := New()

	artistID := primitive.NewObjectID()
	byGenre := &models.Track{Title: "G", TrackFile: "g.mp3", ArtistID: artistID, Genres: []string{"house"}}
	byMood := &models.Track{Title: "M", TrackFile: "m.mp3", ArtistID: artistID, Mood: []string{"calm"}}
	neither := &models.Track{Title: "N", TrackFile: "n.mp3", ArtistID: artistID, Genres: []string{"metal"}}
	for _, track := range []*models.Track{byGenre, byMood, neither} {
		if err := st.Tracks.Create(ctx, track); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	filter := store.TrackFilter{AnyGenres: []string{"house"}, AnyMoods: []string{"calm"}}
	items, count, err := st.Tracks.Find(ctx, filter, store.TrackSortNewest, store.Page{Number: 1, Limit: 10})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if count != 2 || len(items) != 2 {
		t.Fatalf("want the genre match and the mood match, got %d", count)
	}
	for _, item := range items {
		if item.ID == neither.ID {
			t.Fatal("unmatched track leaked through the filter")
		}
	}
}

func TestUserUniqueness(t *testing.T) {
	ctx := context.Background()
	st := New()

	if err := st.Users.Create(ctx, &models.User{Username: "ana", Email: "ana@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := st.Users.Create(ctx, &models.User{Username: "other", Email: "ana@example.com"}); err != store.ErrDuplicate {
		t.Fatalf("duplicate email want ErrDuplicate, got %v", err)
	}
	if err := st.Users.Create(ctx, &models.User{Username: "ana", Email: "second@example.com"}); err != store.ErrDuplicate {
		t.Fatalf("duplicate username want ErrDuplicate, got %v", err)
	}
}

func TestTrackPopularSortOrdersByPlayCountThenRecency(t *testing.T) {
	ctx := context.Background()
	st := New()

	artistID := primitive.NewObjectID()
	older := &models.Track{Title: "Older", TrackFile: "o.mp3", ArtistID: artistID, PlayCount: 5}
	newer := &models.Track{Title: "Newer", TrackFile: "n.mp3", ArtistID: artistID, PlayCount: 5}
	hot := &models.Track{Title: "Hot", TrackFile: "h.mp3", ArtistID: artistID, PlayCount: 50}
	for _, track := range []*models.Track{older, newer, hot} {
		if err := st.Tracks.Create(ctx, track); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	items, _, err := st.Tracks.Find(ctx, store.TrackFilter{}, store.TrackSortPopular, store.Page{Number: 1, Limit: 10})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("want 3 tracks, got %d", len(items))
	}
	if items[0].ID != hot.ID {
		t.Fatal("highest playCount must come first")
	}
	if items[1].ID != newer.ID || items[2].ID != older.ID {
		t.Fatal("equal playCounts must fall back to newest first")
	}
}
