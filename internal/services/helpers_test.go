package services

import (
	"context"
	"testing"
	"time"

	"github.com/tunestream/backend/internal/config"
	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"github.com/tunestream/backend/internal/store/memstore"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:               "test-secret",
		ResetPasswordSecret:     "test-reset-secret",
		JWTAccessTokenDuration:  time.Hour,
		JWTRefreshTokenDuration: 24 * time.Hour,
		BcryptCost:              4,
		FrontendURL:             "http://localhost:3000",
	}
}

func seedArtist(t *testing.T, st *store.Store, name string) *models.Artist {
	t.Helper()
	artist := &models.Artist{ArtistName: name}
	if err := st.Artists.Create(context.Background(), artist); err != nil {
		t.Fatalf("seed artist %q: %v", name, err)
	}
	return artist
}

func seedAlbum(t *testing.T, st *store.Store, title string, artistID primitive.ObjectID) *models.Album {
	t.Helper()
	album := &models.Album{AlbumTitle: title, ArtistID: artistID}
	if err := st.Albums.Create(context.Background(), album); err != nil {
		t.Fatalf("seed album %q: %v", title, err)
	}
	return album
}

func seedTrack(t *testing.T, st *store.Store, title string, artistID primitive.ObjectID, albumID *primitive.ObjectID, duration int) *models.Track {
	t.Helper()
	track := &models.Track{
		Title:     title,
		TrackFile: title + ".mp3",
		ArtistID:  artistID,
		AlbumID:   albumID,
		Duration:  duration,
	}
	if err := st.Tracks.Create(context.Background(), track); err != nil {
		t.Fatalf("seed track %q: %v", title, err)
	}
	return track
}

func seedUser(t *testing.T, st *store.Store, username, email string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        email,
		AuthProvider: models.AuthProviderEmail,
	}
	if err := st.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	return user
}

func seedPlay(t *testing.T, st *store.Store, userID, trackID primitive.ObjectID) {
	t.Helper()
	entry := &models.PlaybackHistory{
		UserID:   userID,
		TrackID:  trackID,
		PlayedAt: time.Now(),
		Device:   models.DeviceWeb,
	}
	if err := st.Playback.Create(context.Background(), entry); err != nil {
		t.Fatalf("seed play: %v", err)
	}
}

func newTestStore() *store.Store {
	return memstore.New()
}
