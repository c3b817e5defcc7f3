package services

import (
	"context"
	"fmt"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// populateTracks resolves the artist and album references of a track batch with
// two $in fetches and stitches the documents into the read-time fields.
func populateTracks(ctx context.Context, st *store.Store, tracks []models.Track) error {
	if len(tracks) == 0 {
		return nil
	}

	artistSet := make(map[primitive.ObjectID]struct{})
	albumSet := make(map[primitive.ObjectID]struct{})
	for _, t := range tracks {
		if !t.ArtistID.IsZero() {
			artistSet[t.ArtistID] = struct{}{}
		}
		if t.AlbumID != nil {
			albumSet[*t.AlbumID] = struct{}{}
		}
	}

	artistsByID, err := fetchArtists(ctx, st, artistSet)
	if err != nil {
		return err
	}

	albumsByID := make(map[primitive.ObjectID]*models.Album)
	if len(albumSet) > 0 {
		albums, err := st.Albums.FindByIDs(ctx, idsOf(albumSet))
		if err != nil {
			return fmt.Errorf("failed to load albums: %w", err)
		}
		for i := range albums {
			albumsByID[albums[i].ID] = &albums[i]
		}
	}

	for i := range tracks {
		tracks[i].Artist = artistsByID[tracks[i].ArtistID]
		if tracks[i].AlbumID != nil {
			tracks[i].Album = albumsByID[*tracks[i].AlbumID]
		}
	}
	return nil
}

// populateAlbums resolves the artist reference of an album batch.
func populateAlbums(ctx context.Context, st *store.Store, albums []models.Album) error {
	if len(albums) == 0 {
		return nil
	}

	artistSet := make(map[primitive.ObjectID]struct{})
	for _, a := range albums {
		if !a.ArtistID.IsZero() {
			artistSet[a.ArtistID] = struct{}{}
		}
	}

	artistsByID, err := fetchArtists(ctx, st, artistSet)
	if err != nil {
		return err
	}
	for i := range albums {
		albums[i].Artist = artistsByID[albums[i].ArtistID]
	}
	return nil
}

// populatePlayback resolves the track reference (artist and album included) of
// a playback-history batch.
func populatePlayback(ctx context.Context, st *store.Store, entries []models.PlaybackHistory) error {
	if len(entries) == 0 {
		return nil
	}

	trackSet := make(map[primitive.ObjectID]struct{})
	for _, e := range entries {
		trackSet[e.TrackID] = struct{}{}
	}

	tracks, err := st.Tracks.FindByIDs(ctx, idsOf(trackSet))
	if err != nil {
		return fmt.Errorf("failed to load tracks: %w", err)
	}
	if err := populateTracks(ctx, st, tracks); err != nil {
		return err
	}

	tracksByID := make(map[primitive.ObjectID]*models.Track)
	for i := range tracks {
		tracksByID[tracks[i].ID] = &tracks[i]
	}
	for i := range entries {
		entries[i].Track = tracksByID[entries[i].TrackID]
	}
	return nil
}

func fetchArtists(ctx context.Context, st *store.Store, set map[primitive.ObjectID]struct{}) (map[primitive.ObjectID]*models.Artist, error) {
	byID := make(map[primitive.ObjectID]*models.Artist)
	if len(set) == 0 {
		return byID, nil
	}
	artists, err := st.Artists.FindByIDs(ctx, idsOf(set))
	if err != nil {
		return nil, fmt.Errorf("failed to load artists: %w", err)
	}
	for i := range artists {
		byID[artists[i].ID] = &artists[i]
	}
	return byID, nil
}

// ownerSummary trims a user document to the public fields exposed on owned resources
func ownerSummary(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

func idsOf(set map[primitive.ObjectID]struct{}) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
