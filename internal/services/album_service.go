package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"github.com/tunestream/backend/pkg/apperror"
	"github.com/tunestream/backend/pkg/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AlbumService struct {
	store *store.Store
}

func NewAlbumService(st *store.Store) *AlbumService {
	return &AlbumService{store: st}
}

type CreateAlbumInput struct {
	AlbumTitle  string
	ArtistID    primitive.ObjectID
	Description string
	CoverImage  string
	ReleaseDate *time.Time
	Genres      []string
}

type UpdateAlbumInput struct {
	AlbumTitle  *string
	Description *string
	CoverImage  *string
	ReleaseDate *time.Time
	Genres      *[]string
}

func (s *AlbumService) Create(ctx context.Context, input CreateAlbumInput) (*models.Album, error) {
	title := validation.SanitizeString(input.AlbumTitle)
	if title == "" {
		return nil, apperror.BadRequest("album title is required")
	}
	if input.ArtistID.IsZero() {
		return nil, apperror.BadRequest("album artist is required")
	}
	if _, err := s.store.Artists.FindByID(ctx, input.ArtistID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("artist not found")
		}
		return nil, fmt.Errorf("failed to load artist: %w", err)
	}

	now := time.Now()
	album := &models.Album{
		AlbumTitle:  title,
		ArtistID:    input.ArtistID,
		Description: input.Description,
		CoverImage:  input.CoverImage,
		ReleaseDate: input.ReleaseDate,
		Genres:      input.Genres,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Albums.Create(ctx, album); err != nil {
		return nil, fmt.Errorf("failed to create album: %w", err)
	}
	return album, nil
}

// Get returns the album with its artist populated, its exact track list in
// creation order, and counters recomputed from that list.
func (s *AlbumService) Get(ctx context.Context, id primitive.ObjectID) (*models.Album, error) {
	album, err := s.store.Albums.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("album not found")
		}
		return nil, fmt.Errorf("failed to load album: %w", err)
	}

	tracks, err := s.store.Tracks.FindByAlbum(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load album tracks: %w", err)
	}
	if err := populateTracks(ctx, s.store, tracks); err != nil {
		return nil, err
	}

	total := 0
	for _, t := range tracks {
		total += t.Duration
	}
	album.Tracks = tracks
	album.TotalTracks = len(tracks)
	album.TotalDurationSeconds = total

	albums := []models.Album{*album}
	if err := populateAlbums(ctx, s.store, albums); err != nil {
		return nil, err
	}
	return &albums[0], nil
}

// List returns a page of albums with artists populated and counters computed
// live from the tracks referencing each album on the page.
func (s *AlbumService) List(ctx context.Context, filter store.AlbumFilter, page store.Page) ([]models.Album, int64, error) {
	albums, total, err := s.store.Albums.Find(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list albums: %w", err)
	}
	if err := populateAlbums(ctx, s.store, albums); err != nil {
		return nil, 0, err
	}
	for i := range albums {
		tracks, err := s.store.Tracks.FindByAlbum(ctx, albums[i].ID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to count album tracks: %w", err)
		}
		sum := 0
		for _, t := range tracks {
			sum += t.Duration
		}
		albums[i].TotalTracks = len(tracks)
		albums[i].TotalDurationSeconds = sum
	}
	return albums, total, nil
}

func (s *AlbumService) Update(ctx context.Context, id primitive.ObjectID, input UpdateAlbumInput) (*models.Album, error) {
	album, err := s.store.Albums.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("album not found")
		}
		return nil, fmt.Errorf("failed to load album: %w", err)
	}

	if input.AlbumTitle != nil {
		title := validation.SanitizeString(*input.AlbumTitle)
		if title == "" {
			return nil, apperror.BadRequest("album title cannot be empty")
		}
		album.AlbumTitle = title
	}
	if input.Description != nil {
		album.Description = *input.Description
	}
	if input.CoverImage != nil {
		album.CoverImage = *input.CoverImage
	}
	if input.ReleaseDate != nil {
		album.ReleaseDate = input.ReleaseDate
	}
	if input.Genres != nil {
		album.Genres = *input.Genres
	}

	if err := s.store.Albums.Update(ctx, album); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("album not found")
		}
		return nil, fmt.Errorf("failed to update album: %w", err)
	}
	return album, nil
}

// Delete removes the album and clears the album reference on every track that
// pointed at it, so the tracks survive as singles.
func (s *AlbumService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.store.Albums.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("album not found")
		}
		return fmt.Errorf("failed to delete album: %w", err)
	}

	tracks, err := s.store.Tracks.FindByAlbum(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load orphaned tracks: %w", err)
	}
	for i := range tracks {
		tracks[i].AlbumID = nil
		if err := s.store.Tracks.Update(ctx, &tracks[i]); err != nil {
			return fmt.Errorf("failed to detach track %s: %w", tracks[i].ID.Hex(), err)
		}
	}
	return nil
}
