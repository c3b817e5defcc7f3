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

type TrackService struct {
	store *store.Store
}

func NewTrackService(st *store.Store) *TrackService {
	return &TrackService{store: st}
}

type CreateTrackInput struct {
	Title     string
	TrackFile string
	ArtistID  primitive.ObjectID
	AlbumID   *primitive.ObjectID
	Duration  int
	Language  string
	Genres    []string
	Mood      []string
}

type UpdateTrackInput struct {
	Title      *string
	TrackFile  *string
	AlbumID    *primitive.ObjectID
	ClearAlbum bool
	Duration   *int
	Language   *string
	Genres     *[]string
	Mood       *[]string
}

func (s *TrackService) Create(ctx context.Context, input CreateTrackInput) (*models.Track, error) {
	title := validation.SanitizeString(input.Title)
	if title == "" {
		return nil, apperror.BadRequest("track title is required")
	}
	if input.TrackFile == "" {
		return nil, apperror.BadRequest("track file is required")
	}
	if input.ArtistID.IsZero() {
		return nil, apperror.BadRequest("track artist is required")
	}
	if input.Duration < 0 {
		return nil, apperror.BadRequest("duration cannot be negative")
	}

	if _, err := s.store.Artists.FindByID(ctx, input.ArtistID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("artist not found")
		}
		return nil, fmt.Errorf("failed to load artist: %w", err)
	}
	if input.AlbumID != nil {
		if _, err := s.store.Albums.FindByID(ctx, *input.AlbumID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperror.NotFound("album not found")
			}
			return nil, fmt.Errorf("failed to load album: %w", err)
		}
	}

	now := time.Now()
	track := &models.Track{
		Title:     title,
		TrackFile: input.TrackFile,
		ArtistID:  input.ArtistID,
		AlbumID:   input.AlbumID,
		Duration:  input.Duration,
		Language:  input.Language,
		Genres:    input.Genres,
		Mood:      input.Mood,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Tracks.Create(ctx, track); err != nil {
		return nil, fmt.Errorf("failed to create track: %w", err)
	}

	if track.AlbumID != nil {
		if err := RecalcAlbumTotals(ctx, s.store, *track.AlbumID); err != nil {
			return nil, err
		}
	}
	return track, nil
}

func (s *TrackService) Get(ctx context.Context, id primitive.ObjectID) (*models.Track, error) {
	track, err := s.store.Tracks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("track not found")
		}
		return nil, fmt.Errorf("failed to load track: %w", err)
	}

	tracks := []models.Track{*track}
	if err := populateTracks(ctx, s.store, tracks); err != nil {
		return nil, err
	}
	return &tracks[0], nil
}

func (s *TrackService) List(ctx context.Context, filter store.TrackFilter, sort store.TrackSort, page store.Page) ([]models.Track, int64, error) {
	tracks, total, err := s.store.Tracks.Find(ctx, filter, sort, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tracks: %w", err)
	}
	if err := populateTracks(ctx, s.store, tracks); err != nil {
		return nil, 0, err
	}
	return tracks, total, nil
}

// Update applies a partial update. When the album reference changes, the
// counters of both the previous and the new album are recomputed.
func (s *TrackService) Update(ctx context.Context, id primitive.ObjectID, input UpdateTrackInput) (*models.Track, error) {
	track, err := s.store.Tracks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("track not found")
		}
		return nil, fmt.Errorf("failed to load track: %w", err)
	}

	previousAlbum := track.AlbumID

	if input.Title != nil {
		title := validation.SanitizeString(*input.Title)
		if title == "" {
			return nil, apperror.BadRequest("track title cannot be empty")
		}
		track.Title = title
	}
	if input.TrackFile != nil {
		if *input.TrackFile == "" {
			return nil, apperror.BadRequest("track file cannot be empty")
		}
		track.TrackFile = *input.TrackFile
	}
	if input.ClearAlbum {
		track.AlbumID = nil
	} else if input.AlbumID != nil {
		if _, err := s.store.Albums.FindByID(ctx, *input.AlbumID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperror.NotFound("album not found")
			}
			return nil, fmt.Errorf("failed to load album: %w", err)
		}
		track.AlbumID = input.AlbumID
	}
	if input.Duration != nil {
		if *input.Duration < 0 {
			return nil, apperror.BadRequest("duration cannot be negative")
		}
		track.Duration = *input.Duration
	}
	if input.Language != nil {
		track.Language = *input.Language
	}
	if input.Genres != nil {
		track.Genres = *input.Genres
	}
	if input.Mood != nil {
		track.Mood = *input.Mood
	}

	if err := s.store.Tracks.Update(ctx, track); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("track not found")
		}
		return nil, fmt.Errorf("failed to update track: %w", err)
	}

	if previousAlbum != nil {
		if err := RecalcAlbumTotals(ctx, s.store, *previousAlbum); err != nil {
			return nil, err
		}
	}
	if track.AlbumID != nil && (previousAlbum == nil || *previousAlbum != *track.AlbumID) {
		if err := RecalcAlbumTotals(ctx, s.store, *track.AlbumID); err != nil {
			return nil, err
		}
	}
	return track, nil
}

func (s *TrackService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.store.Tracks.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("track not found")
		}
		return fmt.Errorf("failed to delete track: %w", err)
	}

	if deleted.AlbumID != nil {
		if err := RecalcAlbumTotals(ctx, s.store, *deleted.AlbumID); err != nil {
			return err
		}
	}
	return nil
}

// Play records a play against the track's counter and returns the fresh document
func (s *TrackService) Play(ctx context.Context, id primitive.ObjectID) (*models.Track, error) {
	track, err := s.store.Tracks.IncPlayCount(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("track not found")
		}
		return nil, fmt.Errorf("failed to record play: %w", err)
	}
	return track, nil
}

// Like bumps the track's like counter and returns the fresh document
func (s *TrackService) Like(ctx context.Context, id primitive.ObjectID) (*models.Track, error) {
	track, err := s.store.Tracks.IncLikeCount(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("track not found")
		}
		return nil, fmt.Errorf("failed to record like: %w", err)
	}
	return track, nil
}
