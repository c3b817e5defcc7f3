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

type PlaylistService struct {
	store *store.Store
}

func NewPlaylistService(st *store.Store) *PlaylistService {
	return &PlaylistService{store: st}
}

type CreatePlaylistInput struct {
	PlayListTitle string
	Description   string
	CoverImage    string
	IsPublic      bool
	TrackIDs      []primitive.ObjectID
	Tags          []string
	Mood          []string
}

type UpdatePlaylistInput struct {
	PlayListTitle *string
	Description   *string
	CoverImage    *string
	IsPublic      *bool
	Tags          *[]string
	Mood          *[]string
}

func (s *PlaylistService) Create(ctx context.Context, ownerID primitive.ObjectID, input CreatePlaylistInput) (*models.Playlist, error) {
	title := validation.SanitizeString(input.PlayListTitle)
	if title == "" {
		return nil, apperror.BadRequest("playlist title is required")
	}

	trackIDs := dedupIDs(input.TrackIDs)
	if len(trackIDs) > 0 {
		count, err := s.store.Tracks.CountByIDs(ctx, trackIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to verify playlist tracks: %w", err)
		}
		if count != int64(len(trackIDs)) {
			return nil, apperror.NotFound("one or more tracks not found")
		}
	}

	now := time.Now()
	playlist := &models.Playlist{
		PlayListTitle: title,
		Description:   input.Description,
		CoverImage:    input.CoverImage,
		OwnerID:       ownerID,
		TrackIDs:      trackIDs,
		IsPublic:      input.IsPublic,
		Tags:          input.Tags,
		Mood:          input.Mood,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Playlists.Create(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	if err := RecalcPlaylistTotals(ctx, s.store, playlist.ID); err != nil {
		return nil, err
	}
	return s.reload(ctx, playlist.ID)
}

// Get returns the playlist when it is public or requested by its owner.
// requesterID is the zero ObjectID for anonymous callers.
func (s *PlaylistService) Get(ctx context.Context, id, requesterID primitive.ObjectID) (*models.Playlist, error) {
	playlist, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	if !playlist.IsPublic && playlist.OwnerID != requesterID {
		return nil, apperror.Forbidden("this playlist is private")
	}

	if owner, err := s.store.Users.FindByID(ctx, playlist.OwnerID); err == nil {
		playlist.Owner = ownerSummary(owner)
	}

	if len(playlist.TrackIDs) > 0 {
		tracks, err := s.store.Tracks.FindByIDs(ctx, playlist.TrackIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load playlist tracks: %w", err)
		}
		if err := populateTracks(ctx, s.store, tracks); err != nil {
			return nil, err
		}
		// Keep the play order of the reference list
		byID := make(map[primitive.ObjectID]models.Track, len(tracks))
		for _, t := range tracks {
			byID[t.ID] = t
		}
		ordered := make([]models.Track, 0, len(playlist.TrackIDs))
		for _, tid := range playlist.TrackIDs {
			if t, ok := byID[tid]; ok {
				ordered = append(ordered, t)
			}
		}
		playlist.Tracks = ordered
	}
	return playlist, nil
}

// Mine lists the caller's playlists, newest first
func (s *PlaylistService) Mine(ctx context.Context, ownerID primitive.ObjectID) ([]models.Playlist, error) {
	playlists, err := s.store.Playlists.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}

// Public lists public playlists for discovery
func (s *PlaylistService) Public(ctx context.Context, filter store.PlaylistFilter, page store.Page) ([]models.Playlist, int64, error) {
	playlists, total, err := s.store.Playlists.FindPublic(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list public playlists: %w", err)
	}
	return playlists, total, nil
}

func (s *PlaylistService) Update(ctx context.Context, id, ownerID primitive.ObjectID, input UpdatePlaylistInput) (*models.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.PlayListTitle != nil {
		title := validation.SanitizeString(*input.PlayListTitle)
		if title == "" {
			return nil, apperror.BadRequest("playlist title cannot be empty")
		}
		playlist.PlayListTitle = title
	}
	if input.Description != nil {
		playlist.Description = *input.Description
	}
	if input.CoverImage != nil {
		playlist.CoverImage = *input.CoverImage
	}
	if input.IsPublic != nil {
		playlist.IsPublic = *input.IsPublic
	}
	if input.Tags != nil {
		playlist.Tags = *input.Tags
	}
	if input.Mood != nil {
		playlist.Mood = *input.Mood
	}

	if err := s.store.Playlists.Update(ctx, playlist); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("playlist not found")
		}
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	return playlist, nil
}

func (s *PlaylistService) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	if _, err := s.ownedPlaylist(ctx, id, ownerID); err != nil {
		return err
	}
	if err := s.store.Playlists.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("playlist not found")
		}
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	return nil
}

// AddTrack appends a track to the playlist. Adding a track that is already
// present is a no-op and returns the unchanged playlist.
func (s *PlaylistService) AddTrack(ctx context.Context, id, ownerID, trackID primitive.ObjectID) (*models.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if playlist.ContainsTrack(trackID) {
		return playlist, nil
	}

	if _, err := s.store.Tracks.FindByID(ctx, trackID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("track not found")
		}
		return nil, fmt.Errorf("failed to load track: %w", err)
	}

	playlist.TrackIDs = append(playlist.TrackIDs, trackID)
	if err := s.store.Playlists.Update(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	if err := RecalcPlaylistTotals(ctx, s.store, playlist.ID); err != nil {
		return nil, err
	}
	return s.reload(ctx, playlist.ID)
}

// RemoveTrack drops a track reference. Removing an absent track succeeds
// without altering the playlist.
func (s *PlaylistService) RemoveTrack(ctx context.Context, id, ownerID, trackID primitive.ObjectID) (*models.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if !playlist.ContainsTrack(trackID) {
		return playlist, nil
	}

	kept := make([]primitive.ObjectID, 0, len(playlist.TrackIDs)-1)
	for _, tid := range playlist.TrackIDs {
		if tid != trackID {
			kept = append(kept, tid)
		}
	}
	playlist.TrackIDs = kept
	if err := s.store.Playlists.Update(ctx, playlist); err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	if err := RecalcPlaylistTotals(ctx, s.store, playlist.ID); err != nil {
		return nil, err
	}
	return s.reload(ctx, playlist.ID)
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Playlist, error) {
	playlist, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != ownerID {
		return nil, apperror.Forbidden("you do not own this playlist")
	}
	return playlist, nil
}

func (s *PlaylistService) reload(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	playlist, err := s.store.Playlists.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("playlist not found")
		}
		return nil, fmt.Errorf("failed to load playlist: %w", err)
	}
	return playlist, nil
}

func dedupIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
