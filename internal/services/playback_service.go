package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"github.com/tunestream/backend/pkg/apperror"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlaybackService struct {
	store *store.Store
}

func NewPlaybackService(st *store.Store) *PlaybackService {
	return &PlaybackService{store: st}
}

type StartPlaybackInput struct {
	TrackID   primitive.ObjectID
	Device    models.PlaybackDevice
	IPAddress string
}

type PlaybackProgressInput struct {
	ProgressSeconds *int
	Completed       *bool
}

// Start records a new playback-history entry and bumps the track's play counter
func (s *PlaybackService) Start(ctx context.Context, userID primitive.ObjectID, input StartPlaybackInput) (*models.PlaybackHistory, error) {
	if input.TrackID.IsZero() {
		return nil, apperror.BadRequest("track id is required")
	}
	device := input.Device
	if device == "" {
		device = models.DeviceWeb
	}
	if !models.ValidDevice(device) {
		return nil, apperror.BadRequest("unknown playback device")
	}

	if _, err := s.store.Tracks.FindByID(ctx, input.TrackID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("track not found")
		}
		return nil, fmt.Errorf("failed to load track: %w", err)
	}

	now := time.Now()
	entry := &models.PlaybackHistory{
		UserID:    userID,
		TrackID:   input.TrackID,
		PlayedAt:  now,
		Device:    device,
		IPAddress: input.IPAddress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Playback.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record playback: %w", err)
	}

	if _, err := s.store.Tracks.IncPlayCount(ctx, input.TrackID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to bump play count: %w", err)
	}
	return entry, nil
}

// UpdateProgress patches the progress fields of the caller's own history entry
func (s *PlaybackService) UpdateProgress(ctx context.Context, entryID, userID primitive.ObjectID, input PlaybackProgressInput) (*models.PlaybackHistory, error) {
	entry, err := s.store.Playback.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("playback entry not found")
		}
		return nil, fmt.Errorf("failed to load playback entry: %w", err)
	}
	if entry.UserID != userID {
		return nil, apperror.Forbidden("you do not own this playback entry")
	}

	if input.ProgressSeconds != nil {
		if *input.ProgressSeconds < 0 {
			return nil, apperror.BadRequest("progress cannot be negative")
		}
		entry.ProgressSeconds = *input.ProgressSeconds
	}
	if input.Completed != nil {
		entry.Completed = *input.Completed
	}

	if err := s.store.Playback.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update playback entry: %w", err)
	}
	return entry, nil
}

// History returns the caller's playback history, newest first, track populated
func (s *PlaybackService) History(ctx context.Context, userID primitive.ObjectID, page store.Page) ([]models.PlaybackHistory, int64, error) {
	entries, total, err := s.store.Playback.FindByUser(ctx, userID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load playback history: %w", err)
	}
	if err := populatePlayback(ctx, s.store, entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Recent returns the caller's most recent plays, track populated
func (s *PlaybackService) Recent(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.PlaybackHistory, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.store.Playback.Recent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent plays: %w", err)
	}
	if err := populatePlayback(ctx, s.store, entries); err != nil {
		return nil, err
	}
	return entries, nil
}
