package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"github.com/tunestream/backend/pkg/apperror"
	"github.com/tunestream/backend/pkg/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// topTracksWindow caps how much history the per-user top-tracks tally scans
const topTracksWindow = 500

type UserService struct {
	store *store.Store
}

func NewUserService(st *store.Store) *UserService {
	return &UserService{store: st}
}

type UpdateAccountInput struct {
	Username *string
	FullName *string
	Avatar   *string
}

type UpdatePreferenceInput struct {
	FavoriteGenres     *[]string
	FavoriteArtists    *[]primitive.ObjectID
	PreferredLanguages *[]string
	MoodPreferences    *[]string
}

func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.store.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateAccount(ctx context.Context, id primitive.ObjectID, input UpdateAccountInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := validation.NormalizeUsername(*input.Username)
		if !validation.ValidateUsername(username) {
			return nil, apperror.BadRequest("username must be 3-30 characters (lowercase letters, digits, - and _)")
		}
		if username != user.Username {
			exists, err := s.store.Users.UsernameExists(ctx, username)
			if err != nil {
				return nil, fmt.Errorf("failed to check username: %w", err)
			}
			if exists {
				return nil, apperror.Conflict("username already taken")
			}
			user.Username = username
		}
	}
	if input.FullName != nil {
		user.FullName = validation.SanitizeString(*input.FullName)
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}

	if err := s.store.Users.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperror.Conflict("username already taken")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdatePreferences(ctx context.Context, id primitive.ObjectID, input UpdatePreferenceInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FavoriteGenres != nil {
		user.Preference.FavoriteGenres = *input.FavoriteGenres
	}
	if input.FavoriteArtists != nil {
		user.Preference.FavoriteArtists = *input.FavoriteArtists
	}
	if input.PreferredLanguages != nil {
		user.Preference.PreferredLanguages = *input.PreferredLanguages
	}
	if input.MoodPreferences != nil {
		user.Preference.MoodPreferences = *input.MoodPreferences
	}

	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	return user, nil
}

// LikeTrack adds a track to the user's liked list. Already-liked tracks are a no-op.
func (s *UserService) LikeTrack(ctx context.Context, id, trackID primitive.ObjectID) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, liked := range user.LikedTracks {
		if liked == trackID {
			return user, nil
		}
	}

	if _, err := s.store.Tracks.FindByID(ctx, trackID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("track not found")
		}
		return nil, fmt.Errorf("failed to load track: %w", err)
	}

	user.LikedTracks = append(user.LikedTracks, trackID)
	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update liked tracks: %w", err)
	}
	return user, nil
}

// UnlikeTrack removes a track from the liked list. Absent tracks are a no-op.
func (s *UserService) UnlikeTrack(ctx context.Context, id, trackID primitive.ObjectID) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	kept := user.LikedTracks[:0]
	removed := false
	for _, liked := range user.LikedTracks {
		if liked == trackID {
			removed = true
			continue
		}
		kept = append(kept, liked)
	}
	if !removed {
		return user, nil
	}

	user.LikedTracks = kept
	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update liked tracks: %w", err)
	}
	return user, nil
}

// LikedTracks returns the user's liked tracks, hydrated, in liked order
func (s *UserService) LikedTracks(ctx context.Context, id primitive.ObjectID) ([]models.Track, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(user.LikedTracks) == 0 {
		return []models.Track{}, nil
	}

	tracks, err := s.store.Tracks.FindByIDs(ctx, user.LikedTracks)
	if err != nil {
		return nil, fmt.Errorf("failed to load liked tracks: %w", err)
	}
	if err := populateTracks(ctx, s.store, tracks); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Track, len(tracks))
	for _, t := range tracks {
		byID[t.ID] = t
	}
	ordered := make([]models.Track, 0, len(user.LikedTracks))
	for _, tid := range user.LikedTracks {
		if t, ok := byID[tid]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

// TopTracks tallies the user's playback history and returns the most played
// tracks, hydrated, most played first.
func (s *UserService) TopTracks(ctx context.Context, id primitive.ObjectID, limit int) ([]models.Track, error) {
	if limit <= 0 {
		limit = 10
	}

	entries, _, err := s.store.Playback.FindByUser(ctx, id, store.Page{Number: 1, Limit: topTracksWindow})
	if err != nil {
		return nil, fmt.Errorf("failed to load playback history: %w", err)
	}
	if len(entries) == 0 {
		return []models.Track{}, nil
	}

	counts := make(map[primitive.ObjectID]int)
	order := make(map[primitive.ObjectID]int)
	for i, e := range entries {
		if _, seen := counts[e.TrackID]; !seen {
			order[e.TrackID] = i
		}
		counts[e.TrackID]++
	}
	ids := make([]primitive.ObjectID, 0, len(counts))
	for tid := range counts {
		ids = append(ids, tid)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return order[ids[i]] < order[ids[j]]
	})
	if len(ids) > limit {
		ids = ids[:limit]
	}

	tracks, err := s.store.Tracks.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load top tracks: %w", err)
	}
	if err := populateTracks(ctx, s.store, tracks); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Track, len(tracks))
	for _, t := range tracks {
		byID[t.ID] = t
	}
	ordered := make([]models.Track, 0, len(ids))
	for _, tid := range ids {
		if t, ok := byID[tid]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

// DeleteAccount removes the user and the playlists they own
func (s *UserService) DeleteAccount(ctx context.Context, id primitive.ObjectID) error {
	playlists, err := s.store.Playlists.FindByOwner(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load owned playlists: %w", err)
	}
	for _, p := range playlists {
		if err := s.store.Playlists.Delete(ctx, p.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to delete playlist %s: %w", p.ID.Hex(), err)
		}
	}

	if err := s.store.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("user not found")
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
