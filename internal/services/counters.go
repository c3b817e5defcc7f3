package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tunestream/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The denormalized totalTracks/totalDurationSeconds counters are maintained by
// recomputing them from the source of truth after every write that can change
// them, rather than by scattering incremental $inc calls across call sites.
// Both helpers are idempotent, so a stale counter left by a crash between
// writes is repaired by the next recalculation.

// RecalcAlbumTotals rewrites an album's track counters from the live set of
// tracks referencing it.
func RecalcAlbumTotals(ctx context.Context, st *store.Store, albumID primitive.ObjectID) error {
	album, err := st.Albums.FindByID(ctx, albumID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Album vanished between writes, nothing left to repair
			return nil
		}
		return fmt.Errorf("failed to load album for recalculation: %w", err)
	}

	tracks, err := st.Tracks.FindByAlbum(ctx, albumID)
	if err != nil {
		return fmt.Errorf("failed to load album tracks: %w", err)
	}

	total := 0
	for _, t := range tracks {
		total += t.Duration
	}
	album.TotalTracks = len(tracks)
	album.TotalDurationSeconds = total

	if err := st.Albums.Update(ctx, album); err != nil {
		return fmt.Errorf("failed to persist album counters: %w", err)
	}
	return nil
}

// RecalcPlaylistTotals rewrites a playlist's counters from its track list.
// totalTracks follows the reference list; durations of unresolvable references
// count as zero.
func RecalcPlaylistTotals(ctx context.Context, st *store.Store, playlistID primitive.ObjectID) error {
	playlist, err := st.Playlists.FindByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load playlist for recalculation: %w", err)
	}

	total := 0
	if len(playlist.TrackIDs) > 0 {
		tracks, err := st.Tracks.FindByIDs(ctx, playlist.TrackIDs)
		if err != nil {
			return fmt.Errorf("failed to load playlist tracks: %w", err)
		}
		for _, t := range tracks {
			total += t.Duration
		}
	}
	playlist.TotalTracks = len(playlist.TrackIDs)
	playlist.TotalDurationSeconds = total

	if err := st.Playlists.Update(ctx, playlist); err != nil {
		return fmt.Errorf("failed to persist playlist counters: %w", err)
	}
	return nil
}
