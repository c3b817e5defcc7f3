// Package memstore implements the store interfaces entirely in memory.
// The service tests run against it the same way they would against MongoDB.
package memstore

import (
	"sort"
	"strings"
	"time"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// New builds a fresh, empty in-memory store.Store
func New() *store.Store {
	return &store.Store{
		Users:           &userStore{docs: map[primitive.ObjectID]*userEntry{}},
		Artists:         &artistStore{docs: map[primitive.ObjectID]*artistEntry{}},
		Albums:          &albumStore{docs: map[primitive.ObjectID]*albumEntry{}},
		Tracks:          &trackStore{docs: map[primitive.ObjectID]*trackEntry{}},
		Playlists:       &playlistStore{docs: map[primitive.ObjectID]*playlistEntry{}},
		Playback:        &playbackStore{docs: map[primitive.ObjectID]*playbackEntry{}},
		Recommendations: &recommendationStore{},
		Visitors:        &visitorStore{docs: map[primitive.ObjectID]*visitorEntry{}},
	}
}

func now() time.Time {
	return time.Now().UTC()
}

// containsFold is the in-memory analog of a case-insensitive $regex substring match
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func intersects(tags, wanted []string) bool {
	for _, w := range wanted {
		if containsTag(tags, w) {
			return true
		}
	}
	return false
}

// sortKey orders by a timestamp descending, breaking ties by insertion sequence
// descending so the ordering stays stable when timestamps collide in fast tests.
type sortKey struct {
	at  time.Time
	seq int64
}

// paginate slices a sorted result set according to the page request.
// A zero-limit page returns everything.
func paginate[T any](items []T, page store.Page) []T {
	if page.Limit <= 0 {
		return items
	}
	skip := page.Skip()
	if skip >= int64(len(items)) {
		return []T{}
	}
	end := skip + page.Limit
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[skip:end]
}

func sortNewest[T any](items []T, key func(T) sortKey) {
	sort.Slice(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if !a.at.Equal(b.at) {
			return a.at.After(b.at)
		}
		return a.seq > b.seq
	})
}

// stableByPlayCount reorders tracks by playCount descending, preserving the
// incoming createdAt-descending order between equal play counts.
func stableByPlayCount(tracks []models.Track) {
	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].PlayCount > tracks[j].PlayCount
	})
}

func cloneIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(ids))
	copy(out, ids)
	return out
}

func cloneStrings(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	return out
}
