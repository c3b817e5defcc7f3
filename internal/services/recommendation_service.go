package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// recentPlaysWindow is how far back the taste signature looks
	recentPlaysWindow = 50
	// tasteTopTags is how many genres and moods form the signature
	tasteTopTags = 5
	// candidateFactor controls how many candidates are fetched per requested result
	candidateFactor = 3
	// defaultRecommendationCount is used when the caller does not ask for a count
	defaultRecommendationCount = 20
)

type RecommendationService struct {
	store *store.Store
}

func NewRecommendationService(st *store.Store) *RecommendationService {
	return &RecommendationService{store: st}
}

// ForYouResult is the hydrated outcome of one recommendation pass
type ForYouResult struct {
	Tracks         []models.Track     `json:"tracks"`
	FavoriteGenres []string           `json:"favoriteGenres"`
	FavoriteMoods  []string           `json:"favoriteMoods"`
	LogID          primitive.ObjectID `json:"logId"`
}

// ForYou runs the rule-based recommendation pass for one user: derive a taste
// signature from the recent plays, rank unseen candidates by popularity, and
// persist an audit log of what was recommended and why.
func (s *RecommendationService) ForYou(ctx context.Context, userID primitive.ObjectID, n int) (*ForYouResult, error) {
	if n <= 0 {
		n = defaultRecommendationCount
	}

	recent, err := s.store.Playback.Recent(ctx, userID, recentPlaysWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent plays: %w", err)
	}

	recentTrackIDs := make([]primitive.ObjectID, 0, len(recent))
	recentSet := make(map[primitive.ObjectID]struct{}, len(recent))
	for _, e := range recent {
		recentTrackIDs = append(recentTrackIDs, e.TrackID)
		recentSet[e.TrackID] = struct{}{}
	}

	var recentTracks []models.Track
	if len(recentTrackIDs) > 0 {
		recentTracks, err = s.store.Tracks.FindByIDs(ctx, recentTrackIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load recent tracks: %w", err)
		}
	}

	// Tally tags in descending-recency order so frequency ties resolve
	// toward what was played more recently.
	byID := make(map[primitive.ObjectID]*models.Track, len(recentTracks))
	for i := range recentTracks {
		byID[recentTracks[i].ID] = &recentTracks[i]
	}
	genres := newTally()
	moods := newTally()
	for _, e := range recent {
		t, ok := byID[e.TrackID]
		if !ok {
			continue
		}
		for _, g := range t.Genres {
			genres.add(g)
		}
		for _, m := range t.Mood {
			moods.add(m)
		}
	}
	favoriteGenres := genres.top(tasteTopTags)
	favoriteMoods := moods.top(tasteTopTags)

	// No signature yet means the candidate filter is unrestricted.
	filter := store.TrackFilter{
		AnyGenres: favoriteGenres,
		AnyMoods:  favoriteMoods,
	}
	candidates, _, err := s.store.Tracks.Find(ctx, filter, store.TrackSortPopular, store.Page{Number: 1, Limit: int64(candidateFactor * n)})
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	selected := make([]models.Track, 0, n)
	for _, c := range candidates {
		if _, played := recentSet[c.ID]; played {
			continue
		}
		selected = append(selected, c)
		if len(selected) == n {
			break
		}
	}

	now := time.Now()
	scored := make([]models.RecommendedTrack, len(selected))
	for i, t := range selected {
		rank := i + 1
		scored[i] = models.RecommendedTrack{
			TrackID: t.ID,
			Score:   float64(t.PlayCount) + 1/float64(rank+1),
			Rank:    rank,
		}
	}

	logEntry := &models.RecommendationLog{
		UserID: userID,
		Type:   models.RecommendationTypeForYou,
		Source: models.RecommendationSourceRules,
		InputContext: models.RecommendationInput{
			FavoriteGenres: favoriteGenres,
			RecentTrackIDs: recentTrackIDs,
		},
		RecommendedTracks: scored,
		AlgorithmVersion:  models.RecommendationAlgorithmVersion,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.Recommendations.Create(ctx, logEntry); err != nil {
		return nil, fmt.Errorf("failed to persist recommendation log: %w", err)
	}

	// Re-fetch and hydrate the winners, preserving rank order.
	result := &ForYouResult{
		FavoriteGenres: favoriteGenres,
		FavoriteMoods:  favoriteMoods,
		LogID:          logEntry.ID,
		Tracks:         []models.Track{},
	}
	if len(selected) > 0 {
		ids := make([]primitive.ObjectID, len(selected))
		for i, t := range selected {
			ids[i] = t.ID
		}
		fresh, err := s.store.Tracks.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to reload recommended tracks: %w", err)
		}
		if err := populateTracks(ctx, s.store, fresh); err != nil {
			return nil, err
		}
		freshByID := make(map[primitive.ObjectID]models.Track, len(fresh))
		for _, t := range fresh {
			freshByID[t.ID] = t
		}
		for _, id := range ids {
			if t, ok := freshByID[id]; ok {
				result.Tracks = append(result.Tracks, t)
			}
		}
	}
	return result, nil
}

// tally counts tag frequencies while remembering first-seen order
type tally struct {
	counts map[string]int
	order  map[string]int
	next   int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int), order: make(map[string]int)}
}

func (t *tally) add(tag string) {
	if tag == "" {
		return
	}
	if _, seen := t.counts[tag]; !seen {
		t.order[tag] = t.next
		t.next++
	}
	t.counts[tag]++
}

// top returns the k most frequent tags, ties broken by first-seen order
func (t *tally) top(k int) []string {
	tags := make([]string, 0, len(t.counts))
	for tag := range t.counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if t.counts[tags[i]] != t.counts[tags[j]] {
			return t.counts[tags[i]] > t.counts[tags[j]]
		}
		return t.order[tags[i]] < t.order[tags[j]]
	})
	if len(tags) > k {
		tags = tags[:k]
	}
	return tags
}
