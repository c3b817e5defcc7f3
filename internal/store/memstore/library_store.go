package memstore

import (
	"context"
	"strings"
	"sync"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// playlistStore

type playlistEntry struct {
	doc models.Playlist
	seq int64
}

type playlistStore struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]*playlistEntry
	seq  int64
}

func clonePlaylist(p models.Playlist) models.Playlist {
	p.TrackIDs = cloneIDs(p.TrackIDs)
	p.Tags = cloneStrings(p.Tags)
	p.Mood = cloneStrings(p.Mood)
	p.Owner = nil
	p.Tracks = nil
	return p
}

func (s *playlistStore) Create(ctx context.Context, playlist *models.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if playlist.ID.IsZero() {
		playlist.ID = primitive.NewObjectID()
	}
	playlist.PlayListTitle = strings.TrimSpace(playlist.PlayListTitle)
	if playlist.TrackIDs == nil {
		playlist.TrackIDs = []primitive.ObjectID{}
	}
	playlist.CreatedAt = now()
	playlist.UpdatedAt = playlist.CreatedAt

	s.seq++
	s.docs[playlist.ID] = &playlistEntry{doc: clonePlaylist(*playlist), seq: s.seq}
	return nil
}

func (s *playlistStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	p := clonePlaylist(e.doc)
	return &p, nil
}

func (s *playlistStore) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	playlists := []models.Playlist{}
	seqs := map[primitive.ObjectID]int64{}
	for _, e := range s.docs {
		if e.doc.OwnerID == ownerID {
			playlists = append(playlists, clonePlaylist(e.doc))
			seqs[e.doc.ID] = e.seq
		}
	}
	sortNewest(playlists, func(p models.Playlist) sortKey {
		return sortKey{at: p.CreatedAt, seq: seqs[p.ID]}
	})
	return playlists, nil
}

func (s *playlistStore) FindPublic(ctx context.Context, filter store.PlaylistFilter, page store.Page) ([]models.Playlist, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Playlist{}
	seqs := map[primitive.ObjectID]int64{}
	for _, e := range s.docs {
		if !e.doc.IsPublic {
			continue
		}
		if filter.Tag != "" && !containsTag(e.doc.Tags, filter.Tag) {
			continue
		}
		if filter.Mood != "" && !containsTag(e.doc.Mood, filter.Mood) {
			continue
		}
		if filter.Search != "" && !containsFold(e.doc.PlayListTitle, filter.Search) {
			continue
		}
		matched = append(matched, clonePlaylist(e.doc))
		seqs[e.doc.ID] = e.seq
	}

	sortNewest(matched, func(p models.Playlist) sortKey {
		return sortKey{at: p.CreatedAt, seq: seqs[p.ID]}
	})
	total := int64(len(matched))
	return paginate(matched, page), total, nil
}

func (s *playlistStore) Update(ctx context.Context, playlist *models.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.docs[playlist.ID]
	if !ok {
		return store.ErrNotFound
	}
	playlist.UpdatedAt = now()
	e.doc = clonePlaylist(*playlist)
	return nil
}

func (s *playlistStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// playbackStore

type playbackEntry struct {
	doc models.PlaybackHistory
	seq int64
}

type playbackStore struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]*playbackEntry
	seq  int64
}

func clonePlayback(p models.PlaybackHistory) models.PlaybackHistory {
	p.Track = nil
	p.User = nil
	return p
}

func (s *playbackStore) Create(ctx context.Context, entry *models.PlaybackHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.PlayedAt.IsZero() {
		entry.PlayedAt = now()
	}
	entry.CreatedAt = now()
	entry.UpdatedAt = entry.CreatedAt

	s.seq++
	s.docs[entry.ID] = &playbackEntry{doc: clonePlayback(*entry), seq: s.seq}
	return nil
}

func (s *playbackStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PlaybackHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	p := clonePlayback(e.doc)
	return &p, nil
}

func (s *playbackStore) FindByUser(ctx context.Context, userID primitive.ObjectID, page store.Page) ([]models.PlaybackHistory, int64, error) {
	entries := s.sortedByUser(userID)
	total := int64(len(entries))
	return paginate(entries, page), total, nil
}

func (s *playbackStore) Recent(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.PlaybackHistory, error) {
	entries := s.sortedByUser(userID)
	if limit > 0 && int64(len(entries)) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *playbackStore) sortedByUser(userID primitive.ObjectID) []models.PlaybackHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []models.PlaybackHistory{}
	seqs := map[primitive.ObjectID]int64{}
	for _, e := range s.docs {
		if e.doc.UserID == userID {
			entries = append(entries, clonePlayback(e.doc))
			seqs[e.doc.ID] = e.seq
		}
	}
	sortNewest(entries, func(p models.PlaybackHistory) sortKey {
		return sortKey{at: p.PlayedAt, seq: seqs[p.ID]}
	})
	return entries
}

func (s *playbackStore) Update(ctx context.Context, entry *models.PlaybackHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.docs[entry.ID]
	if !ok {
		return store.ErrNotFound
	}
	entry.UpdatedAt = now()
	e.doc = clonePlayback(*entry)
	return nil
}

// recommendationStore

type recommendationStore struct {
	mu   sync.Mutex
	logs []models.RecommendationLog
}

func (s *recommendationStore) Create(ctx context.Context, entry *models.RecommendationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	entry.CreatedAt = now()
	entry.UpdatedAt = entry.CreatedAt
	s.logs = append(s.logs, *entry)
	return nil
}

// Logs returns a copy of every audit record written so far (test hook)
func (s *recommendationStore) Logs() []models.RecommendationLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.RecommendationLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// visitorStore

type visitorEntry struct {
	doc models.Visitor
	seq int64
}

type visitorStore struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]*visitorEntry
	seq  int64
}

func (s *visitorStore) Create(ctx context.Context, visitor *models.Visitor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.docs {
		if e.doc.IP == visitor.IP {
			return store.ErrDuplicate
		}
	}

	if visitor.ID.IsZero() {
		visitor.ID = primitive.NewObjectID()
	}
	if visitor.VisitCount == 0 {
		visitor.VisitCount = 1
	}
	if visitor.LastVisitedAt.IsZero() {
		visitor.LastVisitedAt = now()
	}
	visitor.CreatedAt = now()
	visitor.UpdatedAt = visitor.CreatedAt

	s.seq++
	s.docs[visitor.ID] = &visitorEntry{doc: *visitor, seq: s.seq}
	return nil
}

func (s *visitorStore) FindByIP(ctx context.Context, ip string) (*models.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.docs {
		if e.doc.IP == ip {
			v := e.doc
			return &v, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *visitorStore) Update(ctx context.Context, visitor *models.Visitor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.docs[visitor.ID]
	if !ok {
		return store.ErrNotFound
	}
	visitor.UpdatedAt = now()
	e.doc = *visitor
	return nil
}
