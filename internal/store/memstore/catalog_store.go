package memstore

import (
	"context"
	"strings"
	"sync"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// artistStore

type artistEntry struct {
	doc models.Artist
	seq int64
}

type artistStore struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]*artistEntry
	seq  int64
}

func cloneArtist(a models.Artist) models.Artist {
	a.Genres = cloneStrings(a.Genres)
	return a
}

func (s *artistStore) Create(ctx context.Context, artist *models.Artist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if artist.ID.IsZero() {
		artist.ID = primitive.NewObjectID()
	}
	artist.ArtistName = strings.TrimSpace(artist.ArtistName)
	artist.CreatedAt = now()
	artist.UpdatedAt = artist.CreatedAt

	s.seq++
	s.docs[artist.ID] = &artistEntry{doc: cloneArtist(*artist), seq: s.seq}
	return nil
}

func (s *artistStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	a := cloneArtist(e.doc)
	return &a, nil
}

func (s *artistStore) FindByName(ctx context.Context, name string) (*models.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	for _, e := range s.docs {
		if e.doc.ArtistName == name {
			a := cloneArtist(e.doc)
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *artistStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artists := []models.Artist{}
	for _, id := range ids {
		if e, ok := s.docs[id]; ok {
			artists = append(artists, cloneArtist(e.doc))
		}
	}
	return artists, nil
}

func (s *artistStore) Find(ctx context.Context, filter store.ArtistFilter, page store.Page) ([]models.Artist, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Artist{}
	seqs := map[primitive.ObjectID]int64{}
	for _, e := range s.docs {
		if filter.Genre != "" && !containsTag(e.doc.Genres, filter.Genre) {
			continue
		}
		if filter.Search != "" && !containsFold(e.doc.ArtistName, filter.Search) {
			continue
		}
		matched = append(matched, cloneArtist(e.doc))
		seqs[e.doc.ID] = e.seq
	}

	sortNewest(matched, func(a models.Artist) sortKey {
		return sortKey{at: a.CreatedAt, seq: seqs[a.ID]}
	})
	total := int64(len(matched))
	return paginate(matched, page), total, nil
}

func (s *artistStore) Update(ctx context.Context, artist *models.Artist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.docs[artist.ID]
	if !ok {
		return store.ErrNotFound
	}
	artist.UpdatedAt = now()
	e.doc = cloneArtist(*artist)
	return nil
}

func (s *artistStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	a := cloneArtist(e.doc)
	delete(s.docs, id)
	return &a, nil
}

// albumStore

type albumEntry struct {
	doc models.Album
	seq int64
}

type albumStore struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]*albumEntry
	seq  int64
}

func cloneAlbum(a models.Album) models.Album {
	a.Genres = cloneStrings(a.Genres)
	a.Artist = nil
	a.Tracks = nil
	return a
}

func (s *albumStore) Create(ctx context.Context, album *models.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if album.ID.IsZero() {
		album.ID = primitive.NewObjectID()
	}
	album.AlbumTitle = strings.TrimSpace(album.AlbumTitle)
	album.CreatedAt = now()
	album.UpdatedAt = album.CreatedAt

	s.seq++
	s.docs[album.ID] = &albumEntry{doc: cloneAlbum(*album), seq: s.seq}
	return nil
}

func (s *albumStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	a := cloneAlbum(e.doc)
	return &a, nil
}

func (s *albumStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	albums := []models.Album{}
	for _, id := range ids {
		if e, ok := s.docs[id]; ok {
			albums = append(albums, cloneAlbum(e.doc))
		}
	}
	return albums, nil
}

func (s *albumStore) Find(ctx context.Context, filter store.AlbumFilter, page store.Page) ([]models.Album, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Album{}
	seqs := map[primitive.ObjectID]int64{}
	for _, e := range s.docs {
		if filter.ArtistID != nil && e.doc.ArtistID != *filter.ArtistID {
			continue
		}
		if filter.Search != "" && !containsFold(e.doc.AlbumTitle, filter.Search) {
			continue
		}
		matched = append(matched, cloneAlbum(e.doc))
		seqs[e.doc.ID] = e.seq
	}

	sortNewest(matched, func(a models.Album) sortKey {
		return sortKey{at: a.CreatedAt, seq: seqs[a.ID]}
	})
	total := int64(len(matched))
	return paginate(matched, page), total, nil
}

func (s *albumStore) Update(ctx context.Context, album *models.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.docs[album.ID]
	if !ok {
		return store.ErrNotFound
	}
	album.UpdatedAt = now()
	e.doc = cloneAlbum(*album)
	return nil
}

func (s *albumStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	a := cloneAlbum(e.doc)
	delete(s.docs, id)
	return &a, nil
}

// trackStore

type trackEntry struct {
	doc models.Track
	seq int64
}

type trackStore struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]*trackEntry
	seq  int64
}

func cloneTrack(t models.Track) models.Track {
	t.Genres = cloneStrings(t.Genres)
	t.Mood = cloneStrings(t.Mood)
	if t.AlbumID != nil {
		albumID := *t.AlbumID
		t.AlbumID = &albumID
	}
	t.Artist = nil
	t.Album = nil
	return t
}

func (s *trackStore) Create(ctx context.Context, track *models.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if track.ID.IsZero() {
		track.ID = primitive.NewObjectID()
	}
	track.CreatedAt = now()
	track.UpdatedAt = track.CreatedAt

	s.seq++
	s.docs[track.ID] = &trackEntry{doc: cloneTrack(*track), seq: s.seq}
	return nil
}

func (s *trackStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	t := cloneTrack(e.doc)
	return &t, nil
}

func (s *trackStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tracks := []models.Track{}
	for _, id := range ids {
		if e, ok := s.docs[id]; ok {
			tracks = append(tracks, cloneTrack(e.doc))
		}
	}
	return tracks, nil
}

func (s *trackStore) FindByAlbum(ctx context.Context, albumID primitive.ObjectID) ([]models.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tracks := []models.Track{}
	for _, e := range s.docs {
		if e.doc.AlbumID != nil && *e.doc.AlbumID == albumID {
			tracks = append(tracks, cloneTrack(e.doc))
		}
	}
	return tracks, nil
}

func (s *trackStore) CountByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, id := range ids {
		if _, ok := s.docs[id]; ok {
			count++
		}
	}
	return count, nil
}

func (s *trackStore) Find(ctx context.Context, filter store.TrackFilter, sort store.TrackSort, page store.Page) ([]models.Track, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Track{}
	seqs := map[primitive.ObjectID]int64{}
	for _, e := range s.docs {
		if !matchTrack(e.doc, filter) {
			continue
		}
		matched = append(matched, cloneTrack(e.doc))
		seqs[e.doc.ID] = e.seq
	}

	if sort == store.TrackSortPopular {
		sortNewest(matched, func(t models.Track) sortKey {
			return sortKey{at: t.CreatedAt, seq: seqs[t.ID]}
		})
		stableByPlayCount(matched)
	} else {
		sortNewest(matched, func(t models.Track) sortKey {
			return sortKey{at: t.CreatedAt, seq: seqs[t.ID]}
		})
	}

	total := int64(len(matched))
	return paginate(matched, page), total, nil
}

func matchTrack(t models.Track, filter store.TrackFilter) bool {
	if filter.ArtistID != nil && t.ArtistID != *filter.ArtistID {
		return false
	}
	if filter.AlbumID != nil && (t.AlbumID == nil || *t.AlbumID != *filter.AlbumID) {
		return false
	}
	if filter.Genre != "" && !containsTag(t.Genres, filter.Genre) {
		return false
	}
	if filter.Mood != "" && !containsTag(t.Mood, filter.Mood) {
		return false
	}
	if filter.Search != "" && !containsFold(t.Title, filter.Search) {
		return false
	}
	if len(filter.AnyGenres) > 0 || len(filter.AnyMoods) > 0 {
		if !intersects(t.Genres, filter.AnyGenres) && !intersects(t.Mood, filter.AnyMoods) {
			return false
		}
	}
	return true
}

func (s *trackStore) Update(ctx context.Context, track *models.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.docs[track.ID]
	if !ok {
		return store.ErrNotFound
	}
	track.UpdatedAt = now()
	e.doc = cloneTrack(*track)
	return nil
}

func (s *trackStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	t := cloneTrack(e.doc)
	delete(s.docs, id)
	return &t, nil
}

func (s *trackStore) IncPlayCount(ctx context.Context, id primitive.ObjectID) (*models.Track, error) {
	return s.inc(ctx, id, func(t *models.Track) { t.PlayCount++ })
}

func (s *trackStore) IncLikeCount(ctx context.Context, id primitive.ObjectID) (*models.Track, error) {
	return s.inc(ctx, id, func(t *models.Track) { t.LikeCount++ })
}

func (s *trackStore) inc(ctx context.Context, id primitive.ObjectID, bump func(*models.Track)) (*models.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	bump(&e.doc)
	e.doc.UpdatedAt = now()
	t := cloneTrack(e.doc)
	return &t, nil
}
