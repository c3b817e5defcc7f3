package memstore

import (
	"context"
	"strings"
	"sync"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userEntry struct {
	doc models.User
	seq int64
}

type userStore struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]*userEntry
	seq  int64
}

func cloneUser(u models.User) models.User {
	u.Preference.FavoriteGenres = cloneStrings(u.Preference.FavoriteGenres)
	u.Preference.FavoriteArtists = cloneIDs(u.Preference.FavoriteArtists)
	u.Preference.PreferredLanguages = cloneStrings(u.Preference.PreferredLanguages)
	u.Preference.MoodPreferences = cloneStrings(u.Preference.MoodPreferences)
	u.LikedTracks = cloneIDs(u.LikedTracks)
	u.LikedPlaylistIDs = cloneIDs(u.LikedPlaylistIDs)
	return u
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	for _, e := range s.docs {
		if e.doc.Email == user.Email || e.doc.Username == user.Username {
			return store.ErrDuplicate
		}
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt

	s.seq++
	s.docs[user.ID] = &userEntry{doc: cloneUser(*user), seq: s.seq}
	return nil
}

func (s *userStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u := cloneUser(e.doc)
	return &u, nil
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range s.docs {
		if e.doc.Email == email {
			u := cloneUser(e.doc)
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	username = strings.ToLower(username)
	for _, e := range s.docs {
		if e.doc.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *userStore) Update(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.docs[user.ID]
	if !ok {
		return store.ErrNotFound
	}
	user.UpdatedAt = now()
	e.doc = cloneUser(*user)
	return nil
}

func (s *userStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}
