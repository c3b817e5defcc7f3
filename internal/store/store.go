package store

import (
	"context"
	"errors"

	"github.com/tunestream/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a referenced document is absent
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned on a uniqueness violation (email, username, artist name, ip)
	ErrDuplicate = errors.New("duplicate document")
)

// Page is a 1-based page request
type Page struct {
	Number int64
	Limit  int64
}

// Skip returns the number of documents to skip for this page
func (p Page) Skip() int64 {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// TrackSort selects the ordering of a track query
type TrackSort int

const (
	// TrackSortNewest orders by createdAt descending
	TrackSortNewest TrackSort = iota
	// TrackSortPopular orders by playCount descending, then createdAt descending
	TrackSortPopular
)

// TrackFilter narrows a track query. Scalar fields combine with AND;
// AnyGenres/AnyMoods combine with each other as OR (tag-intersection candidates).
type TrackFilter struct {
	ArtistID  *primitive.ObjectID
	AlbumID   *primitive.ObjectID
	Genre     string
	Mood      string
	Search    string // case-insensitive substring on title
	AnyGenres []string
	AnyMoods  []string
}

type AlbumFilter struct {
	ArtistID *primitive.ObjectID
	Search   string // case-insensitive substring on albumTitle
}

type ArtistFilter struct {
	Genre  string
	Search string // case-insensitive substring on artistName
}

type PlaylistFilter struct {
	Tag    string
	Mood   string
	Search string // case-insensitive substring on playListTitle
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ArtistStore interface {
	Create(ctx context.Context, artist *models.Artist) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Artist, error)
	FindByName(ctx context.Context, name string) (*models.Artist, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Artist, error)
	Find(ctx context.Context, filter ArtistFilter, page Page) ([]models.Artist, int64, error)
	Update(ctx context.Context, artist *models.Artist) error
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Artist, error)
}

type AlbumStore interface {
	Create(ctx context.Context, album *models.Album) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Album, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Album, error)
	Find(ctx context.Context, filter AlbumFilter, page Page) ([]models.Album, int64, error)
	Update(ctx context.Context, album *models.Album) error
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Album, error)
}

type TrackStore interface {
	Create(ctx context.Context, track *models.Track) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Track, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Track, error)
	FindByAlbum(ctx context.Context, albumID primitive.ObjectID) ([]models.Track, error)
	CountByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	Find(ctx context.Context, filter TrackFilter, sort TrackSort, page Page) ([]models.Track, int64, error)
	Update(ctx context.Context, track *models.Track) error
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Track, error)
	IncPlayCount(ctx context.Context, id primitive.ObjectID) (*models.Track, error)
	IncLikeCount(ctx context.Context, id primitive.ObjectID) (*models.Track, error)
}

type PlaylistStore interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Playlist, error)
	FindPublic(ctx context.Context, filter PlaylistFilter, page Page) ([]models.Playlist, int64, error)
	Update(ctx context.Context, playlist *models.Playlist) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type PlaybackStore interface {
	Create(ctx context.Context, entry *models.PlaybackHistory) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.PlaybackHistory, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID, page Page) ([]models.PlaybackHistory, int64, error)
	Recent(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.PlaybackHistory, error)
	Update(ctx context.Context, entry *models.PlaybackHistory) error
}

type RecommendationLogStore interface {
	Create(ctx context.Context, entry *models.RecommendationLog) error
}

type VisitorStore interface {
	Create(ctx context.Context, visitor *models.Visitor) error
	FindByIP(ctx context.Context, ip string) (*models.Visitor, error)
	Update(ctx context.Context, visitor *models.Visitor) error
}

// Store bundles the per-collection accessors handed to the services
type Store struct {
	Users           UserStore
	Artists         ArtistStore
	Albums          AlbumStore
	Tracks          TrackStore
	Playlists       PlaylistStore
	Playback        PlaybackStore
	Recommendations RecommendationLogStore
	Visitors        VisitorStore
}
