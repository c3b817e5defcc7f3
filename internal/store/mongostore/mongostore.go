package mongostore

import (
	"context"
	"regexp"
	"time"

	"github.com/tunestream/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	colUsers           = "users"
	colArtists         = "artists"
	colAlbums          = "albums"
	colTracks          = "tracks"
	colPlaylists       = "playlists"
	colPlayback        = "playbackhistories"
	colRecommendations = "recommendationlogs"
	colVisitors        = "visitors"
)

// New builds a store.Store backed by the given MongoDB database
func New(db *mongo.Database) *store.Store {
	return &store.Store{
		Users:           &userStore{col: db.Collection(colUsers)},
		Artists:         &artistStore{col: db.Collection(colArtists)},
		Albums:          &albumStore{col: db.Collection(colAlbums)},
		Tracks:          &trackStore{col: db.Collection(colTracks)},
		Playlists:       &playlistStore{col: db.Collection(colPlaylists)},
		Playback:        &playbackStore{col: db.Collection(colPlayback)},
		Recommendations: &recommendationStore{col: db.Collection(colRecommendations)},
		Visitors:        &visitorStore{col: db.Collection(colVisitors)},
	}
}

// EnsureIndexes creates the unique and query indexes the collections rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		},
		colVisitors: {
			{Keys: bson.D{{Key: "ip", Value: 1}}, Options: unique},
		},
		colTracks: {
			{Keys: bson.D{{Key: "artist", Value: 1}}},
			{Keys: bson.D{{Key: "album", Value: 1}}},
			{Keys: bson.D{{Key: "playCount", Value: -1}, {Key: "createdAt", Value: -1}}},
		},
		colPlaylists: {
			{Keys: bson.D{{Key: "owner", Value: 1}}},
			{Keys: bson.D{{Key: "isPublic", Value: 1}}},
		},
		colPlayback: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "playedAt", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

// containsRegex builds a case-insensitive substring match for a text field
func containsRegex(value string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(value), "$options": "i"}
}

// mapErr translates driver errors to store sentinels
func mapErr(err error) error {
	if err == mongo.ErrNoDocuments {
		return store.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrDuplicate
	}
	return err
}

func now() time.Time {
	return time.Now().UTC()
}

// findOptions translates a page request into driver find options
func findOptions(page store.Page, sort bson.D) *options.FindOptions {
	opts := options.Find().SetSort(sort)
	if page.Limit > 0 {
		opts.SetSkip(page.Skip()).SetLimit(page.Limit)
	}
	return opts
}
