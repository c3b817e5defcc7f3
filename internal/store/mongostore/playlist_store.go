package mongostore

import (
	"context"
	"strings"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type playlistStore struct {
	col *mongo.Collection
}

func (s *playlistStore) Create(ctx context.Context, playlist *models.Playlist) error {
	if playlist.ID.IsZero() {
		playlist.ID = primitive.NewObjectID()
	}
	playlist.PlayListTitle = strings.TrimSpace(playlist.PlayListTitle)
	if playlist.TrackIDs == nil {
		playlist.TrackIDs = []primitive.ObjectID{}
	}
	playlist.CreatedAt = now()
	playlist.UpdatedAt = playlist.CreatedAt

	if _, err := s.col.InsertOne(ctx, playlist); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *playlistStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&playlist); err != nil {
		return nil, mapErr(err)
	}
	return &playlist, nil
}

func (s *playlistStore) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Playlist, error) {
	opts := findOptions(store.Page{}, bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"owner": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	playlists := []models.Playlist{}
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

func (s *playlistStore) FindPublic(ctx context.Context, filter store.PlaylistFilter, page store.Page) ([]models.Playlist, int64, error) {
	query := bson.M{"isPublic": true}
	if filter.Tag != "" {
		query["tags"] = bson.M{"$in": []string{filter.Tag}}
	}
	if filter.Mood != "" {
		query["mood"] = bson.M{"$in": []string{filter.Mood}}
	}
	if filter.Search != "" {
		query["playListTitle"] = containsRegex(filter.Search)
	}

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := findOptions(page, bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	playlists := []models.Playlist{}
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, 0, err
	}
	return playlists, total, nil
}

func (s *playlistStore) Update(ctx context.Context, playlist *models.Playlist) error {
	playlist.UpdatedAt = now()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": playlist.ID}, playlist)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *playlistStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
