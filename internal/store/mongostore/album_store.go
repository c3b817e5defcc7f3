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

type albumStore struct {
	col *mongo.Collection
}

func (s *albumStore) Create(ctx context.Context, album *models.Album) error {
	if album.ID.IsZero() {
		album.ID = primitive.NewObjectID()
	}
	album.AlbumTitle = strings.TrimSpace(album.AlbumTitle)
	album.CreatedAt = now()
	album.UpdatedAt = album.CreatedAt

	if _, err := s.col.InsertOne(ctx, album); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *albumStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Album, error) {
	var album models.Album
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&album); err != nil {
		return nil, mapErr(err)
	}
	return &album, nil
}

func (s *albumStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Album, error) {
	if len(ids) == 0 {
		return []models.Album{}, nil
	}
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var albums []models.Album
	if err := cursor.All(ctx, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

func (s *albumStore) Find(ctx context.Context, filter store.AlbumFilter, page store.Page) ([]models.Album, int64, error) {
	query := bson.M{}
	if filter.ArtistID != nil {
		query["albumArtist"] = *filter.ArtistID
	}
	if filter.Search != "" {
		query["albumTitle"] = containsRegex(filter.Search)
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

	albums := []models.Album{}
	if err := cursor.All(ctx, &albums); err != nil {
		return nil, 0, err
	}
	return albums, total, nil
}

func (s *albumStore) Update(ctx context.Context, album *models.Album) error {
	album.UpdatedAt = now()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": album.ID}, album)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *albumStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Album, error) {
	var album models.Album
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&album); err != nil {
		return nil, mapErr(err)
	}
	return &album, nil
}
