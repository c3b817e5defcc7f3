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

type artistStore struct {
	col *mongo.Collection
}

func (s *artistStore) Create(ctx context.Context, artist *models.Artist) error {
	if artist.ID.IsZero() {
		artist.ID = primitive.NewObjectID()
	}
	artist.ArtistName = strings.TrimSpace(artist.ArtistName)
	artist.CreatedAt = now()
	artist.UpdatedAt = artist.CreatedAt

	if _, err := s.col.InsertOne(ctx, artist); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *artistStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Artist, error) {
	var artist models.Artist
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&artist); err != nil {
		return nil, mapErr(err)
	}
	return &artist, nil
}

func (s *artistStore) FindByName(ctx context.Context, name string) (*models.Artist, error) {
	var artist models.Artist
	if err := s.col.FindOne(ctx, bson.M{"artistName": strings.TrimSpace(name)}).Decode(&artist); err != nil {
		return nil, mapErr(err)
	}
	return &artist, nil
}

func (s *artistStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Artist, error) {
	if len(ids) == 0 {
		return []models.Artist{}, nil
	}
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var artists []models.Artist
	if err := cursor.All(ctx, &artists); err != nil {
		return nil, err
	}
	return artists, nil
}

func (s *artistStore) Find(ctx context.Context, filter store.ArtistFilter, page store.Page) ([]models.Artist, int64, error) {
	query := bson.M{}
	if filter.Genre != "" {
		query["genres"] = bson.M{"$in": []string{filter.Genre}}
	}
	if filter.Search != "" {
		query["artistName"] = containsRegex(filter.Search)
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

	artists := []models.Artist{}
	if err := cursor.All(ctx, &artists); err != nil {
		return nil, 0, err
	}
	return artists, total, nil
}

func (s *artistStore) Update(ctx context.Context, artist *models.Artist) error {
	artist.UpdatedAt = now()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": artist.ID}, artist)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *artistStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Artist, error) {
	var artist models.Artist
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&artist); err != nil {
		return nil, mapErr(err)
	}
	return &artist, nil
}
