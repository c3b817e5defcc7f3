package mongostore

import (
	"context"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type playbackStore struct {
	col *mongo.Collection
}

func (s *playbackStore) Create(ctx context.Context, entry *models.PlaybackHistory) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.PlayedAt.IsZero() {
		entry.PlayedAt = now()
	}
	entry.CreatedAt = now()
	entry.UpdatedAt = entry.CreatedAt

	if _, err := s.col.InsertOne(ctx, entry); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *playbackStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PlaybackHistory, error) {
	var entry models.PlaybackHistory
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&entry); err != nil {
		return nil, mapErr(err)
	}
	return &entry, nil
}

func (s *playbackStore) FindByUser(ctx context.Context, userID primitive.ObjectID, page store.Page) ([]models.PlaybackHistory, int64, error) {
	query := bson.M{"user": userID}

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := findOptions(page, bson.D{{Key: "playedAt", Value: -1}})
	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	entries := []models.PlaybackHistory{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *playbackStore) Recent(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.PlaybackHistory, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "playedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []models.PlaybackHistory{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *playbackStore) Update(ctx context.Context, entry *models.PlaybackHistory) error {
	entry.UpdatedAt = now()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
