package mongostore

import (
	"context"

	"github.com/tunestream/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type recommendationStore struct {
	col *mongo.Collection
}

// Create appends an audit record. Logs are never updated or deleted.
func (s *recommendationStore) Create(ctx context.Context, entry *models.RecommendationLog) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	entry.CreatedAt = now()
	entry.UpdatedAt = entry.CreatedAt

	if _, err := s.col.InsertOne(ctx, entry); err != nil {
		return mapErr(err)
	}
	return nil
}
