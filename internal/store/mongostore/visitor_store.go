package mongostore

import (
	"context"

	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type visitorStore struct {
	col *mongo.Collection
}

func (s *visitorStore) Create(ctx context.Context, visitor *models.Visitor) error {
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

	if _, err := s.col.InsertOne(ctx, visitor); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *visitorStore) FindByIP(ctx context.Context, ip string) (*models.Visitor, error) {
	var visitor models.Visitor
	if err := s.col.FindOne(ctx, bson.M{"ip": ip}).Decode(&visitor); err != nil {
		return nil, mapErr(err)
	}
	return &visitor, nil
}

func (s *visitorStore) Update(ctx context.Context, visitor *models.Visitor) error {
	visitor.UpdatedAt = now()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": visitor.ID}, visitor)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
