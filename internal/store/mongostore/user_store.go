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

type userStore struct {
	col *mongo.Collection
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt

	if _, err := s.col.InsertOne(ctx, user); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *userStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := s.col.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *userStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"username": strings.ToLower(username)})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *userStore) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = now()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *userStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
