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

type trackStore struct {
	col *mongo.Collection
}

func (s *trackStore) Create(ctx context.Context, track *models.Track) error {
	if track.ID.IsZero() {
		track.ID = primitive.NewObjectID()
	}
	track.CreatedAt = now()
	track.UpdatedAt = track.CreatedAt

	if _, err := s.col.InsertOne(ctx, track); err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *trackStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Track, error) {
	var track models.Track
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&track); err != nil {
		return nil, mapErr(err)
	}
	return &track, nil
}

func (s *trackStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Track, error) {
	if len(ids) == 0 {
		return []models.Track{}, nil
	}
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tracks []models.Track
	if err := cursor.All(ctx, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

func (s *trackStore) FindByAlbum(ctx context.Context, albumID primitive.ObjectID) ([]models.Track, error) {
	cursor, err := s.col.Find(ctx, bson.M{"album": albumID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tracks := []models.Track{}
	if err := cursor.All(ctx, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

func (s *trackStore) CountByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.col.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *trackStore) Find(ctx context.Context, filter store.TrackFilter, sort store.TrackSort, page store.Page) ([]models.Track, int64, error) {
	query := bson.M{}
	if filter.ArtistID != nil {
		query["artist"] = *filter.ArtistID
	}
	if filter.AlbumID != nil {
		query["album"] = *filter.AlbumID
	}
	if filter.Genre != "" {
		query["genres"] = bson.M{"$in": []string{filter.Genre}}
	}
	if filter.Mood != "" {
		query["mood"] = bson.M{"$in": []string{filter.Mood}}
	}
	if filter.Search != "" {
		query["title"] = containsRegex(filter.Search)
	}

	// Tag-intersection candidates: match on either list
	var anyOf []bson.M
	if len(filter.AnyGenres) > 0 {
		anyOf = append(anyOf, bson.M{"genres": bson.M{"$in": filter.AnyGenres}})
	}
	if len(filter.AnyMoods) > 0 {
		anyOf = append(anyOf, bson.M{"mood": bson.M{"$in": filter.AnyMoods}})
	}
	if len(anyOf) > 0 {
		query["$or"] = anyOf
	}

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	order := bson.D{{Key: "createdAt", Value: -1}}
	if sort == store.TrackSortPopular {
		order = bson.D{{Key: "playCount", Value: -1}, {Key: "createdAt", Value: -1}}
	}

	cursor, err := s.col.Find(ctx, query, findOptions(page, order))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	tracks := []models.Track{}
	if err := cursor.All(ctx, &tracks); err != nil {
		return nil, 0, err
	}
	return tracks, total, nil
}

func (s *trackStore) Update(ctx context.Context, track *models.Track) error {
	track.UpdatedAt = now()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": track.ID}, track)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *trackStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Track, error) {
	var track models.Track
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&track); err != nil {
		return nil, mapErr(err)
	}
	return &track, nil
}

func (s *trackStore) IncPlayCount(ctx context.Context, id primitive.ObjectID) (*models.Track, error) {
	return s.inc(ctx, id, "playCount")
}

func (s *trackStore) IncLikeCount(ctx context.Context, id primitive.ObjectID) (*models.Track, error) {
	return s.inc(ctx, id, "likeCount")
}

func (s *trackStore) inc(ctx context.Context, id primitive.ObjectID, field string) (*models.Track, error) {
	update := bson.M{
		"$inc": bson.M{field: 1},
		"$set": bson.M{"updatedAt": now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var track models.Track
	if err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&track); err != nil {
		return nil, mapErr(err)
	}
	return &track, nil
}
