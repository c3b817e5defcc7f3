package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RecommendationTypeForYou  = "for-you"
	RecommendationSourceRules = "rule-based"

	// Bumped whenever the ranking rules change so old audit rows stay interpretable
	RecommendationAlgorithmVersion = "v1-rule-based"
)

// RecommendationInput snapshots the context a recommendation pass was generated from
type RecommendationInput struct {
	FavoriteGenres []string             `bson:"favoriteGenres" json:"favoriteGenres"`
	RecentTrackIDs []primitive.ObjectID `bson:"recentTrackIds" json:"recentTrackIds"`
	BaseTrack      *primitive.ObjectID  `bson:"baseTrack,omitempty" json:"baseTrack,omitempty"`
}

// RecommendedTrack is one scored, ranked entry of a recommendation log
type RecommendedTrack struct {
	TrackID primitive.ObjectID `bson:"track" json:"trackId"`
	Score   float64            `bson:"score" json:"score"`
	Rank    int                `bson:"rank" json:"rank"`
}

// RecommendationLog is an append-only audit record. It is never mutated after creation
// and never read back into the live recommendation algorithm.
type RecommendationLog struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID  `bson:"user" json:"userId"`
	Type              string              `bson:"type" json:"type"`
	Source            string              `bson:"source" json:"source"`
	InputContext      RecommendationInput `bson:"inputContext" json:"inputContext"`
	RecommendedTracks []RecommendedTrack  `bson:"recommendedTracks" json:"recommendedTracks"`
	AlgorithmVersion  string              `bson:"algorithmVersion" json:"algorithmVersion"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt" json:"updatedAt"`
}
