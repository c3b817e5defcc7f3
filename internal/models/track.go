package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Track struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TrackFile string              `bson:"trackFile" json:"trackFile"`
	Title     string              `bson:"title" json:"title"`
	ArtistID  primitive.ObjectID  `bson:"artist" json:"artistId"`
	AlbumID   *primitive.ObjectID `bson:"album,omitempty" json:"albumId,omitempty"`
	Duration  int                 `bson:"duration" json:"duration"`
	Language  string              `bson:"language,omitempty" json:"language,omitempty"`
	Genres    []string            `bson:"genres" json:"genres"`
	Mood      []string            `bson:"mood" json:"mood"`
	PlayCount int64               `bson:"playCount" json:"playCount"`
	LikeCount int64               `bson:"likeCount" json:"likeCount"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`

	// Populated at read time, never stored
	Artist *Artist `bson:"-" json:"artist,omitempty"`
	Album  *Album  `bson:"-" json:"album,omitempty"`
}
