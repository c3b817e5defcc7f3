package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Album struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AlbumTitle           string             `bson:"albumTitle" json:"albumTitle"`
	ArtistID             primitive.ObjectID `bson:"albumArtist" json:"artistId"`
	Description          string             `bson:"description" json:"description"`
	CoverImage           string             `bson:"coverImage" json:"coverImage"`
	ReleaseDate          *time.Time         `bson:"releaseDate,omitempty" json:"releaseDate,omitempty"`
	Genres               []string           `bson:"genres" json:"genres"`
	TotalTracks          int                `bson:"totalTracks" json:"totalTracks"`
	TotalDurationSeconds int                `bson:"totalDurationSeconds" json:"totalDurationSeconds"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Populated at read time, never stored
	Artist *Artist `bson:"-" json:"artist,omitempty"`
	Tracks []Track `bson:"-" json:"tracks,omitempty"`
}
