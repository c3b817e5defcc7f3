package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SocialLinks is the link bag on an artist document
type SocialLinks struct {
	Instagram string `bson:"instagram" json:"instagram"`
	Youtube   string `bson:"youtube" json:"youtube"`
	Spotify   string `bson:"spotify" json:"spotify"`
	Twitter   string `bson:"twitter" json:"twitter"`
}

type Artist struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ArtistName  string             `bson:"artistName" json:"artistName"`
	ArtistBio   string             `bson:"artistBio" json:"artistBio"`
	ArtistImage string             `bson:"artistImage" json:"artistImage"`
	Genres      []string           `bson:"genres" json:"genres"`
	SocialLinks SocialLinks        `bson:"socialLinks" json:"socialLinks"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
