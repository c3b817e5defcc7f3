package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Playlist struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PlayListTitle        string               `bson:"playListTitle" json:"playListTitle"`
	Description          string               `bson:"description" json:"description"`
	CoverImage           string               `bson:"coverImage" json:"coverImage"`
	OwnerID              primitive.ObjectID   `bson:"owner" json:"ownerId"`
	TrackIDs             []primitive.ObjectID `bson:"tracks" json:"trackIds"`
	IsPublic             bool                 `bson:"isPublic" json:"isPublic"`
	TotalTracks          int                  `bson:"totalTracks" json:"totalTracks"`
	TotalDurationSeconds int                  `bson:"totalDurationSeconds" json:"totalDurationSeconds"`
	Tags                 []string             `bson:"tags" json:"tags"`
	Mood                 []string             `bson:"mood" json:"mood"`
	CreatedAt            time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time            `bson:"updatedAt" json:"updatedAt"`

	// Populated at read time, never stored. Tracks keeps the play order of TrackIDs.
	Owner  *User   `bson:"-" json:"owner,omitempty"`
	Tracks []Track `bson:"-" json:"tracks,omitempty"`
}

// ContainsTrack reports whether the playlist already references the track
func (p *Playlist) ContainsTrack(trackID primitive.ObjectID) bool {
	for _, id := range p.TrackIDs {
		if id == trackID {
			return true
		}
	}
	return false
}
