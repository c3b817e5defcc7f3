package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaybackDevice tags the device a play originated from
type PlaybackDevice string

const (
	DeviceWeb     PlaybackDevice = "web"
	DeviceAndroid PlaybackDevice = "android"
	DeviceIOS     PlaybackDevice = "ios"
	DeviceDesktop PlaybackDevice = "desktop"
	DeviceOther   PlaybackDevice = "other"
)

// ValidDevice reports whether d is one of the known device tags
func ValidDevice(d PlaybackDevice) bool {
	switch d {
	case DeviceWeb, DeviceAndroid, DeviceIOS, DeviceDesktop, DeviceOther:
		return true
	}
	return false
}

type PlaybackHistory struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user" json:"userId"`
	TrackID         primitive.ObjectID `bson:"track" json:"trackId"`
	PlayedAt        time.Time          `bson:"playedAt" json:"playedAt"`
	ProgressSeconds int                `bson:"progressSeconds" json:"progressSeconds"`
	Completed       bool               `bson:"completed" json:"completed"`
	Device          PlaybackDevice     `bson:"device" json:"device"`
	IPAddress       string             `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Populated at read time, never stored
	Track *Track `bson:"-" json:"track,omitempty"`
	User  *User  `bson:"-" json:"user,omitempty"`
}
