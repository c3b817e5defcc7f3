package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthProvider tags how an account authenticates
type AuthProvider string

const (
	AuthProviderEmail    AuthProvider = "email"
	AuthProviderGoogle   AuthProvider = "google"
	AuthProviderFacebook AuthProvider = "facebook"
)

// Preference is the nested taste bag on a user document
type Preference struct {
	FavoriteGenres     []string             `bson:"favoriteGenres" json:"favoriteGenres"`
	FavoriteArtists    []primitive.ObjectID `bson:"favoriteArtists" json:"favoriteArtists"`
	PreferredLanguages []string             `bson:"preferredLanguages" json:"preferredLanguages"`
	MoodPreferences    []string             `bson:"moodPreferences" json:"moodPreferences"`
}

type User struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username         string               `bson:"username" json:"username"`
	Email            string               `bson:"email" json:"email"`
	FullName         string               `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Password         string               `bson:"password,omitempty" json:"-"`
	Avatar           string               `bson:"avatar" json:"avatar"`
	AuthProvider     AuthProvider         `bson:"authProvider" json:"authProvider"`
	IsEmailVerified  bool                 `bson:"isEmailVerified" json:"isEmailVerified"`
	Preference       Preference           `bson:"preference" json:"preference"`
	LikedTracks      []primitive.ObjectID `bson:"likedTracks" json:"likedTracks"`
	LikedPlaylistIDs []primitive.ObjectID `bson:"likedPlaylistIds" json:"likedPlaylistIds"`
	RefreshToken     string               `bson:"refreshToken,omitempty" json:"-"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasPassword reports whether this account can use password login.
// Third-party-only accounts carry no password hash.
func (u *User) HasPassword() bool {
	return u.Password != ""
}
