package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Visitor struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IP            string             `bson:"ip" json:"ip"`
	IPVersion     string             `bson:"ip_version" json:"ip_version"`
	City          string             `bson:"city" json:"city"`
	Region        string             `bson:"region" json:"region"`
	Country       string             `bson:"country" json:"country"`
	Longitude     *float64           `bson:"longitude" json:"longitude"`
	NetworkOrg    string             `bson:"network_org" json:"network_org"`
	VisitCount    int                `bson:"visitCount" json:"visitCount"`
	LastVisitedAt time.Time          `bson:"lastVisitedAt" json:"lastVisitedAt"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
