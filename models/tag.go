package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Tag records how many blogs currently reference it by name. usageCount is
// maintained incrementally by the blog handlers and never goes below zero.
type Tag struct {
	ID          bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	Color       string        `json:"color" bson:"color"`
	IsActive    bool          `json:"isActive" bson:"isActive"`
	UsageCount  int64         `json:"usageCount" bson:"usageCount"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}
