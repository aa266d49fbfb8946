package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Tag names are unique; creating an existing tag is a no-op.
type Tag struct {
	ID   primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name string             `json:"name" bson:"name"`
}
